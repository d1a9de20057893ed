package plugin

import (
	"context"
	"fmt"

	"github.com/aryankumar/hvui/internal/cli/app"
	"github.com/aryankumar/hvui/internal/cluster"
	"github.com/aryankumar/hvui/internal/executor"
	"github.com/aryankumar/hvui/internal/harvester"
	"github.com/aryankumar/hvui/internal/output"
	"github.com/spf13/cobra"
)

// packageRow is a resolved package as a result table row
type packageRow struct {
	harvester.PackageDetails `yaml:",inline"`
}

func (r packageRow) Columns() []string { return []string{"PACKAGE", "URL"} }
func (r packageRow) Values() []string  { return []string{r.Name, r.URL} }

// newResolveCmd creates the plugin resolve command
func newResolveCmd(a *app.App) *cobra.Command {
	var wide bool

	cmd := &cobra.Command{
		Use:   "resolve [NAME...]",
		Short: "Show which plugin each Harvester cluster needs",
		Long: `Resolve the plugin package name and bundle URL for Harvester clusters
without loading anything. All Harvester clusters are resolved when no names
are given; clusters are processed concurrently (see --parallel).`,
		Example: `  # Resolve every Harvester cluster
  hvui plugin resolve

  # Resolve two clusters as JSON
  hvui plugin resolve hv-east hv-west -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), a, args, wide)
		},
	}

	cmd.Flags().BoolVar(&wide, "wide", false, "show durations and full errors")

	return cmd
}

func runResolve(ctx context.Context, a *app.App, names []string, wide bool) error {
	ctx, cancel := a.WithTimeout(ctx)
	defer cancel()

	env, err := a.Connect(ctx)
	if err != nil {
		return err
	}

	records, err := selectClusters(ctx, env.Client, names)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return a.PrintResults(nil)
	}

	pool := executor.NewPool(a.Parallel(), a.Log())
	for _, rec := range records {
		c := env.Session.Cluster(rec)
		if err := pool.Submit(executor.Task{
			ClusterName: rec.Name,
			Execute: func(ctx context.Context) (any, error) {
				details, err := c.PackageDetails(ctx)
				if err != nil {
					return nil, err
				}
				return packageRow{details}, nil
			},
		}); err != nil {
			return err
		}
	}

	a.Log().Debug("resolving plugins", "clusters", pool.TaskCount(), "workers", pool.WorkerCount())
	results := pool.ExecuteWithProgress(ctx, func(completed, total int) {
		a.Log().Debug("resolved cluster", "completed", completed, "total", total)
	})
	if err := a.PrintResults(results, output.WithWide(wide)); err != nil {
		return err
	}

	if err := executor.Err(results); err != nil {
		return fmt.Errorf("failed to resolve plugins for %d of %d clusters: %w",
			executor.CountFailed(results), len(results), err)
	}
	return nil
}

// selectClusters returns the named Harvester clusters, or all of them
func selectClusters(ctx context.Context, client *cluster.Client, names []string) ([]cluster.Record, error) {
	if len(names) == 0 {
		return client.ListHarvesterClusters(ctx)
	}

	records := make([]cluster.Record, 0, len(names))
	for _, name := range names {
		rec, err := client.GetHarvesterCluster(ctx, name)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}
