package cluster

import (
	"context"

	"github.com/aryankumar/hvui/internal/cli/app"
	"github.com/aryankumar/hvui/internal/util"
	"github.com/spf13/cobra"
)

// newOpenCmd creates the cluster open command
func newOpenCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open NAME",
		Short: "Load a cluster's Harvester plugin and print its dashboard link",
		Long: `Load the Harvester UI plugin a cluster needs, then print the link to the
cluster's Harvester dashboard.

The plugin is skipped when a built-in Harvester plugin is configured or the
same version is already in the plugin cache. Failures are reported as an
"Error loading harvester plugin" notification on stderr.`,
		Example: `  # Open the dashboard of hv-east
  hvui cluster open hv-east

  # Use the remote legacy bundle from a mirror
  hvui cluster open hv-old --remote-plugin-url https://mirror.example.com/harvester-1.0.3-head.umd.min.js`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOpen(cmd.Context(), a, args[0])
		},
	}

	return cmd
}

func runOpen(ctx context.Context, a *app.App, name string) error {
	ctx, cancel := a.WithTimeout(ctx)
	defer cancel()

	env, err := a.Connect(ctx)
	if err != nil {
		return err
	}

	rec, err := env.Client.GetHarvesterCluster(ctx, name)
	if err != nil {
		return err
	}

	select {
	case ok := <-env.Session.Cluster(*rec).GoToClusterAsync(ctx):
		if !ok {
			// the notification already carries the reason
			return util.WrapClusterError(name, util.ErrLoadFailed)
		}
		return nil
	case <-ctx.Done():
		return util.ContextError(ctx.Err())
	}
}
