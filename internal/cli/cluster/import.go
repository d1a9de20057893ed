package cluster

import (
	"context"
	"fmt"

	"github.com/aryankumar/hvui/internal/cli/app"
	"github.com/aryankumar/hvui/internal/harvester"
	"github.com/spf13/cobra"
)

// newImportCmd creates the cluster import command
func newImportCmd(a *app.App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import NAME",
		Short: "Create a Harvester cluster in Rancher for importing",
		Long: `Create a Rancher provisioning cluster for a Harvester cluster to be imported.

The cluster is created in the fleet-default workspace with the Harvester
provider label and an empty agent environment. Rancher then provides the
registration URL to run on the Harvester cluster.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), a, args[0], dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the cluster object without creating it")

	return cmd
}

func runImport(ctx context.Context, a *app.App, name string, dryRun bool) error {
	obj := harvester.NewImport(name)
	if dryRun {
		return a.PrintObject(obj.Object)
	}

	ctx, cancel := a.WithTimeout(ctx)
	defer cancel()

	env, err := a.Connect(ctx)
	if err != nil {
		return err
	}

	rec, err := env.Client.CreateCluster(ctx, obj)
	if err != nil {
		return err
	}

	return a.Print(fmt.Sprintf("cluster %s/%s created", rec.Namespace, rec.Name))
}
