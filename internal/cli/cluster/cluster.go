package cluster

import (
	"github.com/aryankumar/hvui/internal/cli/app"
	"github.com/spf13/cobra"
)

// NewClusterCmd creates the cluster command
func NewClusterCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Work with Harvester clusters managed by Rancher",
		Long: `Work with the Harvester clusters imported into Rancher.

Harvester clusters are Rancher provisioning clusters in the fleet-default
workspace labelled provider.cattle.io=harvester.`,
	}

	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newOpenCmd(a))
	cmd.AddCommand(newImportCmd(a))

	return cmd
}
