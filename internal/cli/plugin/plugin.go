package plugin

import (
	"github.com/aryankumar/hvui/internal/cli/app"
	"github.com/spf13/cobra"
)

// NewPluginCmd creates the plugin command
func NewPluginCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Resolve and load Harvester UI plugins",
		Long: `Resolve which Harvester UI plugin each cluster needs and manage the local
plugin cache.

Clusters that report ui-info get the plugin version they bundle, served either
by the cluster itself or from its configured plugin index. Older clusters get
the legacy 1.0.3 plugin, embedded or remote depending on Rancher's
ui-offline-preferred setting.`,
	}

	cmd.AddCommand(newResolveCmd(a))
	cmd.AddCommand(newLoadCmd(a))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newSettingsCmd(a))

	return cmd
}
