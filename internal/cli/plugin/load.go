package plugin

import (
	"context"
	"fmt"

	"github.com/aryankumar/hvui/internal/cli/app"
	"github.com/aryankumar/hvui/internal/harvester"
	"github.com/spf13/cobra"
)

// newLoadCmd creates the plugin load command
func newLoadCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load NAME",
		Short: "Load the plugin a Harvester cluster needs into the cache",
		Long: `Resolve the plugin a Harvester cluster needs and fetch it into the local
plugin cache, unless a built-in Harvester plugin is configured or the package
is already cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), a, args[0])
		},
	}

	return cmd
}

func runLoad(ctx context.Context, a *app.App, name string) error {
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

	c := env.Session.Cluster(*rec)
	if err := c.LoadClusterPlugin(ctx); err != nil {
		return err
	}

	plugins := env.Store.Plugins()
	if _, ok := plugins[harvester.ProductName]; ok {
		return a.Print("harvester plugin is built in")
	}

	// ui-info and settings are cached by now
	details, err := c.PackageDetails(ctx)
	if err != nil {
		return err
	}

	d := plugins[details.Name]
	if d.Path == "" {
		return a.Print(fmt.Sprintf("plugin %s loaded", details.Name))
	}
	return a.Print(fmt.Sprintf("plugin %s loaded at %s", details.Name, d.Path))
}
