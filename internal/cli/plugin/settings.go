package plugin

import (
	"context"

	"github.com/aryankumar/hvui/internal/cli/app"
	"github.com/aryankumar/hvui/internal/settings"
	"github.com/spf13/cobra"
)

// newSettingsCmd creates the plugin settings command
func newSettingsCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the Rancher settings used for legacy plugin resolution",
		Long: `Show the Rancher settings that decide the plugin of clusters without ui-info.
Settings that do not exist in Rancher are omitted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettings(cmd.Context(), a)
		},
	}

	return cmd
}

func runSettings(ctx context.Context, a *app.App) error {
	ctx, cancel := a.WithTimeout(ctx)
	defer cancel()

	env, err := a.Connect(ctx)
	if err != nil {
		return err
	}

	snapshot, err := env.Session.Settings(ctx)
	if err != nil {
		return err
	}

	values := make(map[string]string)
	for _, key := range settings.Keys() {
		if v, ok := snapshot.Get(key); ok {
			values[string(key)] = v
		}
	}
	return a.Print(values)
}
