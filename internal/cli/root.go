package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aryankumar/hvui/internal/cli/app"
	"github.com/aryankumar/hvui/internal/cli/cluster"
	"github.com/aryankumar/hvui/internal/cli/plugin"
	"github.com/aryankumar/hvui/internal/config"
	"github.com/spf13/cobra"
)

// Execute runs the root command with the provided context
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	var cfgFile string
	a := &app.App{}

	rootCmd := &cobra.Command{
		Use:   "hvui",
		Short: "hvui - Harvester UI plugin resolver for Rancher",
		Long: `hvui finds the Harvester clusters managed by a Rancher server, resolves
which Harvester UI plugin each one needs, loads it into a local plugin cache
and links to the cluster's Harvester dashboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, cfgFile, a)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hvui.yaml or $HOME/.hvui/config.yaml)")
	flags.String("kubeconfig", "", "path to kubeconfig file (default is $HOME/.kube/config)")
	flags.String("context", "", "kubeconfig context of the Rancher server (default is the current context)")
	flags.String("rancher-url", "", "Rancher server URL (default is derived from the kubeconfig)")
	flags.StringP("output", "o", "table", "output format (json, yaml, table)")
	flags.BoolP("verbose", "v", false, "verbose output with debug logging")
	flags.Bool("no-color", false, "disable colored output")
	flags.Duration("timeout", 30*time.Second, "timeout for operations")
	flags.IntP("parallel", "p", 5, "number of clusters processed in parallel")
	flags.String("cache-dir", "", "plugin cache directory (default is $HOME/.hvui/plugins)")
	flags.StringSlice("builtin-plugins", nil, "plugins provided by the host, never fetched")
	flags.String("remote-plugin-url", "", "bundle for clusters without ui-info when remote assets are preferred")
	flags.Bool("dev", false, "use the development layout for embedded plugin bundles")

	registerFlagCompletions(rootCmd)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(cluster.NewClusterCmd(a))
	rootCmd.AddCommand(plugin.NewPluginCmd(a))

	return rootCmd
}

// initConfig loads the configuration and sets up logging
func initConfig(cmd *cobra.Command, cfgFile string, a *app.App) error {
	manager := config.NewManager(cfgFile)
	if err := manager.BindFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg, err := manager.Load()
	if err != nil {
		return err
	}

	a.Config = cfg
	a.Out = cmd.OutOrStdout()
	a.ErrOut = cmd.ErrOrStderr()
	a.Logger = setupLogging(a.ErrOut, cfg)

	if used := manager.ConfigFileUsed(); used != "" {
		a.Logger.Debug("loaded configuration", "file", used)
	}
	return nil
}

// setupLogging configures structured logging with slog
func setupLogging(w io.Writer, cfg *config.Config) *slog.Logger {
	logLevel := slog.LevelInfo
	if cfg.Defaults.Verbose {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if cfg.Defaults.NoColor {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	logger.Debug("verbose logging enabled")
	return logger
}
