// Package app holds the state shared by hvui commands and connects them to Rancher.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aryankumar/hvui/internal/cluster"
	"github.com/aryankumar/hvui/internal/config"
	"github.com/aryankumar/hvui/internal/executor"
	"github.com/aryankumar/hvui/internal/harvester"
	"github.com/aryankumar/hvui/internal/notify"
	"github.com/aryankumar/hvui/internal/output"
	"github.com/aryankumar/hvui/internal/plugin"
	"github.com/aryankumar/hvui/internal/router"
	"github.com/aryankumar/hvui/internal/settings"
	"github.com/aryankumar/hvui/pkg/version"
)

// App is filled in by the root command before any subcommand runs
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Out    io.Writer
	ErrOut io.Writer
}

// Env is a connection to one Rancher server with the Harvester plugin
// machinery wired to it
type Env struct {
	Client  *cluster.Client
	Store   *plugin.Store
	Session *harvester.Session
}

// Log returns the command logger, or the default logger before setup
func (a *App) Log() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

func (a *App) errOut() io.Writer {
	if a.ErrOut == nil {
		return os.Stderr
	}
	return a.ErrOut
}

// Connect builds the Rancher client, plugin store and Harvester session
func (a *App) Connect(ctx context.Context) (*Env, error) {
	if a.Config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	cfg := a.Config
	logger := a.Log()

	loader := config.NewKubeconfigLoader(cfg.Kubeconfig)
	logger.Debug("using kubeconfig", "paths", loader.GetPaths())

	contextName, err := loader.ResolveContext(cfg.Context)
	if err != nil {
		return nil, err
	}

	rancherURL := cfg.RancherURL
	if rancherURL == "" {
		if rancherURL, err = loader.RancherURL(contextName); err != nil {
			return nil, err
		}
	}

	restConfig, err := loader.BuildClientConfig(contextName)
	if err != nil {
		return nil, err
	}
	restConfig.Host = rancherURL
	restConfig.Timeout = cfg.Defaults.Timeout
	restConfig.UserAgent = version.Get().UserAgent()

	client, err := cluster.NewClient(contextName, restConfig, logger)
	if err != nil {
		return nil, err
	}

	fetcher, err := plugin.NewHTTPFetcher(client.RancherURL, client.RestConfig)
	if err != nil {
		return nil, err
	}

	store, err := a.OpenStore(fetcher)
	if err != nil {
		return nil, err
	}

	session := harvester.NewSession(client, store,
		harvester.WithSettingsLoader(func(ctx context.Context) (settings.Getter, error) {
			return settings.Load(ctx, client.Dynamic, logger)
		}),
		harvester.WithNavigator(router.NewLinker(client.RancherURL, a.out())),
		harvester.WithNotifier(notify.NewConsole(a.errOut(), cfg.Defaults.NoColor)),
		harvester.WithLegacyOptions(harvester.LegacyOptions{
			Dev:             cfg.Plugins.Dev,
			RemotePluginURL: cfg.Plugins.RemoteURL,
		}),
		harvester.WithLogger(logger),
	)

	return &Env{
		Client:  client,
		Store:   store,
		Session: session,
	}, nil
}

// OpenStore opens the configured plugin registry. fetcher may be nil for
// read-only use.
func (a *App) OpenStore(fetcher plugin.Fetcher) (*plugin.Store, error) {
	if a.Config == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return plugin.NewStore(a.Config.Plugins.CacheDir, fetcher, a.Config.Plugins.Builtin, a.Log())
}

// Formatter returns the formatter for the configured output format
func (a *App) Formatter(opts ...output.Option) output.Formatter {
	format := output.FormatTable
	noColor := false
	if a.Config != nil {
		format = output.Format(a.Config.Defaults.OutputFormat)
		noColor = a.Config.Defaults.NoColor
	}
	return output.NewFormatter(format, append([]output.Option{output.WithNoColor(noColor)}, opts...)...)
}

// Print writes data in the configured output format
func (a *App) Print(data any, opts ...output.Option) error {
	return a.Formatter(opts...).Format(a.out(), data)
}

// PrintObject writes a structured document, as YAML unless JSON is configured
func (a *App) PrintObject(obj any) error {
	if a.Config != nil && output.Format(a.Config.Defaults.OutputFormat) == output.FormatJSON {
		return output.NewJSONFormatter(nil).Format(a.out(), obj)
	}
	return output.NewYAMLFormatter(nil).Format(a.out(), obj)
}

// PrintResults writes per-cluster results in the configured output format
func (a *App) PrintResults(results []executor.Result, opts ...output.Option) error {
	return a.Formatter(opts...).FormatResults(a.out(), results)
}

// WithTimeout bounds ctx by the configured operation timeout
func (a *App) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.Config == nil || a.Config.Defaults.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.Config.Defaults.Timeout)
}

// Parallel returns the configured number of concurrent cluster operations
func (a *App) Parallel() int {
	if a.Config == nil {
		return 1
	}
	return a.Config.Defaults.Parallel
}
