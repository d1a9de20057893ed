package harvester

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aryankumar/hvui/internal/notify"
	"github.com/aryankumar/hvui/internal/router"
	"github.com/aryankumar/hvui/internal/util"
)

const (
	// DashboardResource is the Harvester dashboard view
	DashboardResource = "harvesterhci.io.dashboard"

	// LoadErrorTitle is the title of the notification shown when loading fails
	LoadErrorTitle = "Error loading harvester plugin"
)

// PackageDetails resolves which plugin the cluster needs and where to fetch it.
// The cluster's ui-info decides when available, otherwise the Rancher settings do.
func (c *Cluster) PackageDetails(ctx context.Context) (PackageDetails, error) {
	if c.ClusterName == "" {
		return PackageDetails{}, fmt.Errorf("%w: cluster has no management cluster id yet", util.ErrMissingConfig)
	}

	if info := c.UIInfo(ctx); info != nil {
		return ResolveModern(*info, c.ClusterName)
	}

	s, err := c.session.Settings(ctx)
	if err != nil {
		return PackageDetails{}, err
	}
	return ResolveLegacy(s, c.session.legacy)
}

// LoadClusterPlugin loads the cluster's plugin into the registry unless it,
// or a built-in Harvester plugin, is already there
func (c *Cluster) LoadClusterPlugin(ctx context.Context) error {
	registry := c.session.registry
	plugins := registry.Plugins()

	if _, ok := plugins[ProductName]; ok {
		c.logger.Info("harvester plugin built in")
		return nil
	}

	details, err := c.PackageDetails(ctx)
	if err != nil {
		return util.WrapClusterError(c.Name, err)
	}

	c.logger.Info("harvester plugin details", "plugin", details.Name, "url", details.URL)

	if _, ok := plugins[details.Name]; ok {
		c.logger.Debug("harvester plugin already loaded", "plugin", details.Name)
		return nil
	}

	// The shared load outlives any one caller; each caller stops waiting
	// when its own context ends.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.session.loads.DoChan(details.Name, func() (interface{}, error) {
		// another load of this package may have finished since the snapshot above
		if _, ok := registry.Plugins()[details.Name]; ok {
			return nil, nil
		}
		c.logger.Info("attempting to load harvester plugin", "plugin", details.Name)
		return nil, registry.Load(loadCtx, details.Name, details.URL)
	})

	select {
	case res := <-ch:
		if res.Shared {
			c.logger.Debug("shared plugin load with a concurrent caller", "plugin", details.Name)
		}
		if res.Err != nil {
			return util.WrapClusterError(c.Name, res.Err)
		}
		return nil
	case <-ctx.Done():
		return util.WrapClusterError(c.Name, ctx.Err())
	}
}

// DashboardRoute is the route of the cluster's Harvester dashboard
func (c *Cluster) DashboardRoute() router.Route {
	return router.Route{
		Name: router.RouteClusterResource,
		Params: map[string]string{
			"cluster":  c.ClusterName,
			"product":  ProductName,
			"resource": DashboardResource,
		},
	}
}

// GoToCluster loads the cluster's plugin and navigates to its dashboard.
// Failures are reported through the session's notifier and not returned;
// the result tells whether navigation happened.
func (c *Cluster) GoToCluster(ctx context.Context) bool {
	if err := c.goToCluster(ctx); err != nil {
		ReportLoadError(c.session.notifier, c.logger, err)
		return false
	}
	return true
}

// GoToClusterAsync runs GoToCluster in the background.
// The channel yields its result once and is then closed.
func (c *Cluster) GoToClusterAsync(ctx context.Context) <-chan bool {
	done := make(chan bool, 1)
	go func() {
		defer close(done)
		done <- c.GoToCluster(ctx)
	}()
	return done
}

func (c *Cluster) goToCluster(ctx context.Context) error {
	if err := c.LoadClusterPlugin(ctx); err != nil {
		return err
	}
	if c.session.navigator == nil {
		return fmt.Errorf("%w: no navigator", util.ErrMissingConfig)
	}
	return c.session.navigator.Navigate(c.DashboardRoute())
}

// ReportLoadError turns a load failure into a user-facing notification
func ReportLoadError(sink notify.Sink, logger *slog.Logger, err error) {
	if err == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	message := err.Error()
	logger.Error("failed to load harvester package", "error", message)

	if sink == nil {
		return
	}
	sink.Error(notify.Notification{
		Title:   LoadErrorTitle,
		Message: message,
		Timeout: notify.DefaultErrorTimeout,
	})
}
