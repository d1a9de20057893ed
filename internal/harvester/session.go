package harvester

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aryankumar/hvui/internal/cluster"
	"github.com/aryankumar/hvui/internal/notify"
	"github.com/aryankumar/hvui/internal/plugin"
	"github.com/aryankumar/hvui/internal/router"
	"github.com/aryankumar/hvui/internal/settings"
	"golang.org/x/sync/singleflight"
)

// SettingsLoader reads the Rancher settings snapshot
type SettingsLoader func(ctx context.Context) (settings.Getter, error)

// Session holds the collaborators shared by every cluster of one Rancher server
type Session struct {
	dispatcher cluster.Dispatcher
	registry   plugin.Registry
	navigator  router.Navigator
	notifier   notify.Sink
	legacy     LegacyOptions
	logger     *slog.Logger

	loadSettings SettingsLoader

	// settingsMu guards settings; only a successful read is kept
	settingsMu sync.Mutex
	settings   settings.Getter

	// loads collapses concurrent loads of the same package
	loads singleflight.Group
}

// Option configures a Session
type Option func(*Session)

// WithSettings uses a fixed settings snapshot
func WithSettings(g settings.Getter) Option {
	return func(s *Session) {
		s.loadSettings = func(context.Context) (settings.Getter, error) { return g, nil }
	}
}

// WithSettingsLoader reads settings on first use
func WithSettingsLoader(load SettingsLoader) Option {
	return func(s *Session) {
		s.loadSettings = load
	}
}

// WithNavigator sets where GoToCluster sends the user
func WithNavigator(n router.Navigator) Option {
	return func(s *Session) {
		s.navigator = n
	}
}

// WithNotifier sets where load errors are reported
func WithNotifier(n notify.Sink) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithLegacyOptions configures resolution for clusters without ui-info
func WithLegacyOptions(opts LegacyOptions) Option {
	return func(s *Session) {
		s.legacy = opts
	}
}

// WithLogger sets the session logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates a session dispatching requests to Rancher and loading
// plugins into registry
func NewSession(dispatcher cluster.Dispatcher, registry plugin.Registry, opts ...Option) *Session {
	s := &Session{
		dispatcher: dispatcher,
		registry:   registry,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cluster returns the model of one Harvester cluster.
// Each call returns a new model with its own ui-info cache.
func (s *Session) Cluster(rec cluster.Record) *Cluster {
	return &Cluster{
		Record:  rec,
		session: s,
		logger:  s.logger.With("cluster", rec.Name),
	}
}

// Settings returns the Rancher settings. The first successful read is kept
// for the session; a failed read is retried by the next caller.
func (s *Session) Settings(ctx context.Context) (settings.Getter, error) {
	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	if s.settings != nil {
		return s.settings, nil
	}
	if s.loadSettings == nil {
		s.settings = settings.NewSnapshot(nil)
		return s.settings, nil
	}

	g, err := s.loadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read rancher settings: %w", err)
	}
	s.settings = g
	return g, nil
}
