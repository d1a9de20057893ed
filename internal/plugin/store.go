package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/aryankumar/hvui/internal/util"
	"gopkg.in/yaml.v3"
)

const indexFile = "index.yaml"

// index is the on-disk record of loaded plugins
type index struct {
	Plugins []Descriptor `yaml:"plugins"`
}

// Store is a Registry backed by a directory.
// Each bundle is written to <dir>/<name>/<name>.umd.min.js and recorded in <dir>/index.yaml.
type Store struct {
	dir     string
	fetcher Fetcher
	logger  *slog.Logger

	// mu protects plugins and the index file
	mu      sync.RWMutex
	plugins map[string]Descriptor

	now func() time.Time
}

// NewStore opens the registry in dir, creating it if needed.
// builtin names are registered without a bundle.
func NewStore(dir string, fetcher Fetcher, builtin []string, logger *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: plugin cache directory", util.ErrMissingConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create plugin cache directory: %w", err)
	}

	s := &Store{
		dir:     dir,
		fetcher: fetcher,
		logger:  logger,
		plugins: make(map[string]Descriptor),
		now:     time.Now,
	}

	if err := s.readIndex(); err != nil {
		return nil, err
	}

	for _, name := range builtin {
		s.plugins[name] = Descriptor{Name: name, Builtin: true}
	}

	logger.Debug("opened plugin store", "dir", dir, "plugins", len(s.plugins))
	return s, nil
}

// Plugins returns a copy of the registered plugins
func (s *Store) Plugins() map[string]Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plugins := make(map[string]Descriptor, len(s.plugins))
	for name, d := range s.plugins {
		plugins[name] = d
	}
	return plugins
}

// Load fetches a bundle and registers it
func (s *Store) Load(ctx context.Context, name, url string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if url == "" {
		return fmt.Errorf("%w: bundle url for %s", util.ErrMissingConfig, name)
	}
	if s.fetcher == nil {
		return fmt.Errorf("%w: no fetcher configured", util.ErrLoadFailed)
	}

	s.logger.Debug("fetching plugin bundle", "plugin", name, "url", url)

	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, name, name+BundleSuffix)
	if err := writeFileAtomic(path, data); err != nil {
		return fmt.Errorf("%w: %v", util.ErrLoadFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.plugins[name] = Descriptor{
		Name:     name,
		URL:      url,
		Path:     path,
		LoadedAt: s.now().UTC(),
	}
	if err := s.writeIndex(); err != nil {
		return fmt.Errorf("%w: %v", util.ErrLoadFailed, err)
	}

	s.logger.Info("loaded plugin", "plugin", name, "bytes", len(data))
	return nil
}

// List returns the registered plugins grouped by product, newest version first
func (s *Store) List() []Descriptor {
	plugins := s.Plugins()
	list := make([]Descriptor, 0, len(plugins))
	for _, d := range plugins {
		list = append(list, d)
	}
	SortNewestFirst(list)
	return list
}

// SortNewestFirst orders descriptors by product name, then by descending
// semantic version. Names without a parseable version sort after versioned ones.
func SortNewestFirst(list []Descriptor) {
	sort.SliceStable(list, func(i, j int) bool {
		pi, pj := list[i].Product(), list[j].Product()
		if pi != pj {
			return pi < pj
		}

		vi, erri := semver.NewVersion(list[i].Version())
		vj, errj := semver.NewVersion(list[j].Version())
		switch {
		case erri == nil && errj == nil:
			if !vi.Equal(vj) {
				return vi.GreaterThan(vj)
			}
		case erri == nil:
			return true
		case errj == nil:
			return false
		}
		return list[i].Name < list[j].Name
	})
}

func (s *Store) readIndex() error {
	data, err := os.ReadFile(filepath.Join(s.dir, indexFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read plugin index: %w", err)
	}

	var idx index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return fmt.Errorf("failed to parse plugin index: %w", err)
	}

	for _, d := range idx.Plugins {
		if _, err := os.Stat(d.Path); err != nil {
			s.logger.Warn("dropping plugin with missing bundle", "plugin", d.Name, "path", d.Path)
			continue
		}
		s.plugins[d.Name] = d
	}
	return nil
}

// writeIndex must be called with mu held
func (s *Store) writeIndex() error {
	idx := index{Plugins: make([]Descriptor, 0, len(s.plugins))}
	for _, d := range s.plugins {
		if d.Builtin {
			continue
		}
		idx.Plugins = append(idx.Plugins, d)
	}
	sort.Slice(idx.Plugins, func(i, j int) bool { return idx.Plugins[i].Name < idx.Plugins[j].Name })

	data, err := yaml.Marshal(&idx)
	if err != nil {
		return fmt.Errorf("failed to encode plugin index: %w", err)
	}
	return writeFileAtomic(filepath.Join(s.dir, indexFile), data)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: plugin name %q", util.ErrInvalidConfig, name)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-"+filepath.Base(path))
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
