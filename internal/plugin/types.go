package plugin

import (
	"context"
	"strings"
	"time"
)

// BundleSuffix is the file name suffix of a UMD plugin bundle
const BundleSuffix = ".umd.min.js"

// Descriptor describes a plugin known to a registry
type Descriptor struct {
	// Name is the package name, e.g. harvester-1.1.0
	Name string `yaml:"name" json:"name"`

	// URL is where the bundle was fetched from
	URL string `yaml:"url,omitempty" json:"url,omitempty"`

	// Path is the bundle's location on disk
	Path string `yaml:"path,omitempty" json:"path,omitempty"`

	// Builtin marks plugins provided by the host rather than loaded
	Builtin bool `yaml:"builtin,omitempty" json:"builtin,omitempty"`

	// LoadedAt is when the bundle was stored
	LoadedAt time.Time `yaml:"loadedAt,omitempty" json:"loadedAt,omitempty"`
}

// Version returns the version part of the package name, if any
func (d Descriptor) Version() string {
	_, version, _ := strings.Cut(d.Name, "-")
	return version
}

// Product returns the package name without its version
func (d Descriptor) Product() string {
	product, _, _ := strings.Cut(d.Name, "-")
	return product
}

// Registry tracks loaded plugins and loads new ones
type Registry interface {
	// Plugins returns the registered plugins keyed by package name
	Plugins() map[string]Descriptor

	// Load fetches the bundle at url and registers it as name
	Load(ctx context.Context, name, url string) error
}

// Fetcher retrieves a bundle
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
