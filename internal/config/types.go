package config

import "time"

// Config represents the hvui configuration file structure
type Config struct {
	// Kubeconfig is the kubeconfig file holding the Rancher context
	Kubeconfig string `yaml:"kubeconfig,omitempty" json:"kubeconfig,omitempty"`

	// Context is the kubeconfig context that reaches the Rancher server
	Context string `yaml:"context,omitempty" json:"context,omitempty"`

	// RancherURL overrides the Rancher server URL derived from the kubeconfig
	RancherURL string `yaml:"rancherURL,omitempty" json:"rancherURL,omitempty"`

	// Plugins configures the plugin registry and legacy bundle locations
	Plugins PluginConfig `yaml:"plugins,omitempty" json:"plugins,omitempty"`

	// Defaults contains default settings for operations
	Defaults DefaultsConfig `yaml:"defaults,omitempty" json:"defaults,omitempty"`
}

// PluginConfig configures where plugins are stored and fetched from
type PluginConfig struct {
	// CacheDir is the plugin registry directory
	CacheDir string `yaml:"cacheDir,omitempty" json:"cacheDir,omitempty"`

	// Builtin lists plugins provided by the host, which are never fetched
	Builtin []string `yaml:"builtin,omitempty" json:"builtin,omitempty"`

	// RemoteURL is the bundle used for clusters without ui-info when remote
	// assets are preferred
	RemoteURL string `yaml:"remoteURL,omitempty" json:"remoteURL,omitempty"`

	// Dev selects the development serving layout for embedded bundles
	Dev bool `yaml:"dev,omitempty" json:"dev,omitempty"`
}

// DefaultsConfig contains default configuration values
type DefaultsConfig struct {
	// Timeout for API operations
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// Parallel is the number of clusters processed concurrently
	Parallel int `yaml:"parallel,omitempty" json:"parallel,omitempty"`

	// OutputFormat is the default output format (table, json, yaml)
	OutputFormat string `yaml:"outputFormat,omitempty" json:"outputFormat,omitempty"`

	// NoColor disables colored output
	NoColor bool `yaml:"noColor,omitempty" json:"noColor,omitempty"`

	// Verbose enables debug logging
	Verbose bool `yaml:"verbose,omitempty" json:"verbose,omitempty"`
}
