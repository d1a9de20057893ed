package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aryankumar/hvui/internal/util"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultConfigFileName = ".hvui.yaml"
	defaultConfigDir      = ".hvui"
	envPrefix             = "HVUI"
)

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"kubeconfig":        "kubeconfig",
	"context":           "context",
	"rancher-url":       "rancherURL",
	"cache-dir":         "plugins.cacheDir",
	"builtin-plugins":   "plugins.builtin",
	"remote-plugin-url": "plugins.remoteURL",
	"dev":               "plugins.dev",
	"timeout":           "defaults.timeout",
	"parallel":          "defaults.parallel",
	"output":            "defaults.outputFormat",
	"no-color":          "defaults.noColor",
	"verbose":           "defaults.verbose",
}

// Manager handles hvui configuration
type Manager struct {
	configPath string
	config     *Config
	viper      *viper.Viper
}

// NewManager creates a new configuration manager
func NewManager(configPath string) *Manager {
	v := viper.New()
	v.SetDefault("defaults.timeout", 30*time.Second)
	v.SetDefault("defaults.parallel", 5)
	v.SetDefault("defaults.outputFormat", "table")

	return &Manager{
		configPath: configPath,
		viper:      v,
		config:     &Config{},
	}
}

// BindFlags makes flags that were set on the command line override the file and environment
func (m *Manager) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := m.viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load loads the configuration from file, environment and bound flags
func (m *Manager) Load() (*Config, error) {
	configPath := m.configPath
	if configPath == "" {
		found, err := defaultConfigFile()
		if err != nil {
			return nil, err
		}
		configPath = found
	}
	if configPath != "" {
		m.viper.SetConfigFile(configPath)
		m.viper.SetConfigType("yaml")
	}

	// HVUI_PLUGINS_CACHEDIR and friends
	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	m.config = &Config{}

	if configPath != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			// An explicit path that does not exist falls back to defaults
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if err := m.viper.Unmarshal(m.config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := m.applyDefaults(); err != nil {
		return nil, err
	}

	if err := m.config.Validate(); err != nil {
		return nil, err
	}

	return m.config, nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// ConfigFileUsed returns the configuration file that was read, if any
func (m *Manager) ConfigFileUsed() string {
	return m.viper.ConfigFileUsed()
}

// defaultConfigFile returns ~/.hvui.yaml or ~/.hvui/config.yaml, whichever
// exists first, or "" when neither does
func defaultConfigFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	candidates := []string{
		filepath.Join(home, defaultConfigFileName),
		filepath.Join(home, defaultConfigDir, "config.yaml"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// applyDefaults sets values that depend on the environment
func (m *Manager) applyDefaults() error {
	if m.config.Plugins.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		m.config.Plugins.CacheDir = filepath.Join(home, defaultConfigDir, "plugins")
	}

	expanded, err := expandPath(m.config.Plugins.CacheDir)
	if err != nil {
		return err
	}
	m.config.Plugins.CacheDir = expanded

	return nil
}

// Validate checks the configuration for values hvui cannot use
func (c *Config) Validate() error {
	switch c.Defaults.OutputFormat {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("%w: unsupported output format %q (supported: table, json, yaml)",
			util.ErrInvalidConfig, c.Defaults.OutputFormat)
	}

	if c.Defaults.Parallel <= 0 {
		return fmt.Errorf("%w: parallel must be positive, got %d", util.ErrInvalidConfig, c.Defaults.Parallel)
	}

	if c.Defaults.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", util.ErrInvalidConfig)
	}

	if c.RancherURL != "" {
		if _, err := util.RancherBaseURL(c.RancherURL); err != nil {
			return err
		}
	}

	if c.Plugins.RemoteURL != "" {
		if _, err := url.Parse(c.Plugins.RemoteURL); err != nil {
			return fmt.Errorf("%w: remote plugin url %q: %v", util.ErrInvalidConfig, c.Plugins.RemoteURL, err)
		}
	}

	return nil
}
