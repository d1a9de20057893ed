package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aryankumar/hvui/internal/util"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
)

// KubeconfigLoader finds the kubeconfig holding the Rancher context
type KubeconfigLoader struct {
	paths        []string
	loadedConfig *api.Config
}

// NewKubeconfigLoader creates a new kubeconfig loader
// It checks sources in the following order:
// 1. Explicit path (--kubeconfig flag)
// 2. KUBECONFIG environment variable (multiple paths separated by the OS list separator)
// 3. Default ~/.kube/config
func NewKubeconfigLoader(explicitPath string) *KubeconfigLoader {
	loader := &KubeconfigLoader{
		paths: make([]string, 0),
	}

	if explicitPath != "" {
		if expandedPath, err := expandPath(explicitPath); err == nil {
			loader.paths = append(loader.paths, expandedPath)
		}
		return loader
	}

	if kubeconfigEnv := os.Getenv("KUBECONFIG"); kubeconfigEnv != "" {
		for _, path := range filepath.SplitList(kubeconfigEnv) {
			path = strings.TrimSpace(path)
			if path == "" {
				continue
			}
			if expandedPath, err := expandPath(path); err == nil {
				loader.paths = append(loader.paths, expandedPath)
			}
		}
	}

	if len(loader.paths) == 0 {
		home, err := os.UserHomeDir()
		if err == nil {
			loader.paths = append(loader.paths, filepath.Join(home, ".kube", "config"))
		}
	}

	return loader
}

// Load returns the merged kubeconfig from all sources
func (l *KubeconfigLoader) Load() (*api.Config, error) {
	if l.loadedConfig != nil {
		return l.loadedConfig, nil
	}

	if len(l.paths) == 0 {
		return nil, fmt.Errorf("%w: no kubeconfig paths available", util.ErrMissingConfig)
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{
		Precedence: l.paths,
	}

	config, err := loadingRules.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	l.loadedConfig = config
	return config, nil
}

// GetContexts returns all available context names, sorted
func (l *KubeconfigLoader) GetContexts() ([]string, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	contexts := make([]string, 0, len(config.Contexts))
	for name := range config.Contexts {
		contexts = append(contexts, name)
	}
	sort.Strings(contexts)

	return contexts, nil
}

// GetCurrentContext returns the current context name
func (l *KubeconfigLoader) GetCurrentContext() (string, error) {
	config, err := l.Load()
	if err != nil {
		return "", err
	}

	return config.CurrentContext, nil
}

// ResolveContext returns contextName, or the current context when it is empty
func (l *KubeconfigLoader) ResolveContext(contextName string) (string, error) {
	config, err := l.Load()
	if err != nil {
		return "", err
	}

	if contextName == "" {
		contextName = config.CurrentContext
	}
	if contextName == "" {
		return "", fmt.Errorf("%w: no context given and kubeconfig has no current context", util.ErrMissingConfig)
	}
	if _, ok := config.Contexts[contextName]; !ok {
		return "", fmt.Errorf("%w: context %q not found in kubeconfig", util.ErrInvalidConfig, contextName)
	}

	return contextName, nil
}

// RancherURL returns the Rancher server URL for a context. Rancher-generated
// kubeconfigs point at a cluster proxy path below the server.
func (l *KubeconfigLoader) RancherURL(contextName string) (string, error) {
	contextName, err := l.ResolveContext(contextName)
	if err != nil {
		return "", err
	}

	config := l.loadedConfig
	ctx := config.Contexts[contextName]
	cluster := config.Clusters[ctx.Cluster]
	if cluster == nil {
		return "", fmt.Errorf("%w: cluster %q not found for context %q", util.ErrInvalidConfig, ctx.Cluster, contextName)
	}

	return util.RancherBaseURL(cluster.Server)
}

// BuildClientConfig creates a rest.Config for a specific context
func (l *KubeconfigLoader) BuildClientConfig(contextName string) (*rest.Config, error) {
	if len(l.paths) == 0 {
		return nil, fmt.Errorf("%w: no kubeconfig paths available", util.ErrMissingConfig)
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{
		Precedence: l.paths,
	}

	configOverrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		configOverrides.CurrentContext = contextName
	}

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules,
		configOverrides,
	)

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create client config for context %q: %w", contextName, err)
	}

	return restConfig, nil
}

// GetPaths returns the kubeconfig paths being used
func (l *KubeconfigLoader) GetPaths() []string {
	return l.paths
}

// expandPath expands ~ to home directory and evaluates environment variables
func expandPath(path string) (string, error) {
	path = os.ExpandEnv(path)

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	return filepath.Clean(path), nil
}
