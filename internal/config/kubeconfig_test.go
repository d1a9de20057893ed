package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aryankumar/hvui/internal/util"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
)

func TestNewKubeconfigLoader(t *testing.T) {
	tests := []struct {
		name          string
		explicitPath  string
		kubeconfigEnv string
		wantPaths     int
	}{
		{
			name:          "explicit path takes precedence",
			explicitPath:  "/path/to/kubeconfig",
			kubeconfigEnv: "/env/kubeconfig",
			wantPaths:     1,
		},
		{
			name:          "KUBECONFIG with single path",
			kubeconfigEnv: "/env/kubeconfig",
			wantPaths:     1,
		},
		{
			name:          "KUBECONFIG with multiple paths",
			kubeconfigEnv: strings.Join([]string{"/env/a", "/env/b", "/env/c"}, string(filepath.ListSeparator)),
			wantPaths:     3,
		},
		{
			name:      "default to ~/.kube/config",
			wantPaths: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("KUBECONFIG", tt.kubeconfigEnv)

			loader := NewKubeconfigLoader(tt.explicitPath)

			if len(loader.GetPaths()) != tt.wantPaths {
				t.Errorf("got %d paths, want %d", len(loader.GetPaths()), tt.wantPaths)
			}
		})
	}
}

func TestKubeconfigLoader_Load(t *testing.T) {
	loader := NewKubeconfigLoader(writeTestKubeconfig(t))

	loadedConfig, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load kubeconfig: %v", err)
	}

	if len(loadedConfig.Contexts) != 2 {
		t.Errorf("got %d contexts, want 2", len(loadedConfig.Contexts))
	}

	if loadedConfig.CurrentContext != "rancher" {
		t.Errorf("got current context %q, want %q", loadedConfig.CurrentContext, "rancher")
	}

	loadedConfig2, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load kubeconfig second time: %v", err)
	}

	if loadedConfig != loadedConfig2 {
		t.Error("expected cached config to be returned")
	}
}

func TestKubeconfigLoader_GetContexts(t *testing.T) {
	loader := NewKubeconfigLoader(writeTestKubeconfig(t))

	contexts, err := loader.GetContexts()
	if err != nil {
		t.Fatalf("failed to get contexts: %v", err)
	}

	want := []string{"rancher", "rancher-direct"}
	if strings.Join(contexts, ",") != strings.Join(want, ",") {
		t.Errorf("got contexts %v, want %v", contexts, want)
	}
}

func TestKubeconfigLoader_GetCurrentContext(t *testing.T) {
	loader := NewKubeconfigLoader(writeTestKubeconfig(t))

	currentContext, err := loader.GetCurrentContext()
	if err != nil {
		t.Fatalf("failed to get current context: %v", err)
	}

	if currentContext != "rancher" {
		t.Errorf("got current context %q, want %q", currentContext, "rancher")
	}
}

func TestKubeconfigLoader_RancherURL(t *testing.T) {
	loader := NewKubeconfigLoader(writeTestKubeconfig(t))

	tests := []struct {
		name        string
		contextName string
		want        string
		wantErr     error
	}{
		{
			name: "current context through the local cluster proxy",
			want: "https://rancher.example.com",
		},
		{
			name:        "explicit context at the server root",
			contextName: "rancher-direct",
			want:        "https://rancher.example.com:8443/prefix",
		},
		{
			name:        "unknown context",
			contextName: "non-existent",
			wantErr:     util.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loader.RancherURL(tt.contextName)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("RancherURL() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RancherURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKubeconfigLoader_ResolveContextWithoutCurrent(t *testing.T) {
	config := createTestKubeconfig()
	config.CurrentContext = ""
	path := filepath.Join(t.TempDir(), "config")
	if err := clientcmd.WriteToFile(*config, path); err != nil {
		t.Fatalf("failed to write test kubeconfig: %v", err)
	}

	_, err := NewKubeconfigLoader(path).ResolveContext("")
	if !errors.Is(err, util.ErrMissingConfig) {
		t.Errorf("ResolveContext() error = %v, want %v", err, util.ErrMissingConfig)
	}
}

func TestKubeconfigLoader_BuildClientConfig(t *testing.T) {
	loader := NewKubeconfigLoader(writeTestKubeconfig(t))

	restConfig, err := loader.BuildClientConfig("rancher")
	if err != nil {
		t.Fatalf("failed to build client config: %v", err)
	}

	if restConfig.Host != "https://rancher.example.com/k8s/clusters/local" {
		t.Errorf("got host %q, want %q", restConfig.Host, "https://rancher.example.com/k8s/clusters/local")
	}

	if restConfig.BearerToken != "token-abc:secret" {
		t.Errorf("got bearer token %q", restConfig.BearerToken)
	}

	_, err = loader.BuildClientConfig("non-existent")
	if err == nil {
		t.Error("expected error for non-existent context, got nil")
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HVUI_TEST_DIR", "/from/env")

	tests := []struct {
		name    string
		input   string
		wantAbs bool
		suffix  string
	}{
		{name: "expand tilde", input: "~/test/path", wantAbs: true, suffix: "/test/path"},
		{name: "absolute path", input: "/absolute/path", wantAbs: true, suffix: "/absolute/path"},
		{name: "relative path", input: "relative/path", suffix: "relative/path"},
		{name: "environment variable", input: "$HVUI_TEST_DIR/plugins", wantAbs: true, suffix: "/from/env/plugins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.wantAbs && !filepath.IsAbs(result) {
				t.Errorf("expected absolute path, got %q", result)
			}
			if !strings.HasSuffix(result, tt.suffix) {
				t.Errorf("got %q, want suffix %q", result, tt.suffix)
			}
		})
	}
}

// writeTestKubeconfig writes createTestKubeconfig to a temporary file
func writeTestKubeconfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config")
	if err := clientcmd.WriteToFile(*createTestKubeconfig(), path); err != nil {
		t.Fatalf("failed to write test kubeconfig: %v", err)
	}
	return path
}

// createTestKubeconfig creates a Rancher-generated style kubeconfig
func createTestKubeconfig() *api.Config {
	return &api.Config{
		CurrentContext: "rancher",
		Clusters: map[string]*api.Cluster{
			"local": {
				Server: "https://rancher.example.com/k8s/clusters/local",
			},
			"direct": {
				Server: "https://rancher.example.com:8443/prefix/",
			},
		},
		Contexts: map[string]*api.Context{
			"rancher": {
				Cluster:  "local",
				AuthInfo: "rancher-user",
			},
			"rancher-direct": {
				Cluster:  "direct",
				AuthInfo: "rancher-user",
			},
		},
		AuthInfos: map[string]*api.AuthInfo{
			"rancher-user": {
				Token: "token-abc:secret",
			},
		},
	}
}
