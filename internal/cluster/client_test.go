package cluster

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/aryankumar/hvui/internal/util"
	"github.com/google/go-cmp/cmp"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/rest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newProvCluster(name, provider, mgmtID string, conditions ...map[string]interface{}) *unstructured.Unstructured {
	conds := make([]interface{}, 0, len(conditions))
	for _, c := range conditions {
		conds = append(conds, c)
	}
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"apiVersion": "provisioning.cattle.io/v1",
		"kind":       "Cluster",
		"metadata": map[string]interface{}{
			"name":      name,
			"namespace": DefaultWorkspace,
		},
		"status": map[string]interface{}{
			"clusterName": mgmtID,
			"conditions":  conds,
		},
	}}
	if provider != "" {
		obj.SetLabels(map[string]string{ProviderLabel: provider})
	}
	return obj
}

func newFakeClient(objs ...runtime.Object) *Client {
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(),
		map[schema.GroupVersionResource]string{ProvisioningClusterResource: "ClusterList"}, objs...)
	return &Client{
		Context:    "rancher",
		RancherURL: "https://rancher.example.com",
		Dynamic:    dyn,
		logger:     testLogger(),
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name       string
		restConfig *rest.Config
		wantURL    string
		wantErr    bool
	}{
		{
			name:       "rancher proxy kubeconfig",
			restConfig: &rest.Config{Host: "https://rancher.example.com/k8s/clusters/local"},
			wantURL:    "https://rancher.example.com",
		},
		{
			name:       "rancher root",
			restConfig: &rest.Config{Host: "https://rancher.example.com"},
			wantURL:    "https://rancher.example.com",
		},
		{
			name:       "nil rest config",
			restConfig: nil,
			wantErr:    true,
		},
		{
			name:       "host without scheme",
			restConfig: &rest.Config{Host: "rancher.example.com"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient("rancher", tt.restConfig, testLogger())
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.RancherURL != tt.wantURL {
				t.Errorf("expected rancher url %s, got %s", tt.wantURL, client.RancherURL)
			}
			if client.Dynamic == nil || client.REST == nil {
				t.Error("expected dynamic and rest clients to be set")
			}
		})
	}
}

func TestClient_Request(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/k8s/clusters/c-m-1/v1/harvester/ui-info" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ui-source":"bundled","ui-plugin-bundled-version":"1.1.0"}`))
	}))
	defer server.Close()

	client, err := NewClient("rancher", &rest.Config{Host: server.URL + "/k8s/clusters/local"}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := client.Request(context.Background(), "/k8s/clusters/c-m-1/v1/harvester/ui-info")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"ui-source":"bundled","ui-plugin-bundled-version":"1.1.0"}` {
		t.Errorf("unexpected body %s", body)
	}

	if _, err := client.Request(context.Background(), "/k8s/clusters/c-m-old/v1/harvester/ui-info"); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestClient_RequestTimeouts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(300 * time.Millisecond):
			w.Write([]byte(`{}`))
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	tests := []struct {
		name       string
		timeout    time.Duration
		ctxTimeout time.Duration
		wantErr    bool
	}{
		{name: "config timeout", timeout: 50 * time.Millisecond, wantErr: true},
		{name: "context deadline", ctxTimeout: 50 * time.Millisecond, wantErr: true},
		{name: "config timeout above the response time", timeout: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &rest.Config{Host: server.URL + "/k8s/clusters/local", Timeout: tt.timeout}
			client, err := NewClient("rancher", cfg, testLogger())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			ctx := context.Background()
			if tt.ctxTimeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, tt.ctxTimeout)
				defer cancel()
			}

			_, err = client.Request(ctx, "/k8s/clusters/c-m-1/v1/harvester/ui-info")
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestClient_ListHarvesterClusters(t *testing.T) {
	client := newFakeClient(
		newProvCluster("hv-east", ProviderHarvester, "c-m-east",
			map[string]interface{}{"type": "Connected", "status": "True"}),
		newProvCluster("hv-west", ProviderHarvester, "c-m-west"),
		newProvCluster("rke2-prod", "", "c-m-prod"),
	)

	records, err := client.ListHarvesterClusters(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := map[string]Record{}
	for _, r := range records {
		got[r.Name] = r
	}
	want := map[string]Record{
		"hv-east": {
			Name:        "hv-east",
			Namespace:   DefaultWorkspace,
			ClusterName: "c-m-east",
			Conditions:  []Condition{{Type: "Connected", Status: "True"}},
		},
		"hv-west": {
			Name:        "hv-west",
			Namespace:   DefaultWorkspace,
			ClusterName: "c-m-west",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_GetHarvesterCluster(t *testing.T) {
	client := newFakeClient(
		newProvCluster("hv-east", ProviderHarvester, "c-m-east"),
		newProvCluster("rke2-prod", "", "c-m-prod"),
	)

	t.Run("found", func(t *testing.T) {
		rec, err := client.GetHarvesterCluster(context.Background(), "hv-east")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.ClusterName != "c-m-east" {
			t.Errorf("expected management id c-m-east, got %s", rec.ClusterName)
		}
	})

	for _, name := range []string{"missing", "rke2-prod"} {
		t.Run("not found "+name, func(t *testing.T) {
			_, err := client.GetHarvesterCluster(context.Background(), name)
			if !errors.Is(err, util.ErrClusterNotFound) {
				t.Errorf("expected ErrClusterNotFound, got %v", err)
			}
		})
	}
}

func TestClient_CreateCluster(t *testing.T) {
	client := newFakeClient(newProvCluster("hv-east", ProviderHarvester, "c-m-east"))

	obj := newProvCluster("hv-new", ProviderHarvester, "")
	rec, err := client.CreateCluster(context.Background(), obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name != "hv-new" || rec.Namespace != DefaultWorkspace {
		t.Errorf("unexpected record %+v", rec)
	}

	_, err = client.CreateCluster(context.Background(), newProvCluster("hv-east", ProviderHarvester, ""))
	if !errors.Is(err, util.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}
