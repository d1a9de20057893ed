// Package clustertest provides an in-process Rancher server for tests.
package clustertest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aryankumar/hvui/internal/cluster"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
)

// Token is the bearer token the server accepts
const Token = "token-test:secret"

// Cluster is a provisioning cluster served by the fake
type Cluster struct {
	Name      string
	ClusterID string
	Ready     bool

	// UIInfo is served as the cluster's ui-info; nil answers 404
	UIInfo map[string]string
}

// Rancher is a fake Rancher server. It serves Harvester provisioning
// clusters, settings, ui-info and static files through the cluster proxy paths.
type Rancher struct {
	*httptest.Server

	mu       sync.Mutex
	clusters map[string]Cluster
	settings map[string]string
	files    map[string]string
	requests map[string]int
}

// NewRancher starts a fake Rancher server that is closed with the test
func NewRancher(t *testing.T) *Rancher {
	t.Helper()

	r := &Rancher{
		clusters: make(map[string]Cluster),
		settings: make(map[string]string),
		files:    make(map[string]string),
		requests: make(map[string]int),
	}
	r.Server = httptest.NewServer(http.HandlerFunc(r.serve))
	t.Cleanup(r.Close)
	return r
}

// AddCluster registers a Harvester cluster and its ui-info
func (r *Rancher) AddCluster(c Cluster) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clusters[c.Name] = c
}

// SetSetting sets a management setting's value
func (r *Rancher) SetSetting(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings[name] = value
}

// AddFile serves body at path, relative to the server root
func (r *Rancher) AddFile(path, body string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files["/"+strings.TrimPrefix(path, "/")] = body
}

// Requests returns how often path was requested
func (r *Rancher) Requests(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[path]
}

// WriteKubeconfig writes a Rancher-generated style kubeconfig pointing at the
// server's local cluster proxy and returns its path
func (r *Rancher) WriteKubeconfig(t *testing.T) string {
	t.Helper()

	cfg := api.Config{
		CurrentContext: "rancher",
		Clusters: map[string]*api.Cluster{
			"local": {Server: r.URL + "/k8s/clusters/local"},
		},
		Contexts: map[string]*api.Context{
			"rancher": {Cluster: "local", AuthInfo: "rancher"},
		},
		AuthInfos: map[string]*api.AuthInfo{
			"rancher": {Token: Token},
		},
	}

	path := filepath.Join(t.TempDir(), "kubeconfig")
	if err := clientcmd.WriteToFile(cfg, path); err != nil {
		t.Fatalf("failed to write kubeconfig: %v", err)
	}
	return path
}

const (
	localAPI    = "/k8s/clusters/local/apis/"
	clustersAPI = localAPI + "provisioning.cattle.io/v1/namespaces/" + cluster.DefaultWorkspace + "/clusters"
	settingsAPI = localAPI + "management.cattle.io/v3/settings/"
)

func (r *Rancher) serve(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path := req.URL.Path
	r.requests[path]++

	if req.Header.Get("Authorization") != "Bearer "+Token && !strings.HasPrefix(path, "/public/") {
		writeStatus(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch {
	case path == clustersAPI && req.Method == http.MethodGet:
		items := make([]map[string]interface{}, 0, len(r.clusters))
		for _, c := range r.clusters {
			items = append(items, provisioningCluster(c))
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"apiVersion": "provisioning.cattle.io/v1",
			"kind":       "ClusterList",
			"metadata":   map[string]interface{}{},
			"items":      items,
		})

	case path == clustersAPI && req.Method == http.MethodPost:
		var obj map[string]interface{}
		if err := json.NewDecoder(req.Body).Decode(&obj); err != nil {
			writeStatus(w, http.StatusBadRequest, "BadRequest")
			return
		}
		name, _ := obj["metadata"].(map[string]interface{})["name"].(string)
		if _, exists := r.clusters[name]; exists {
			writeStatus(w, http.StatusConflict, "AlreadyExists")
			return
		}
		r.clusters[name] = Cluster{Name: name}
		writeJSON(w, http.StatusCreated, obj)

	case strings.HasPrefix(path, clustersAPI+"/"):
		c, ok := r.clusters[strings.TrimPrefix(path, clustersAPI+"/")]
		if !ok {
			writeStatus(w, http.StatusNotFound, "NotFound")
			return
		}
		writeJSON(w, http.StatusOK, provisioningCluster(c))

	case strings.HasPrefix(path, settingsAPI):
		name := strings.TrimPrefix(path, settingsAPI)
		value, ok := r.settings[name]
		if !ok {
			writeStatus(w, http.StatusNotFound, "NotFound")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"apiVersion": "management.cattle.io/v3",
			"kind":       "Setting",
			"metadata":   map[string]interface{}{"name": name},
			"value":      value,
			"default":    "",
		})

	case strings.HasSuffix(path, "/v1/harvester/ui-info"):
		for _, c := range r.clusters {
			if path == "/k8s/clusters/"+c.ClusterID+"/v1/harvester/ui-info" && c.UIInfo != nil {
				writeJSON(w, http.StatusOK, c.UIInfo)
				return
			}
		}
		http.NotFound(w, req)

	default:
		body, ok := r.files[path]
		if !ok {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "application/javascript")
		_, _ = w.Write([]byte(body))
	}
}

func provisioningCluster(c Cluster) map[string]interface{} {
	status := "False"
	if c.Ready {
		status = "True"
	}

	obj := map[string]interface{}{
		"apiVersion": "provisioning.cattle.io/v1",
		"kind":       "Cluster",
		"metadata": map[string]interface{}{
			"name":      c.Name,
			"namespace": cluster.DefaultWorkspace,
			"labels":    map[string]interface{}{cluster.ProviderLabel: cluster.ProviderHarvester},
		},
		"status": map[string]interface{}{
			"conditions": []interface{}{
				map[string]interface{}{"type": "Ready", "status": status},
			},
		},
	}
	if c.ClusterID != "" {
		obj["status"].(map[string]interface{})["clusterName"] = c.ClusterID
	}
	return obj
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, code int, reason string) {
	writeJSON(w, code, map[string]interface{}{
		"apiVersion": "v1",
		"kind":       "Status",
		"status":     "Failure",
		"reason":     reason,
		"code":       code,
	})
}
