package harvester

import (
	"log/slog"
	"sync"

	"github.com/aryankumar/hvui/internal/cluster"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Condition types reported on provisioning clusters
const (
	ConditionConnected = "Connected"
	ConditionReady     = "Ready"
)

// Cluster is a Harvester cluster managed by Rancher
type Cluster struct {
	cluster.Record

	session *Session
	logger  *slog.Logger

	// uiInfoMu guards uiInfo, which is set at most once
	uiInfoMu sync.Mutex
	uiInfo   *UIInfo
}

// HasCondition reports whether the cluster carries a condition of the given type
func (c *Cluster) HasCondition(condType string) bool {
	for _, cond := range c.Conditions {
		if cond.Type == condType {
			return true
		}
	}
	return false
}

// IsCondition reports whether the condition of the given type is True
func (c *Cluster) IsCondition(condType string) bool {
	for _, cond := range c.Conditions {
		if cond.Type == condType {
			return cond.Status == "True"
		}
	}
	return false
}

// IsReady prefers the Connected condition (Rancher 2.6+) over the older Ready condition
func (c *Cluster) IsReady() bool {
	if c.HasCondition(ConditionConnected) {
		return c.IsCondition(ConditionConnected)
	}
	return c.IsCondition(ConditionReady)
}

// NewImport returns a provisioning cluster object for importing a Harvester cluster
func NewImport(name string) *unstructured.Unstructured {
	obj := &unstructured.Unstructured{}
	obj.SetAPIVersion(cluster.ProvisioningClusterResource.GroupVersion().String())
	obj.SetKind("Cluster")
	obj.SetName(name)
	obj.SetLabels(map[string]string{cluster.ProviderLabel: cluster.ProviderHarvester})
	ApplyDefaults(obj)
	return obj
}

// ApplyDefaults fills in a new cluster that has no spec yet
func ApplyDefaults(obj *unstructured.Unstructured) {
	if _, ok := obj.Object["spec"]; ok {
		return
	}
	obj.Object["spec"] = map[string]interface{}{
		"agentEnvVars": []interface{}{},
	}
	obj.SetNamespace(cluster.DefaultWorkspace)
}
