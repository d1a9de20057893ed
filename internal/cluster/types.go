package cluster

import (
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	// DefaultWorkspace is the namespace Rancher keeps provisioning clusters in
	DefaultWorkspace = "fleet-default"

	// ProviderLabel names the provider of a provisioning cluster
	ProviderLabel = "provider.cattle.io"

	// ProviderHarvester is the ProviderLabel value of Harvester clusters
	ProviderHarvester = "harvester"
)

// ProvisioningClusterResource is the Rancher resource Harvester clusters are imported as
var ProvisioningClusterResource = schema.GroupVersionResource{
	Group:    "provisioning.cattle.io",
	Version:  "v1",
	Resource: "clusters",
}

// Condition is a status condition of a provisioning cluster
type Condition struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// Record is a Harvester provisioning cluster as read from Rancher
type Record struct {
	// Name is the provisioning cluster name
	Name string `json:"name"`

	// Namespace is the workspace the cluster lives in
	Namespace string `json:"namespace"`

	// ClusterName is the management cluster id (status.clusterName), e.g. c-m-abc123
	ClusterName string `json:"clusterName"`

	// Conditions are the cluster's status conditions
	Conditions []Condition `json:"conditions,omitempty"`
}

// RecordFromUnstructured extracts a Record from a provisioning cluster object
func RecordFromUnstructured(obj *unstructured.Unstructured) Record {
	rec := Record{
		Name:      obj.GetName(),
		Namespace: obj.GetNamespace(),
	}
	rec.ClusterName, _, _ = unstructured.NestedString(obj.Object, "status", "clusterName")

	conditions, _, _ := unstructured.NestedSlice(obj.Object, "status", "conditions")
	for _, c := range conditions {
		m, ok := c.(map[string]interface{})
		if !ok {
			continue
		}
		cond := Condition{}
		cond.Type, _, _ = unstructured.NestedString(m, "type")
		cond.Status, _, _ = unstructured.NestedString(m, "status")
		cond.Reason, _, _ = unstructured.NestedString(m, "reason")
		cond.Message, _, _ = unstructured.NestedString(m, "message")
		if cond.Type == "" {
			continue
		}
		rec.Conditions = append(rec.Conditions, cond)
	}

	return rec
}
