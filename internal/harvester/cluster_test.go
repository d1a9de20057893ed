package harvester

import (
	"testing"

	"github.com/aryankumar/hvui/internal/cluster"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func TestCluster_IsReady(t *testing.T) {
	tests := []struct {
		name       string
		conditions []cluster.Condition
		want       bool
	}{
		{
			name:       "connected",
			conditions: []cluster.Condition{{Type: "Connected", Status: "True"}},
			want:       true,
		},
		{
			name: "connected condition wins over ready",
			conditions: []cluster.Condition{
				{Type: "Ready", Status: "True"},
				{Type: "Connected", Status: "False"},
			},
			want: false,
		},
		{
			name:       "ready on older rancher",
			conditions: []cluster.Condition{{Type: "Ready", Status: "True"}},
			want:       true,
		},
		{
			name:       "not ready",
			conditions: []cluster.Condition{{Type: "Ready", Status: "Unknown"}},
			want:       false,
		},
		{
			name: "no conditions",
			want: false,
		},
	}

	session := NewSession(&fakeDispatcher{}, newFakeRegistry())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := session.Cluster(cluster.Record{Name: "hv", Conditions: tt.conditions})
			if got := hc.IsReady(); got != tt.want {
				t.Errorf("IsReady() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewImport(t *testing.T) {
	obj := NewImport("hv-new")

	if obj.GetNamespace() != cluster.DefaultWorkspace {
		t.Errorf("expected namespace %s, got %s", cluster.DefaultWorkspace, obj.GetNamespace())
	}
	if obj.GetLabels()[cluster.ProviderLabel] != cluster.ProviderHarvester {
		t.Errorf("expected harvester provider label, got %v", obj.GetLabels())
	}
	if obj.GetAPIVersion() != "provisioning.cattle.io/v1" || obj.GetKind() != "Cluster" {
		t.Errorf("unexpected type %s %s", obj.GetAPIVersion(), obj.GetKind())
	}
	envVars, found, err := unstructured.NestedSlice(obj.Object, "spec", "agentEnvVars")
	if err != nil || !found || len(envVars) != 0 {
		t.Errorf("expected empty agentEnvVars, got %v (found=%v, err=%v)", envVars, found, err)
	}
}

func TestApplyDefaults_KeepsExistingSpec(t *testing.T) {
	obj := &unstructured.Unstructured{Object: map[string]interface{}{
		"metadata": map[string]interface{}{"name": "hv", "namespace": "custom"},
		"spec":     map[string]interface{}{"kubernetesVersion": "v1.27.6+rke2r1"},
	}}

	ApplyDefaults(obj)

	if obj.GetNamespace() != "custom" {
		t.Errorf("namespace changed to %s", obj.GetNamespace())
	}
	if _, found, _ := unstructured.NestedSlice(obj.Object, "spec", "agentEnvVars"); found {
		t.Error("agentEnvVars should not be added to an existing spec")
	}
}
