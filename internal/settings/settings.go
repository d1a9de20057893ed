// Package settings reads the Rancher global settings hvui consults when a
// Harvester cluster does not describe its own UI plugin.
package settings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aryankumar/hvui/internal/util"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/dynamic"
)

// Key is a recognized Rancher setting name
type Key string

const (
	// KeyUIOfflinePreferred selects embedded ("true"), remote ("false") or
	// version-derived ("dynamic") UI assets
	KeyUIOfflinePreferred Key = "ui-offline-preferred"

	// KeyServerVersion is the running Rancher version
	KeyServerVersion Key = "server-version"
)

// Keys returns every recognized setting key
func Keys() []Key {
	return []Key{KeyUIOfflinePreferred, KeyServerVersion}
}

// Resource is the management API resource holding Rancher settings
var Resource = schema.GroupVersionResource{
	Group:    "management.cattle.io",
	Version:  "v3",
	Resource: "settings",
}

// Getter looks up a setting value
type Getter interface {
	Get(key Key) (string, bool)
}

// Snapshot is a read-only set of setting values captured at one point in time
type Snapshot struct {
	values map[Key]string
}

// NewSnapshot creates a snapshot from explicit values
func NewSnapshot(values map[Key]string) *Snapshot {
	copied := make(map[Key]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Snapshot{values: copied}
}

// Get returns the value of a setting and whether it is set
func (s *Snapshot) Get(key Key) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Load reads the recognized settings from Rancher.
// Settings that do not exist are left unset; an empty value falls back to the
// setting's default, which is what Rancher itself does.
func Load(ctx context.Context, client dynamic.Interface, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}

	values := make(map[Key]string)
	for _, key := range Keys() {
		obj, err := client.Resource(Resource).Get(ctx, string(key), metav1.GetOptions{})
		if err != nil {
			if apierrors.IsNotFound(err) {
				logger.Debug("setting not found", "setting", key)
				continue
			}
			return nil, fmt.Errorf("%w: get setting %s: %v", util.ErrConnectionFailed, key, err)
		}

		value, ok := effectiveValue(obj)
		if !ok {
			continue
		}
		values[key] = value
		logger.Debug("loaded setting", "setting", key, "value", value)
	}

	return &Snapshot{values: values}, nil
}

func effectiveValue(obj *unstructured.Unstructured) (string, bool) {
	value, _, _ := unstructured.NestedString(obj.Object, "value")
	if value != "" {
		return value, true
	}
	def, found, _ := unstructured.NestedString(obj.Object, "default")
	if found {
		return def, true
	}
	return "", false
}
