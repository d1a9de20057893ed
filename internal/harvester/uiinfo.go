package harvester

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/aryankumar/hvui/internal/util"
)

// UIInfo is the response of a Harvester cluster's ui-info endpoint
type UIInfo struct {
	Source         string `json:"ui-source,omitempty" yaml:"ui-source,omitempty"`
	BundledVersion string `json:"ui-plugin-bundled-version,omitempty" yaml:"ui-plugin-bundled-version,omitempty"`
	PluginIndex    string `json:"ui-plugin-index,omitempty" yaml:"ui-plugin-index,omitempty"`
}

// UIInfoPath returns the Rancher path of a cluster's ui-info endpoint
func UIInfoPath(clusterID string) string {
	return "/" + util.ClusterProxyPath(clusterID, "v1", "harvester", "ui-info")
}

// UIInfo returns the cluster's ui-info, fetching it on first use.
// A cluster that cannot provide ui-info yields nil; that is expected for
// older Harvester versions and is not an error. A successful response is kept
// for the lifetime of the model, so changes need a new model to be seen.
func (c *Cluster) UIInfo(ctx context.Context) *UIInfo {
	c.uiInfoMu.Lock()
	defer c.uiInfoMu.Unlock()

	if c.uiInfo != nil {
		return c.uiInfo
	}

	body, err := c.session.dispatcher.Request(ctx, UIInfoPath(c.ClusterName))
	if err != nil {
		c.logger.Info("failed to fetch harvester ui-info, this may be an older cluster that cannot provide one",
			"error", err)
		return nil
	}

	var info *UIInfo
	if len(bytes.TrimSpace(body)) == 0 {
		c.logger.Info("harvester ui-info is empty")
		return nil
	}
	if err := json.Unmarshal(body, &info); err != nil {
		c.logger.Info("failed to decode harvester ui-info", "error", err)
		return nil
	}
	if info == nil {
		c.logger.Info("harvester ui-info is null")
		return nil
	}

	c.uiInfo = info
	return c.uiInfo
}
