package util

import (
	"fmt"
	"net/url"
	"strings"
)

// clusterProxyPrefix is the path Rancher serves downstream cluster APIs under
const clusterProxyPrefix = "/k8s/clusters/"

// RancherBaseURL returns the Rancher server URL for a kubeconfig server address.
// Rancher-generated kubeconfigs point at https://rancher.example.com/k8s/clusters/<id>,
// the proxy path and anything after it is dropped.
func RancherBaseURL(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("%w: server %q: %v", ErrInvalidConfig, server, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: server %q is not an absolute URL", ErrInvalidConfig, server)
	}

	if idx := strings.Index(u.Path, clusterProxyPrefix); idx != -1 {
		u.Path = u.Path[:idx]
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""

	return u.String(), nil
}

// ClusterProxyPath returns the Rancher proxy path for a downstream cluster,
// without a leading slash: k8s/clusters/<id>/<elem>/...
// The cluster id is path-escaped.
func ClusterProxyPath(clusterID string, elem ...string) string {
	parts := append([]string{strings.TrimPrefix(clusterProxyPrefix, "/") + url.PathEscape(clusterID)}, elem...)
	return strings.Join(parts, "/")
}
