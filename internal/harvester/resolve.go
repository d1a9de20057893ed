package harvester

import (
	"fmt"
	"strings"

	"github.com/aryankumar/hvui/internal/plugin"
	"github.com/aryankumar/hvui/internal/settings"
	"github.com/aryankumar/hvui/internal/util"
)

const (
	// ProductName is the plugin name of a Harvester UI built into the host
	ProductName = "harvester"

	// LegacyPluginVersion is the plugin version used for clusters without ui-info
	LegacyPluginVersion = "1.0.3"

	// DefaultRemotePluginURL is the remote bundle used for clusters without ui-info
	// when remote assets are preferred
	DefaultRemotePluginURL = "https://releases.rancher.com/harvester-ui/plugin/harvester-1.0.3-head/harvester-1.0.3-head.umd.min.js"
)

// ui-offline-preferred values
const (
	OfflineDynamic = "dynamic"
	OfflineTrue    = "true"
	OfflineFalse   = "false"
)

// ui-source values reported by ui-info
const (
	SourceBundled  = "bundled"
	SourceExternal = "external"
)

// headSuffix marks development builds of Rancher
const headSuffix = "-head"

// PackageDetails identifies a plugin bundle and where to fetch it from
type PackageDetails struct {
	Name string `json:"pkgName" yaml:"pkgName"`
	URL  string `json:"pkgUrl" yaml:"pkgUrl"`
}

// LegacyOptions configures resolution for clusters without ui-info
type LegacyOptions struct {
	// Dev selects the development serving layout for embedded bundles
	Dev bool

	// RemotePluginURL overrides DefaultRemotePluginURL
	RemotePluginURL string
}

func (o LegacyOptions) remoteURL() string {
	if o.RemotePluginURL != "" {
		return o.RemotePluginURL
	}
	return DefaultRemotePluginURL
}

// EffectiveOfflinePreference returns "true" or "false" for the dynamic
// preference, based on whether Rancher is a -head build. Other values are
// returned unchanged.
func EffectiveOfflinePreference(s settings.Getter) string {
	pref, _ := s.Get(settings.KeyUIOfflinePreferred)
	if pref != OfflineDynamic {
		return pref
	}

	version, _ := s.Get(settings.KeyServerVersion)
	if strings.HasSuffix(version, headSuffix) {
		return OfflineFalse
	}
	return OfflineTrue
}

// ResolveLegacy determines the package of a cluster that does not serve ui-info
func ResolveLegacy(s settings.Getter, opts LegacyOptions) (PackageDetails, error) {
	pref := EffectiveOfflinePreference(s)

	switch pref {
	case OfflineTrue:
		name := ProductName + "-" + LegacyPluginVersion
		embedded := "dashboard/" + name + "/" + name + plugin.BundleSuffix
		if !opts.Dev {
			embedded = "dashboard/" + embedded
		}
		return PackageDetails{Name: name, URL: embedded}, nil

	case OfflineFalse:
		remote := opts.remoteURL()
		name, err := PackageNameFromURL(remote)
		if err != nil {
			return PackageDetails{}, err
		}
		return PackageDetails{Name: name, URL: remote}, nil

	default:
		return PackageDetails{}, fmt.Errorf("%w: unsupported value for %s: %q",
			util.ErrInvalidConfig, settings.KeyUIOfflinePreferred, pref)
	}
}

// PackageNameFromURL takes the package name from a bundle URL:
// the last path segment with the bundle suffix removed
func PackageNameFromURL(bundleURL string) (string, error) {
	parts := strings.Split(strings.Replace(bundleURL, plugin.BundleSuffix, "", 1), "/")
	if len(parts) < 2 || parts[len(parts)-1] == "" {
		return "", fmt.Errorf("%w: unable to determine harvester plugin name from %s", util.ErrInvalidConfig, bundleURL)
	}
	return parts[len(parts)-1], nil
}

// ResolveModern determines the package of a cluster from its ui-info
func ResolveModern(info UIInfo, clusterID string) (PackageDetails, error) {
	name := ProductName + "-" + info.BundledVersion

	switch info.Source {
	case SourceBundled:
		url := util.ClusterProxyPath(clusterID, "v1", "harvester", "plugin-assets", name+plugin.BundleSuffix)
		return PackageDetails{Name: name, URL: url}, nil

	case SourceExternal:
		if info.PluginIndex == "" {
			return PackageDetails{}, fmt.Errorf("%w: ui-source is external but the cluster did not provide ui-plugin-index",
				util.ErrMissingConfig)
		}
		return PackageDetails{Name: name, URL: info.PluginIndex}, nil

	default:
		return PackageDetails{}, fmt.Errorf("%w: unsupported ui-source %q", util.ErrInvalidConfig, info.Source)
	}
}
