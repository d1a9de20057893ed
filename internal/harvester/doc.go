// Package harvester models a Harvester cluster managed by Rancher and loads the
// UI plugin bundle that provides its dashboard views.
//
// A cluster that serves /v1/harvester/ui-info describes its own plugin: the
// bundle is either served by the cluster (ui-source "bundled") or hosted at
// the URL it reports (ui-source "external"). Older clusters do not serve
// ui-info; for those the bundle is chosen from the Rancher ui-offline-preferred
// and server-version settings.
//
// Loading is skipped when the registry already holds the built-in "harvester"
// plugin or the resolved package. Errors from fetching, resolving or loading
// reach the user through ReportLoadError.
package harvester
