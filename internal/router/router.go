// Package router maps named dashboard routes to URLs.
package router

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aryankumar/hvui/internal/util"
)

// RouteClusterResource is a resource view inside a product-scoped cluster
const RouteClusterResource = "harvester-c-cluster-resource"

// templates holds the dashboard path for each known route name.
// Segments in braces are filled from Route.Params.
var templates = map[string]string{
	RouteClusterResource: "/{product}/c/{cluster}/{resource}",
}

// Route identifies a dashboard view
type Route struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
}

// Navigator moves the user to a dashboard view
type Navigator interface {
	Navigate(r Route) error
}

// Path renders the dashboard path of a route
func Path(r Route) (string, error) {
	tmpl, ok := templates[r.Name]
	if !ok {
		return "", fmt.Errorf("%w: unknown route %q", util.ErrInvalidConfig, r.Name)
	}

	segments := strings.Split(tmpl, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			continue
		}
		name := seg[1 : len(seg)-1]
		value := r.Params[name]
		if value == "" {
			return "", fmt.Errorf("%w: route %q requires param %q", util.ErrMissingConfig, r.Name, name)
		}
		segments[i] = url.PathEscape(value)
	}

	return strings.Join(segments, "/"), nil
}

// Linker navigates by printing the dashboard link of a route
type Linker struct {
	dashboardURL string
	w            io.Writer
}

// NewLinker creates a linker for the dashboard served by a Rancher server
func NewLinker(rancherURL string, w io.Writer) *Linker {
	if w == nil {
		w = os.Stdout
	}
	return &Linker{
		dashboardURL: strings.TrimSuffix(rancherURL, "/") + "/dashboard",
		w:            w,
	}
}

// URL returns the absolute dashboard link of a route
func (l *Linker) URL(r Route) (string, error) {
	path, err := Path(r)
	if err != nil {
		return "", err
	}
	return l.dashboardURL + path, nil
}

// Navigate prints the route's link
func (l *Linker) Navigate(r Route) error {
	link, err := l.URL(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.w, link)
	return err
}
