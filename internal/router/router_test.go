package router

import (
	"bytes"
	"errors"
	"testing"

	"github.com/aryankumar/hvui/internal/util"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name    string
		route   Route
		want    string
		wantErr error
	}{
		{
			name: "cluster resource",
			route: Route{Name: RouteClusterResource, Params: map[string]string{
				"product":  "harvester",
				"cluster":  "c-m-abc123",
				"resource": "harvesterhci.io.dashboard",
			}},
			want: "/harvester/c/c-m-abc123/harvesterhci.io.dashboard",
		},
		{
			name: "params are escaped",
			route: Route{Name: RouteClusterResource, Params: map[string]string{
				"product":  "harvester",
				"cluster":  "a b",
				"resource": "x/y",
			}},
			want: "/harvester/c/a%20b/x%2Fy",
		},
		{
			name:    "missing param",
			route:   Route{Name: RouteClusterResource, Params: map[string]string{"product": "harvester"}},
			wantErr: util.ErrMissingConfig,
		},
		{
			name:    "unknown route",
			route:   Route{Name: "c-cluster-explorer"},
			wantErr: util.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Path(tt.route)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLinker_Navigate(t *testing.T) {
	var buf bytes.Buffer
	linker := NewLinker("https://rancher.example.com/", &buf)

	err := linker.Navigate(Route{Name: RouteClusterResource, Params: map[string]string{
		"product":  "harvester",
		"cluster":  "c-m-abc123",
		"resource": "harvesterhci.io.dashboard",
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "https://rancher.example.com/dashboard/harvester/c/c-m-abc123/harvesterhci.io.dashboard\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
