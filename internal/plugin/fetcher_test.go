package plugin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aryankumar/hvui/internal/util"
	"k8s.io/client-go/rest"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		switch r.URL.Path {
		case "/dashboard/dashboard/harvester-1.0.3/harvester-1.0.3.umd.min.js":
			w.Write([]byte("embedded"))
		case "/empty.js":
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	fetcher, err := NewHTTPFetcher(server.URL, &rest.Config{BearerToken: "token-abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("relative url uses rancher credentials", func(t *testing.T) {
		data, err := fetcher.Fetch(context.Background(), "dashboard/dashboard/harvester-1.0.3/harvester-1.0.3.umd.min.js")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "embedded" {
			t.Errorf("unexpected body %q", data)
		}
		if gotAuth != "Bearer token-abc" {
			t.Errorf("expected bearer token, got %q", gotAuth)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), "missing.js")
		if !errors.Is(err, util.ErrLoadFailed) {
			t.Errorf("expected ErrLoadFailed, got %v", err)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := fetcher.Fetch(context.Background(), "/empty.js")
		if !errors.Is(err, util.ErrLoadFailed) {
			t.Errorf("expected ErrLoadFailed, got %v", err)
		}
	})
}

func TestHTTPFetcher_ExternalHostHasNoCredentials(t *testing.T) {
	var gotAuth string
	external := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("remote"))
	}))
	defer external.Close()

	fetcher, err := NewHTTPFetcher("https://rancher.example.com", &rest.Config{BearerToken: "token-abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := fetcher.Fetch(context.Background(), external.URL+"/harvester-1.2.0/harvester-1.2.0.umd.min.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "remote" {
		t.Errorf("unexpected body %q", data)
	}
	if gotAuth != "" {
		t.Errorf("credentials leaked to external host: %q", gotAuth)
	}
}

func TestHTTPFetcher_Resolve(t *testing.T) {
	fetcher, err := NewHTTPFetcher("https://lb.example.com/rancher", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := fetcher.Resolve("k8s/clusters/c-m-1/v1/harvester/plugin-assets/harvester-1.1.0.umd.min.js")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://lb.example.com/rancher/k8s/clusters/c-m-1/v1/harvester/plugin-assets/harvester-1.1.0.umd.min.js"
	if u.String() != want {
		t.Errorf("Resolve() = %q, want %q", u, want)
	}

	if _, err := NewHTTPFetcher("not a url", nil); !errors.Is(err, util.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
