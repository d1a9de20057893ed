package plugin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/aryankumar/hvui/internal/util"
	"k8s.io/client-go/rest"
)

// maxBundleSize caps how much of a response is read as a bundle
const maxBundleSize = 64 << 20

// HTTPFetcher fetches bundles over HTTP.
// Relative URLs are resolved against the Rancher server and fetched with the
// kubeconfig credentials; other hosts are fetched without them.
type HTTPFetcher struct {
	base     *url.URL
	rancher  *http.Client
	external *http.Client
}

// NewHTTPFetcher creates a fetcher for bundles served by, or referenced from, a Rancher server
func NewHTTPFetcher(rancherURL string, restConfig *rest.Config) (*HTTPFetcher, error) {
	base, err := url.Parse(rancherURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: rancher url %q", util.ErrInvalidConfig, rancherURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	if restConfig == nil {
		restConfig = &rest.Config{}
	}

	rancherClient, err := rest.HTTPClientFor(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create rancher http client: %w", err)
	}

	// Only transport-level settings carry over to third-party hosts
	externalConfig := &rest.Config{Timeout: restConfig.Timeout, UserAgent: restConfig.UserAgent}
	externalClient, err := rest.HTTPClientFor(externalConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}

	return &HTTPFetcher{
		base:     base,
		rancher:  rancherClient,
		external: externalClient,
	}, nil
}

// Resolve returns the absolute URL a bundle reference points at
func (f *HTTPFetcher) Resolve(ref string) (*url.URL, error) {
	u, err := f.base.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: bundle url %q: %v", util.ErrInvalidConfig, ref, err)
	}
	return u, nil
}

// Fetch downloads a bundle
func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	u, err := f.Resolve(ref)
	if err != nil {
		return nil, err
	}

	client := f.external
	if u.Host == f.base.Host {
		client = f.rancher
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrLoadFailed, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", util.ErrLoadFailed, u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: get %s: %s", util.ErrLoadFailed, u, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", util.ErrLoadFailed, u, err)
	}
	if len(data) > maxBundleSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", util.ErrLoadFailed, u, maxBundleSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s returned an empty bundle", util.ErrLoadFailed, u)
	}

	return data, nil
}
