package cluster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aryankumar/hvui/internal/util"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
)

// Dispatcher performs a GET against the Rancher server and returns the response body
type Dispatcher interface {
	Request(ctx context.Context, url string) ([]byte, error)
}

// Client is a connection to a Rancher server
type Client struct {
	// Context is the kubeconfig context the connection was built from
	Context string

	// RancherURL is the Rancher server base URL
	RancherURL string

	// RestConfig is the REST configuration for the Rancher server root
	RestConfig *rest.Config

	// Dynamic reaches the management and provisioning APIs of Rancher's local cluster
	Dynamic dynamic.Interface

	// REST issues raw requests relative to the Rancher server root
	REST rest.Interface

	logger *slog.Logger
}

// NewClient creates a Rancher client from a kubeconfig REST config.
// The config may point at the Rancher server itself or at any cluster proxied by it.
func NewClient(contextName string, restConfig *rest.Config, logger *slog.Logger) (*Client, error) {
	if restConfig == nil {
		return nil, fmt.Errorf("rest config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	rancherURL, err := util.RancherBaseURL(restConfig.Host)
	if err != nil {
		return nil, err
	}

	root := rest.CopyConfig(restConfig)
	root.Host = rancherURL
	discoveryClient, err := discovery.NewDiscoveryClientForConfig(root)
	if err != nil {
		return nil, fmt.Errorf("failed to create rest client: %w", err)
	}

	local := rest.CopyConfig(restConfig)
	local.Host = rancherURL + "/" + util.ClusterProxyPath("local")
	dynamicClient, err := dynamic.NewForConfig(local)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	logger.Debug("created rancher client",
		"context", contextName,
		"server", rancherURL)

	return &Client{
		Context:    contextName,
		RancherURL: rancherURL,
		RestConfig: root,
		Dynamic:    dynamicClient,
		REST:       discoveryClient.RESTClient(),
		logger:     logger,
	}, nil
}

// Request implements Dispatcher. It is bounded by ctx and by the REST
// config's Timeout.
func (c *Client) Request(ctx context.Context, url string) ([]byte, error) {
	body, err := c.REST.Get().AbsPath(url).DoRaw(ctx)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	return body, nil
}

// ListHarvesterClusters returns the Harvester clusters imported into Rancher
func (c *Client) ListHarvesterClusters(ctx context.Context) ([]Record, error) {
	list, err := c.Dynamic.Resource(ProvisioningClusterResource).
		Namespace(DefaultWorkspace).
		List(ctx, metav1.ListOptions{LabelSelector: ProviderLabel + "=" + ProviderHarvester})
	if err != nil {
		return nil, fmt.Errorf("%w: list harvester clusters: %v", util.ErrConnectionFailed, err)
	}

	records := make([]Record, 0, len(list.Items))
	for i := range list.Items {
		records = append(records, RecordFromUnstructured(&list.Items[i]))
	}

	c.logger.Debug("listed harvester clusters", "count", len(records))
	return records, nil
}

// GetHarvesterCluster returns a single Harvester cluster by provisioning cluster name
func (c *Client) GetHarvesterCluster(ctx context.Context, name string) (*Record, error) {
	obj, err := c.Dynamic.Resource(ProvisioningClusterResource).
		Namespace(DefaultWorkspace).
		Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if apierrors.IsNotFound(err) {
			return nil, util.WrapClusterError(name, util.ErrClusterNotFound)
		}
		return nil, util.WrapClusterError(name, fmt.Errorf("%w: %v", util.ErrConnectionFailed, err))
	}

	if obj.GetLabels()[ProviderLabel] != ProviderHarvester {
		return nil, util.WrapClusterError(name, fmt.Errorf("%w: not a harvester cluster", util.ErrClusterNotFound))
	}

	rec := RecordFromUnstructured(obj)
	return &rec, nil
}

// CreateCluster creates a provisioning cluster
func (c *Client) CreateCluster(ctx context.Context, obj *unstructured.Unstructured) (*Record, error) {
	created, err := c.Dynamic.Resource(ProvisioningClusterResource).
		Namespace(obj.GetNamespace()).
		Create(ctx, obj, metav1.CreateOptions{})
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return nil, util.WrapClusterError(obj.GetName(), util.ErrAlreadyExists)
		}
		return nil, util.WrapClusterError(obj.GetName(), fmt.Errorf("%w: %v", util.ErrConnectionFailed, err))
	}

	c.logger.Info("created cluster", "cluster", created.GetName(), "namespace", created.GetNamespace())

	rec := RecordFromUnstructured(created)
	return &rec, nil
}
