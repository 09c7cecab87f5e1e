// Package k8s wraps the Kubernetes client for pod inventory and actions.
package k8s

import (
	"context"
	"fmt"
	"time"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// DefaultCallTimeout bounds individual API server calls.
const DefaultCallTimeout = 20 * time.Second

// Client wraps a Kubernetes clientset with additional functionality
type Client struct {
	Clientset kubernetes.Interface
	config    *rest.Config
}

// NewClient creates a new Kubernetes client using the standard config
// resolution order and validates connectivity.
func NewClient(ctx context.Context) (*Client, error) {
	config, err := buildConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build kubernetes config: %w", err)
	}

	clientset, clientErr := kubernetes.NewForConfig(config)
	if clientErr != nil {
		return nil, fmt.Errorf("failed to create kubernetes clientset: %w", clientErr)
	}

	client := &Client{
		Clientset: clientset,
		config:    config,
	}

	if validateErr := client.validateConnectivity(ctx); validateErr != nil {
		return nil, fmt.Errorf("failed to validate kubernetes connectivity: %w", validateErr)
	}

	return client, nil
}

// NewClientFromClientset creates a Client from an existing clientset.
// This is primarily useful for testing with fake clientsets.
func NewClientFromClientset(clientset kubernetes.Interface) *Client {
	return &Client{Clientset: clientset}
}

// buildConfig builds a Kubernetes REST config using standard resolution order:
// 1. In-cluster config (when running inside a pod)
// 2. KUBECONFIG environment variable (supports colon-separated paths)
// 3. Default kubeconfig location (~/.kube/config)
func buildConfig() (*rest.Config, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules,
		&clientcmd.ConfigOverrides{},
	)

	config, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	return config, nil
}

// validateConnectivity validates that the client can reach the API server.
func (c *Client) validateConnectivity(_ context.Context) error {
	_, err := c.Clientset.Discovery().ServerVersion()
	if err != nil {
		return fmt.Errorf("failed to connect to kubernetes API server: %w", err)
	}
	return nil
}

// Config returns the REST config used by this client
func (c *Client) Config() *rest.Config {
	return c.config
}
