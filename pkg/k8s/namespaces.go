package k8s

import (
	"context"
	"fmt"
	"sort"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ListNamespaces returns the names of all namespaces, sorted alphabetically.
// Transient API server errors are retried; the result feeds the filter
// sidebar, so a momentary hiccup should not blank the namespace list.
func (c *Client) ListNamespaces(ctx context.Context) ([]string, error) {
	var nsList *corev1.NamespaceList
	err := WithRetry(ctx, DefaultRetryConfig(), func() error {
		var listErr error
		nsList, listErr = c.Clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	names := make([]string, 0, len(nsList.Items))
	for _, ns := range nsList.Items {
		names = append(names, ns.Name)
	}
	sort.Strings(names)

	return names, nil
}
