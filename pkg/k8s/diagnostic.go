package k8s

import (
	"context"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Diagnostic summarizes cluster connectivity for the diagnostic endpoint.
type Diagnostic struct {
	Timestamp       int64  `json:"timestamp"`
	ConfigStatus    string `json:"config_status"`
	APIConnectivity string `json:"api_connectivity"`
	ServerVersion   string `json:"server_version,omitempty"`
	Error           string `json:"error,omitempty"`
}

// RunDiagnostic probes the API server and reports connectivity status.
// It never returns an error: failures are folded into the report.
func (c *Client) RunDiagnostic(ctx context.Context) Diagnostic {
	diag := Diagnostic{
		Timestamp:    time.Now().Unix(),
		ConfigStatus: "loaded",
	}

	version, err := c.Clientset.Discovery().ServerVersion()
	if err != nil {
		diag.APIConnectivity = "failed"
		diag.Error = err.Error()
		return diag
	}
	diag.ServerVersion = version.GitVersion

	// A cheap list confirms RBAC allows basic reads, not just discovery.
	if _, err := c.Clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{Limit: 1}); err != nil {
		diag.APIConnectivity = "failed"
		diag.Error = err.Error()
		return diag
	}

	diag.APIConnectivity = "success"
	return diag
}
