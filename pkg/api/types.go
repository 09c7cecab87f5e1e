// Package api serves the pod inventory REST surface consumed by the grid.
package api

import "github.com/andri/podgrid/pkg/k8s"

// PaginationInfo describes the page window applied to a pod listing.
type PaginationInfo struct {
	Page            int  `json:"page" yaml:"page"`
	PageSize        int  `json:"page_size" yaml:"page_size"`
	TotalItems      int  `json:"total_items" yaml:"total_items"`
	TotalPages      int  `json:"total_pages" yaml:"total_pages"`
	HasNext         bool `json:"has_next" yaml:"has_next"`
	HasPrevious     bool `json:"has_previous" yaml:"has_previous"`
	MaxLimitReached bool `json:"max_limit_reached" yaml:"max_limit_reached"`
}

// PodsResponse is the payload of GET /api/v1/pods.
// Pods is never null: an empty listing serializes as [].
type PodsResponse struct {
	Pods       []k8s.PodRecord `json:"pods"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// DeletePodRequest identifies the pod to delete.
type DeletePodRequest struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// DeletePodResponse reports the outcome of a delete action.
// Failures still return HTTP 200 with Success=false so the client can
// distinguish action failures from transport failures.
type DeletePodResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RunScriptRequest asks the server to run a named catalog script
// inside a pod.
type RunScriptRequest struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Script    string `json:"script"`
}

// RunScriptResponse reports the outcome of a script action.
type RunScriptResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ScriptInfo is a catalog entry advertised to clients. The command itself
// stays server-side.
type ScriptInfo struct {
	Name string `json:"name"`
}

// ScriptsResponse is the payload of GET /api/v1/scripts.
type ScriptsResponse struct {
	Scripts []ScriptInfo `json:"scripts"`
}

// NamespacesResponse is the payload of GET /api/v1/namespaces.
type NamespacesResponse struct {
	Namespaces []string `json:"namespaces"`
	Error      string   `json:"error,omitempty"`
}

// DiagnosticResponse is the payload of GET /api/v1/diagnostic.
type DiagnosticResponse struct {
	Status     string         `json:"status"`
	Diagnostic k8s.Diagnostic `json:"diagnostic"`
}
