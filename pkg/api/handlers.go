package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/andri/podgrid/internal/logger"
	"github.com/andri/podgrid/pkg/config"
	"github.com/andri/podgrid/pkg/k8s"
)

// podsQuery is the parsed query string of GET /api/v1/pods.
type podsQuery struct {
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
	Namespaces []string
	Phases     []string
}

var sortableFields = map[string]bool{
	"name":              true,
	"namespace":         true,
	"phase":             true,
	"created_timestamp": true,
	"restart_count":     true,
}

func (s *Server) parsePodsQuery(c echo.Context) (podsQuery, error) {
	q := podsQuery{
		Page:      1,
		PageSize:  config.DefaultPageSize,
		SortBy:    "name",
		SortOrder: "asc",
	}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return q, fmt.Errorf("invalid page %q", raw)
		}
		q.Page = page
	}

	if raw := c.QueryParam("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > s.cfg.Server.MaxPageSize {
			return q, fmt.Errorf("invalid page_size %q (must be 1-%d)", raw, s.cfg.Server.MaxPageSize)
		}
		q.PageSize = size
	}

	if raw := c.QueryParam("sort_by"); raw != "" {
		if !sortableFields[raw] {
			return q, fmt.Errorf("invalid sort_by %q", raw)
		}
		q.SortBy = raw
	}

	if raw := c.QueryParam("sort_order"); raw != "" {
		if raw != "asc" && raw != "desc" {
			return q, fmt.Errorf("invalid sort_order %q", raw)
		}
		q.SortOrder = raw
	}

	q.Namespaces = splitFilter(c.QueryParam("namespace_filter"))
	q.Phases = splitFilter(c.QueryParam("status_filter"))

	return q, nil
}

// splitFilter parses a comma-separated filter value, dropping empty entries.
func splitFilter(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (s *Server) handleListPods(c echo.Context) error {
	q, err := s.parsePodsQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, PodsResponse{
			Pods:  []k8s.PodRecord{},
			Error: err.Error(),
		})
	}

	// Fetch enough for a handful of pages, bounded by the hard cap.
	fetchCap := q.PageSize * 10
	if fetchCap > s.cfg.Server.FetchCap {
		fetchCap = s.cfg.Server.FetchCap
	}

	records, capped, err := s.client.ListPods(c.Request().Context(), k8s.ListPodsOptions{
		Namespaces: q.Namespaces,
		Phases:     q.Phases,
		FetchCap:   fetchCap,
	})
	if err != nil {
		logger.Error("pod listing failed", "error", err)
		return c.JSON(http.StatusInternalServerError, PodsResponse{
			Pods:  []k8s.PodRecord{},
			Error: "failed to list pods from the cluster",
		})
	}

	sortRecords(records, q.SortBy, q.SortOrder)

	totalItems := len(records)
	if capped {
		// The cap hides the true total; report the cap so clients show "N+".
		totalItems = s.cfg.Server.FetchCap
	}

	start := (q.Page - 1) * q.PageSize
	end := start + q.PageSize
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}
	pageRecords := records[start:end]
	if pageRecords == nil {
		pageRecords = []k8s.PodRecord{}
	}

	totalPages := 1
	if totalItems > 0 {
		totalPages = (totalItems + q.PageSize - 1) / q.PageSize
	}

	return c.JSON(http.StatusOK, PodsResponse{
		Pods: pageRecords,
		Pagination: &PaginationInfo{
			Page:            q.Page,
			PageSize:        q.PageSize,
			TotalItems:      totalItems,
			TotalPages:      totalPages,
			HasNext:         end < totalItems,
			HasPrevious:     q.Page > 1,
			MaxLimitReached: capped,
		},
	})
}

// sortRecords orders records in place by the requested field.
// Ties fall back to the record ID so pagination stays stable.
func sortRecords(records []k8s.PodRecord, sortBy, sortOrder string) {
	desc := sortOrder == "desc"

	cmp := func(a, b k8s.PodRecord) int {
		switch sortBy {
		case "namespace":
			if a.Namespace != b.Namespace {
				return strings.Compare(a.Namespace, b.Namespace)
			}
		case "phase":
			if a.Phase != b.Phase {
				return strings.Compare(a.Phase, b.Phase)
			}
		case "created_timestamp":
			if a.CreatedTimestamp != b.CreatedTimestamp {
				return strings.Compare(a.CreatedTimestamp, b.CreatedTimestamp)
			}
		case "restart_count":
			if a.RestartCount != b.RestartCount {
				if a.RestartCount < b.RestartCount {
					return -1
				}
				return 1
			}
		default:
			if a.Name != b.Name {
				return strings.Compare(a.Name, b.Name)
			}
		}
		return strings.Compare(a.ID, b.ID)
	}

	sort.SliceStable(records, func(i, j int) bool {
		c := cmp(records[i], records[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func (s *Server) handleDeletePod(c echo.Context) error {
	var req DeletePodRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, DeletePodResponse{
			Success: false,
			Message: "Failed to delete pod",
			Error:   "invalid request body",
		})
	}
	if req.Name == "" || req.Namespace == "" {
		return c.JSON(http.StatusBadRequest, DeletePodResponse{
			Success: false,
			Message: "Failed to delete pod",
			Error:   "name and namespace are required",
		})
	}

	err := s.client.DeletePod(c.Request().Context(), req.Namespace, req.Name)
	if err != nil {
		detail := err.Error()
		var guardErr *k8s.PhaseGuardError
		switch {
		case errors.As(err, &guardErr):
			logger.Warn("delete refused by phase guard",
				"namespace", req.Namespace, "pod", req.Name, "phase", guardErr.Phase)
		case k8s.IsNotFound(err):
			logger.Warn("delete target not found", "namespace", req.Namespace, "pod", req.Name)
		case k8s.IsForbidden(err):
			logger.Warn("delete forbidden by cluster RBAC",
				"namespace", req.Namespace, "pod", req.Name, "error", err)
			detail = fmt.Sprintf(
				"not permitted to delete pods in namespace %s; check the service account's RBAC", req.Namespace)
		default:
			logger.Error("pod delete failed",
				"namespace", req.Namespace, "pod", req.Name, "error", err)
		}
		return c.JSON(http.StatusOK, DeletePodResponse{
			Success: false,
			Message: "Failed to delete pod",
			Error:   detail,
		})
	}

	return c.JSON(http.StatusOK, DeletePodResponse{
		Success: true,
		Message: fmt.Sprintf("Pod %s in namespace %s deleted successfully", req.Name, req.Namespace),
	})
}

func (s *Server) handleRunScript(c echo.Context) error {
	var req RunScriptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, RunScriptResponse{
			Success: false,
			Message: "Failed to run script",
			Error:   "invalid request body",
		})
	}
	if req.Name == "" || req.Namespace == "" || req.Script == "" {
		return c.JSON(http.StatusBadRequest, RunScriptResponse{
			Success: false,
			Message: "Failed to run script",
			Error:   "name, namespace, and script are required",
		})
	}

	// Only scripts from the server-side catalog may run; the client never
	// supplies a command line.
	script, ok := s.cfg.ScriptByName(req.Script)
	if !ok {
		return c.JSON(http.StatusBadRequest, RunScriptResponse{
			Success: false,
			Message: "Failed to run script",
			Error:   fmt.Sprintf("unknown script %q", req.Script),
		})
	}

	output, err := s.client.ExecInPod(c.Request().Context(), req.Namespace, req.Name, script.Container, script.Command)
	if err != nil {
		logger.Error("script execution failed",
			"namespace", req.Namespace, "pod", req.Name, "script", script.Name, "error", err)
		return c.JSON(http.StatusOK, RunScriptResponse{
			Success: false,
			Message: "Failed to run script",
			Error:   err.Error(),
		})
	}

	logger.Info("script executed",
		"namespace", req.Namespace, "pod", req.Name, "script", script.Name)

	return c.JSON(http.StatusOK, RunScriptResponse{
		Success: true,
		Message: fmt.Sprintf("Script %s completed on pod %s in namespace %s", script.Name, req.Name, req.Namespace),
		Output:  output,
	})
}

func (s *Server) handleListScripts(c echo.Context) error {
	scripts := make([]ScriptInfo, 0, len(s.cfg.Scripts))
	for _, script := range s.cfg.Scripts {
		scripts = append(scripts, ScriptInfo{Name: script.Name})
	}
	return c.JSON(http.StatusOK, ScriptsResponse{Scripts: scripts})
}

func (s *Server) handleListNamespaces(c echo.Context) error {
	namespaces, err := s.client.ListNamespaces(c.Request().Context())
	if err != nil {
		logger.Error("namespace listing failed", "error", err)
		return c.JSON(http.StatusOK, NamespacesResponse{
			Namespaces: []string{},
			Error:      "failed to list namespaces from the cluster",
		})
	}
	return c.JSON(http.StatusOK, NamespacesResponse{Namespaces: namespaces})
}

func (s *Server) handleDiagnostic(c echo.Context) error {
	diag := s.client.RunDiagnostic(c.Request().Context())

	status := "success"
	if diag.APIConnectivity != "success" {
		status = "error"
	}

	return c.JSON(http.StatusOK, DiagnosticResponse{
		Status:     status,
		Diagnostic: diag,
	})
}
