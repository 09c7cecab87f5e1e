// Package client is the HTTP client for the pod inventory backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/andri/podgrid/pkg/api"
	"github.com/andri/podgrid/pkg/config"
	"github.com/andri/podgrid/pkg/k8s"
)

// Client talks to the podgrid backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client from backend settings.
func New(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
	}
}

// PodQuery selects the page of pods to fetch.
type PodQuery struct {
	Page       int
	PageSize   int
	SortBy     string
	SortOrder  string
	Namespaces []string
	Statuses   []string
}

// PodPage is one page of pod records plus its pagination window.
type PodPage struct {
	Pods       []k8s.PodRecord
	Pagination api.PaginationInfo
}

// FetchPods retrieves one page of the pod inventory.
func (c *Client) FetchPods(ctx context.Context, query PodQuery) (PodPage, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(query.PageSize))
	}
	if query.SortBy != "" {
		params.Set("sort_by", query.SortBy)
	}
	if query.SortOrder != "" {
		params.Set("sort_order", query.SortOrder)
	}
	if len(query.Namespaces) > 0 {
		params.Set("namespace_filter", strings.Join(query.Namespaces, ","))
	}
	if len(query.Statuses) > 0 {
		params.Set("status_filter", strings.Join(query.Statuses, ","))
	}

	target := c.baseURL + "/api/v1/pods"
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}

	var resp api.PodsResponse
	if err := c.getJSON(ctx, target, &resp); err != nil {
		return PodPage{}, err
	}
	if resp.Error != "" {
		return PodPage{}, &FetchError{Message: resp.Error}
	}

	page := PodPage{Pods: resp.Pods}
	if resp.Pagination != nil {
		page.Pagination = *resp.Pagination
	}
	return page, nil
}

// DeletePod asks the backend to delete a pod. A refusal or failure reported
// by the backend surfaces as an ActionError.
func (c *Client) DeletePod(ctx context.Context, namespace, name string) error {
	req := api.DeletePodRequest{Name: name, Namespace: namespace}

	var resp api.DeletePodResponse
	if err := c.postJSON(ctx, c.baseURL+"/api/v1/pods/delete", req, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &ActionError{Action: "delete", Message: resp.Message, Detail: resp.Error}
	}
	return nil
}

// RunScript asks the backend to run a catalog script inside a pod and
// returns the script output.
func (c *Client) RunScript(ctx context.Context, namespace, name, script string) (string, error) {
	req := api.RunScriptRequest{Name: name, Namespace: namespace, Script: script}

	var resp api.RunScriptResponse
	if err := c.postJSON(ctx, c.baseURL+"/api/v1/pods/script", req, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &ActionError{Action: "script", Message: resp.Message, Detail: resp.Error}
	}
	return resp.Output, nil
}

// FetchScripts retrieves the names of the server's script catalog.
func (c *Client) FetchScripts(ctx context.Context) ([]string, error) {
	var resp api.ScriptsResponse
	if err := c.getJSON(ctx, c.baseURL+"/api/v1/scripts", &resp); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(resp.Scripts))
	for _, script := range resp.Scripts {
		names = append(names, script.Name)
	}
	return names, nil
}

// FetchNamespaces retrieves all namespace names, sorted by the backend.
func (c *Client) FetchNamespaces(ctx context.Context) ([]string, error) {
	var resp api.NamespacesResponse
	if err := c.getJSON(ctx, c.baseURL+"/api/v1/namespaces", &resp); err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &FetchError{Message: resp.Error}
	}
	return resp.Namespaces, nil
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, target string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{StatusCode: resp.StatusCode, Message: "failed to read response body", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &FetchError{
			StatusCode: resp.StatusCode,
			Message:    httpErrorMessage(resp.StatusCode, data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &FetchError{StatusCode: resp.StatusCode, Message: "invalid response body", Err: err}
	}
	return nil
}

// httpErrorMessage extracts the backend's error field when present,
// otherwise falls back to the HTTP status text.
func httpErrorMessage(statusCode int, data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return http.StatusText(statusCode)
}
