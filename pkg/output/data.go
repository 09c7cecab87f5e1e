package output

import (
	"context"
	"time"

	"github.com/andri/podgrid/pkg/api"
	"github.com/andri/podgrid/pkg/client"
	"github.com/andri/podgrid/pkg/k8s"
)

// Data holds one listing snapshot for output formatting.
type Data struct {
	// Pods is the fetched page of pod records
	Pods []k8s.PodRecord `json:"pods" yaml:"pods"`
	// Pagination is the page window the backend returned
	Pagination api.PaginationInfo `json:"pagination" yaml:"pagination"`
	// FetchedAt is when the data was fetched
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}

// FetchOptions configures data fetching.
type FetchOptions struct {
	// Client talks to the backend API
	Client *client.Client
	// Query selects the page, sort, and filters
	Query client.PodQuery
}

// FetchData fetches one page of pods for non-TUI output.
func FetchData(ctx context.Context, opts FetchOptions) (*Data, error) {
	page, err := opts.Client.FetchPods(ctx, opts.Query)
	if err != nil {
		return nil, err
	}

	return &Data{
		Pods:       page.Pods,
		Pagination: page.Pagination,
		FetchedAt:  time.Now(),
	}, nil
}
