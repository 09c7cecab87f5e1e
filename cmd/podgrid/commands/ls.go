package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/andri/podgrid/pkg/client"
	"github.com/andri/podgrid/pkg/output"
)

// lsOptions holds options for the ls command
type lsOptions struct {
	outputFormat string
	watch        bool
	refresh      time.Duration

	page       int
	pageSize   int
	sortBy     string
	sortOrder  string
	namespaces []string
	statuses   []string
}

// validSortFields are the sort keys the backend accepts.
var validSortFields = []string{"name", "namespace", "phase", "created_timestamp", "restart_count"}

// newLsCmd creates the ls subcommand
func newLsCmd() *cobra.Command {
	opts := &lsOptions{}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List pods",
		Long: `List one page of pods from the backend.

Supports the same sorting and filters as the grid, plus JSON and YAML
output for scripting. With --watch the listing refreshes in place at
the given interval, like the Unix watch command.

Examples:
  podgrid ls
  podgrid ls -o json --sort restart_count --order desc
  podgrid ls --namespace prod --status Failed --status Pending
  podgrid ls --watch --refresh 5s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLs(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.outputFormat, "output", "o", "table",
		"output format: table, json, yaml")
	flags.BoolVarP(&opts.watch, "watch", "w", false,
		"refresh the listing continuously")
	flags.DurationVar(&opts.refresh, "refresh", 2*time.Second,
		"refresh interval for --watch")
	flags.IntVar(&opts.page, "page", 1, "page number")
	flags.IntVar(&opts.pageSize, "page-size", 0,
		"pods per page (default: backend default)")
	flags.StringVar(&opts.sortBy, "sort", "name",
		"sort field: name, namespace, phase, created_timestamp, restart_count")
	flags.StringVar(&opts.sortOrder, "order", "asc", "sort order: asc, desc")
	flags.StringSliceVar(&opts.namespaces, "namespace", nil,
		"only show pods in this namespace (repeatable)")
	flags.StringSliceVar(&opts.statuses, "status", nil,
		"only show pods in this phase (repeatable)")

	return cmd
}

// validate checks the ls options
func (o *lsOptions) validate() error {
	if _, err := output.ParseFormat(o.outputFormat); err != nil {
		return err
	}

	valid := false
	for _, field := range validSortFields {
		if o.sortBy == field {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid sort field %q (valid: name, namespace, phase, created_timestamp, restart_count)", o.sortBy)
	}

	if o.sortOrder != "asc" && o.sortOrder != "desc" {
		return fmt.Errorf("invalid sort order %q (valid: asc, desc)", o.sortOrder)
	}

	if o.page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", o.page)
	}
	if o.pageSize < 0 {
		return fmt.Errorf("page size must not be negative, got %d", o.pageSize)
	}

	return nil
}

// query builds the backend query from the ls options
func (o *lsOptions) query() client.PodQuery {
	return client.PodQuery{
		Page:       o.page,
		PageSize:   o.pageSize,
		SortBy:     o.sortBy,
		SortOrder:  o.sortOrder,
		Namespaces: o.namespaces,
		Statuses:   o.statuses,
	}
}

// runLs executes the ls command
func runLs(cmd *cobra.Command, opts *lsOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	format, err := output.ParseFormat(opts.outputFormat)
	if err != nil {
		return err
	}

	ctx := GlobalOptions.Context
	apiClient := client.New(GlobalOptions.Config.Backend)
	fetchOpts := output.FetchOptions{Client: apiClient, Query: opts.query()}

	if opts.watch {
		return output.RunWatch(ctx, output.WatchOptions{
			Interval: opts.refresh,
			Format:   format,
			FetchFunc: func(fetchCtx context.Context) (*output.Data, error) {
				return output.FetchData(fetchCtx, fetchOpts)
			},
			Writer:  os.Stdout,
			Command: "podgrid ls",
		})
	}

	data, err := output.FetchData(ctx, fetchOpts)
	if err != nil {
		return fmt.Errorf("failed to fetch pods: %w", err)
	}

	return output.Render(cmd.OutOrStdout(), data, format)
}
