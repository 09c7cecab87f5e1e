package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andri/podgrid/internal/logger"
	"github.com/andri/podgrid/pkg/api"
	"github.com/andri/podgrid/pkg/k8s"
)

// serveOptions holds options for the serve command
type serveOptions struct {
	listenAddr string
}

// newServeCmd creates the serve subcommand
func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pod listing backend",
		Long: `Run the REST backend the grid talks to.

The backend connects to the Kubernetes cluster (in-cluster config or
local kubeconfig), serves paginated pod listings with sorting and
filters, and handles pod deletion and catalog script execution.

Endpoints:
  GET    /api/v1/pods          paginated pod listing
  GET    /api/v1/namespaces    cluster namespaces
  GET    /api/v1/scripts       catalog script names
  POST   /api/v1/pods/delete   delete a pod (phase guarded)
  POST   /api/v1/pods/script   run a catalog script in a pod
  GET    /healthz              liveness probe
  GET    /metrics              Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.listenAddr, "listen", "",
		"listen address (default: :8080)")

	return cmd
}

// runServe executes the serve command
func runServe(opts *serveOptions) error {
	ctx := GlobalOptions.Context
	cfg := GlobalOptions.Config
	if opts.listenAddr != "" {
		cfg.Server.ListenAddr = opts.listenAddr
	}

	kubeClient, err := k8s.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to cluster: %w", err)
	}

	logger.Info("starting backend",
		"listen", cfg.Server.ListenAddr,
		"max_page_size", cfg.Server.MaxPageSize,
		"fetch_cap", cfg.Server.FetchCap)

	server := api.NewServer(&cfg, kubeClient)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("backend failed: %w", err)
	}

	return nil
}
