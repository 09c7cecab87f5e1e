package commands

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/andri/podgrid/internal/logger"
	"github.com/andri/podgrid/pkg/client"
	"github.com/andri/podgrid/pkg/tui/models"
	"github.com/andri/podgrid/pkg/tui/terminal"
	"github.com/andri/podgrid/pkg/viewstate"
)

// browseOptions holds options for the browse command
type browseOptions struct {
	pollSeconds int
}

// newBrowseCmd creates the browse subcommand
func newBrowseCmd() *cobra.Command {
	opts := &browseOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive pod grid",
		Long: `Open the interactive pod grid.

The grid polls the backend in the background, keeps your selection
across refreshes, and persists column layout, sort, page size, and
sidebar state between sessions.

Keys:
  j/k         move selection          h/l    change page
  o           cycle sort              tab    toggle filter sidebar
  d           delete selected pod     s      run a catalog script
  r           refresh now             q      quit`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runBrowse(opts)
		},
	}

	cmd.Flags().IntVar(&opts.pollSeconds, "poll", 0,
		"background refresh interval in seconds (default: 30)")

	return cmd
}

// runBrowse executes the browse command
func runBrowse(opts *browseOptions) error {
	if !terminal.IsTerminal(os.Stdout) {
		return fmt.Errorf("browse requires a terminal; use 'podgrid ls' for scripted output")
	}

	caps := terminal.DetectCapabilities()
	terminal.ConfigureLipgloss(caps)

	if width, height := terminal.Size(os.Stdout); width > 0 {
		if warning := terminal.SizeWarning(width, height); warning != "" {
			logger.Warn("terminal size below recommended minimum", "warning", warning)
		}
	}

	cfg := GlobalOptions.Config
	if opts.pollSeconds > 0 {
		cfg.Backend.PollIntervalSeconds = opts.pollSeconds
	}

	store, err := viewstate.NewStore(cfg.ViewState.File, cfg.ViewState.BackupEnabled)
	if err != nil {
		return fmt.Errorf("failed to open layout state: %w", err)
	}

	app := models.NewAppModel(models.AppConfig{
		Config:  cfg,
		Client:  client.New(cfg.Backend),
		Store:   store,
		Context: GlobalOptions.Context,
	})

	program := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithContext(GlobalOptions.Context),
	)

	logger.Debug("starting pod grid",
		"backend", cfg.Backend.BaseURL,
		"poll_seconds", cfg.Backend.PollIntervalSeconds,
		"state_file", cfg.ViewState.File)

	if _, runErr := program.Run(); runErr != nil {
		return fmt.Errorf("grid exited with error: %w", runErr)
	}

	return nil
}
