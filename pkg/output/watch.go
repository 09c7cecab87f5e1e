package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/term"
)

// MinWatchInterval is the minimum allowed watch interval to prevent excessive CPU usage.
const MinWatchInterval = 100 * time.Millisecond

// WatchOptions configures watch mode behavior
type WatchOptions struct {
	// Interval is the refresh interval
	Interval time.Duration

	// Format is the output format
	Format Format

	// FetchFunc fetches the data
	FetchFunc func(ctx context.Context) (*Data, error)

	// Writer is where to write output
	Writer io.Writer

	// Command is the command string to display in header
	Command string
}

// RunWatch runs the watch loop, refreshing output at the specified interval.
// Returns an error if opts.Interval is <= 0.
func RunWatch(ctx context.Context, opts WatchOptions) error {
	if opts.Interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %v", opts.Interval)
	}
	if opts.Interval < MinWatchInterval {
		return fmt.Errorf("watch interval must be at least %v, got %v", MinWatchInterval, opts.Interval)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	isTermOut := isTerminalWriter(opts.Writer)

	if err := renderWatchIteration(ctx, opts, isTermOut); err != nil {
		return err
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if isTermOut {
				// Next shell prompt starts on a fresh line.
				_, _ = fmt.Fprintln(opts.Writer)
			}
			return nil

		case <-ticker.C:
			if err := renderWatchIteration(ctx, opts, isTermOut); err != nil {
				// A transient backend failure should not kill the loop.
				if isTermOut {
					_, _ = fmt.Fprintf(opts.Writer, "\nError: %v\n", err)
				}
			}
		}
	}
}

// renderWatchIteration performs a single watch iteration
func renderWatchIteration(ctx context.Context, opts WatchOptions, isTerm bool) error {
	if isTerm {
		clearScreen(opts.Writer)
	}

	printWatchHeader(opts.Writer, opts.Interval, opts.Command)

	data, fetchErr := opts.FetchFunc(ctx)
	if fetchErr != nil {
		return fmt.Errorf("failed to fetch data: %w", fetchErr)
	}

	if renderErr := Render(opts.Writer, data, opts.Format); renderErr != nil {
		return fmt.Errorf("failed to render: %w", renderErr)
	}

	return nil
}

// printWatchHeader prints the watch header similar to the Unix watch command
func printWatchHeader(w io.Writer, interval time.Duration, command string) {
	timeStr := time.Now().Format("Mon Jan 2 15:04:05 2006")
	_, _ = fmt.Fprintf(w, "Every %.1fs: %s    %s\n\n", interval.Seconds(), command, timeStr)
}

// clearScreen clears the terminal screen
func clearScreen(w io.Writer) {
	// \033[H moves the cursor home, \033[2J clears the screen
	_, _ = fmt.Fprint(w, "\033[H\033[2J")
}

// isTerminalWriter checks if the writer is a terminal
func isTerminalWriter(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// WatchRunner is a wrapper that manages watch mode execution
type WatchRunner struct {
	opts    WatchOptions
	running atomic.Bool
}

// NewWatchRunner creates a new watch runner
func NewWatchRunner(opts WatchOptions) *WatchRunner {
	return &WatchRunner{opts: opts}
}

// Run starts the watch loop
func (wr *WatchRunner) Run(ctx context.Context) error {
	if !wr.running.CompareAndSwap(false, true) {
		return fmt.Errorf("watch already running")
	}
	defer wr.running.Store(false)

	return RunWatch(ctx, wr.opts)
}

// IsRunning returns true if the watch loop is running
func (wr *WatchRunner) IsRunning() bool {
	return wr.running.Load()
}
