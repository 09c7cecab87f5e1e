package output

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunWatchRejectsBadInterval(t *testing.T) {
	opts := WatchOptions{
		Interval:  0,
		Format:    FormatJSON,
		FetchFunc: func(context.Context) (*Data, error) { return sampleData(), nil },
		Writer:    &bytes.Buffer{},
	}
	if err := RunWatch(context.Background(), opts); err == nil {
		t.Error("expected error for zero interval")
	}

	opts.Interval = 10 * time.Millisecond
	if err := RunWatch(context.Background(), opts); err == nil {
		t.Error("expected error for interval below minimum")
	}
}

func TestRunWatchRendersAndStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var fetches atomic.Int32
	var buf bytes.Buffer
	opts := WatchOptions{
		Interval: MinWatchInterval,
		Format:   FormatTable,
		Command:  "podgrid ls",
		Writer:   &buf,
		FetchFunc: func(context.Context) (*Data, error) {
			if fetches.Add(1) >= 2 {
				cancel()
			}
			return sampleData(), nil
		},
	}

	done := make(chan error, 1)
	go func() { done <- RunWatch(ctx, opts) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunWatch: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop after cancel")
	}

	out := buf.String()
	if !strings.Contains(out, "podgrid ls") {
		t.Error("watch header missing the command")
	}
	if !strings.Contains(out, "web-0") {
		t.Error("watch output missing pod rows")
	}
	if fetches.Load() < 2 {
		t.Errorf("fetches = %d, want at least 2", fetches.Load())
	}
}

func TestRunWatchFirstFetchErrorIsFatal(t *testing.T) {
	opts := WatchOptions{
		Interval:  MinWatchInterval,
		Format:    FormatJSON,
		Writer:    &bytes.Buffer{},
		FetchFunc: func(context.Context) (*Data, error) { return nil, errors.New("backend down") },
	}

	if err := RunWatch(context.Background(), opts); err == nil {
		t.Error("expected the initial fetch failure to surface")
	}
}

func TestWatchRunnerRefusesConcurrentRuns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	runner := NewWatchRunner(WatchOptions{
		Interval: MinWatchInterval,
		Format:   FormatJSON,
		Writer:   &bytes.Buffer{},
		FetchFunc: func(context.Context) (*Data, error) {
			select {
			case started <- struct{}{}:
			default:
			}
			return sampleData(), nil
		},
	})

	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop never started")
	}

	if err := runner.Run(ctx); err == nil {
		t.Error("second Run should fail while the first is active")
	}
	if !runner.IsRunning() {
		t.Error("IsRunning should report true while the loop is active")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("RunWatch: %v", err)
	}
}
