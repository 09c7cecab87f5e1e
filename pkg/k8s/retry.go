package k8s

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// RetryConfig holds configuration for retry behavior
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts
	MaxRetries int

	// InitialBackoff is the initial backoff duration
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration
	MaxBackoff time.Duration

	// BackoffMultiplier is the multiplier for exponential backoff
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// WithRetry wraps a function with retry logic for transient API server errors.
// Rate-limited calls honor the server's RetryAfterSeconds hint when present.
func WithRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	var lastErr error
	backoff := cfg.InitialBackoff

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err

		if !isRetryable(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}

		if attempt >= cfg.MaxRetries {
			break
		}

		if retryAfter := getRetryAfter(err); retryAfter > 0 {
			backoff = retryAfter
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * cfg.BackoffMultiplier)
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, lastErr)
}

// isRetryable determines if an error should be retried
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *apierrors.StatusError
	if errors.As(err, &statusErr) {
		statusCode := statusErr.Status().Code

		// Client errors are terminal except rate limiting and request timeout.
		if statusCode >= 400 && statusCode < 500 {
			return statusCode == http.StatusTooManyRequests ||
				statusCode == http.StatusRequestTimeout
		}

		return statusCode >= 500
	}

	// Non-API errors are likely transient network failures.
	return true
}

// getRetryAfter extracts the RetryAfterSeconds hint from a rate limit error
func getRetryAfter(err error) time.Duration {
	var statusErr *apierrors.StatusError
	if !errors.As(err, &statusErr) {
		return 0
	}

	if statusErr.Status().Code != http.StatusTooManyRequests {
		return 0
	}

	if details := statusErr.Status().Details; details != nil && details.RetryAfterSeconds > 0 {
		return time.Duration(details.RetryAfterSeconds) * time.Second
	}

	return 0
}

// IsNotFound returns true if the error is a NotFound error
func IsNotFound(err error) bool {
	return apierrors.IsNotFound(err)
}

// IsForbidden returns true if the error is a Forbidden error
func IsForbidden(err error) bool {
	return apierrors.IsForbidden(err)
}
