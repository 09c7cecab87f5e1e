package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidationError wraps a ValidationResult as an error.
type ValidationError struct {
	Result ValidationResult
}

// Error returns all validation errors as a single message.
func (e *ValidationError) Error() string {
	if len(e.Result.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Result.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Result.Errors[0])
	}
	var b strings.Builder
	b.WriteString("configuration validation failed:")
	for _, err := range e.Result.Errors {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying errors joined together.
func (e *ValidationError) Unwrap() error {
	return errors.Join(e.Result.Errors...)
}

// ValidationResult captures validation errors and warnings.
type ValidationResult struct {
	Errors   []error
	Warnings []string
}

// HasErrors reports whether validation errors exist.
func (r ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether validation warnings exist.
func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

var (
	allowedLogLevels  = []string{"debug", "info", "warn", "error"}
	allowedLogFormats = []string{"text", "json"}
)

// ValidateConfig validates configuration values and returns all issues.
func ValidateConfig(cfg Config) ValidationResult {
	var result ValidationResult

	if err := validateBaseURL(cfg.Backend.BaseURL); err != nil {
		result.Errors = append(result.Errors, err)
	}
	if cfg.Backend.PollIntervalSeconds < 1 {
		result.Errors = append(result.Errors, fmt.Errorf(
			"backend.poll-interval-seconds must be >= 1, got: %d", cfg.Backend.PollIntervalSeconds))
	}
	if cfg.Backend.RequestTimeoutSeconds < 1 {
		result.Errors = append(result.Errors, fmt.Errorf(
			"backend.request-timeout-seconds must be >= 1, got: %d", cfg.Backend.RequestTimeoutSeconds))
	}

	if strings.TrimSpace(cfg.Server.ListenAddr) == "" {
		result.Errors = append(result.Errors, errors.New("server.listen-addr must not be empty"))
	}
	if cfg.Server.MaxPageSize < 1 {
		result.Errors = append(result.Errors, fmt.Errorf(
			"server.max-page-size must be >= 1, got: %d", cfg.Server.MaxPageSize))
	}
	if cfg.Server.FetchCap < 1 {
		result.Errors = append(result.Errors, fmt.Errorf(
			"server.fetch-cap must be >= 1, got: %d", cfg.Server.FetchCap))
	}
	if cfg.Server.RateLimitPerMinute < 0 {
		result.Errors = append(result.Errors, fmt.Errorf(
			"server.rate-limit-per-minute must be >= 0, got: %d", cfg.Server.RateLimitPerMinute))
	}

	seen := make(map[string]struct{}, len(cfg.Scripts))
	for i, script := range cfg.Scripts {
		if strings.TrimSpace(script.Name) == "" {
			result.Errors = append(result.Errors, fmt.Errorf("scripts[%d].name must not be empty", i))
			continue
		}
		if _, dup := seen[script.Name]; dup {
			result.Errors = append(result.Errors, fmt.Errorf("scripts[%d]: duplicate name %q", i, script.Name))
		}
		seen[script.Name] = struct{}{}
		if len(script.Command) == 0 {
			result.Errors = append(result.Errors, fmt.Errorf("scripts[%d] (%s): command must not be empty", i, script.Name))
		}
	}

	if cfg.UI.NoticeTimeoutSeconds < 1 {
		result.Errors = append(result.Errors, fmt.Errorf(
			"ui.notice-timeout-seconds must be >= 1, got: %d", cfg.UI.NoticeTimeoutSeconds))
	}

	if cfg.Logging.Level != "" && !slices.Contains(allowedLogLevels, cfg.Logging.Level) {
		result.Errors = append(result.Errors, fmt.Errorf(
			"invalid logging.level %q: allowed values are %v",
			cfg.Logging.Level, allowedLogLevels))
	}
	if cfg.Logging.Format != "" && !slices.Contains(allowedLogFormats, cfg.Logging.Format) {
		result.Errors = append(result.Errors, fmt.Errorf(
			"invalid logging.format %q: allowed values are %v",
			cfg.Logging.Format, allowedLogFormats))
	}

	if cfg.Backend.PollIntervalSeconds >= 1 && cfg.Backend.PollIntervalSeconds < 5 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"backend.poll-interval-seconds=%d is below 5s - may cause excessive backend load",
			cfg.Backend.PollIntervalSeconds))
	}

	return result
}

func validateBaseURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.New("backend.base-url must not be empty")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid backend.base-url %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid backend.base-url %q: scheme must be http or https", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid backend.base-url %q: host is required", raw)
	}
	return nil
}
