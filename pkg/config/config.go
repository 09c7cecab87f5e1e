// Package config holds the configuration schema and loading logic for podgrid.
package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBackendBaseURL        = "http://localhost:8080"
	DefaultPollIntervalSeconds   = 30
	DefaultRequestTimeoutSeconds = 15
	DefaultListenAddr            = ":8080"
	DefaultPageSize              = 50
	DefaultMaxPageSize           = 3000
	DefaultFetchCap              = 1000
	DefaultRateLimitPerMinute    = 60
	DefaultNoticeTimeoutSeconds  = 5
	DefaultStateBackups          = true
	DefaultLogLevel              = "info"
	DefaultLogFormat             = "text"
)

// Config holds the full configuration schema for podgrid.
type Config struct {
	Backend   BackendConfig   `mapstructure:"backend" yaml:"backend" json:"backend"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server" json:"server"`
	Scripts   []Script        `mapstructure:"scripts" yaml:"scripts" json:"scripts"`
	ViewState ViewStateConfig `mapstructure:"view-state" yaml:"view-state" json:"view-state"`
	UI        UIConfig        `mapstructure:"ui" yaml:"ui" json:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// BackendConfig describes how the TUI reaches the pod-management backend.
type BackendConfig struct {
	// BaseURL is the backend base URL, e.g. http://localhost:8080.
	BaseURL string `mapstructure:"base-url" yaml:"base-url" json:"base-url"`

	// PollIntervalSeconds is the fixed pod list refresh interval.
	PollIntervalSeconds int `mapstructure:"poll-interval-seconds" yaml:"poll-interval-seconds" json:"poll-interval-seconds"`

	// RequestTimeoutSeconds bounds every backend HTTP call.
	RequestTimeoutSeconds int `mapstructure:"request-timeout-seconds" yaml:"request-timeout-seconds" json:"request-timeout-seconds"`
}

// ServerConfig holds settings for the `podgrid serve` REST backend.
type ServerConfig struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string `mapstructure:"listen-addr" yaml:"listen-addr" json:"listen-addr"`

	// MaxPageSize caps the page_size query parameter.
	MaxPageSize int `mapstructure:"max-page-size" yaml:"max-page-size" json:"max-page-size"`

	// FetchCap bounds how many pods a single list request pulls from the
	// API server before pagination is applied.
	FetchCap int `mapstructure:"fetch-cap" yaml:"fetch-cap" json:"fetch-cap"`

	// RateLimitPerMinute is the per-client request budget. Zero disables
	// rate limiting.
	RateLimitPerMinute int `mapstructure:"rate-limit-per-minute" yaml:"rate-limit-per-minute" json:"rate-limit-per-minute"`
}

// Script is one entry of the enumerated script catalog.
type Script struct {
	// Name is the identifier operators pick from the catalog.
	Name string `mapstructure:"name" yaml:"name" json:"name"`

	// Command is the argv executed inside the target pod.
	Command []string `mapstructure:"command" yaml:"command" json:"command"`

	// Container optionally selects the container; empty means the first one.
	Container string `mapstructure:"container" yaml:"container" json:"container"`
}

// ViewStateConfig controls grid layout persistence.
type ViewStateConfig struct {
	// File is the state file path. Supports a leading "~".
	File string `mapstructure:"file" yaml:"file" json:"file"`

	// BackupEnabled keeps a timestamped copy of the previous state file.
	BackupEnabled bool `mapstructure:"backup-enabled" yaml:"backup-enabled" json:"backup-enabled"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	// NoticeTimeoutSeconds is how long success notifications stay visible.
	NoticeTimeoutSeconds int `mapstructure:"notice-timeout-seconds" yaml:"notice-timeout-seconds" json:"notice-timeout-seconds"`
}

// LoggingConfig controls log output settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// DefaultConfig returns a config with all default values applied.
func DefaultConfig() Config {
	return Config{
		Backend: BackendConfig{
			BaseURL:               DefaultBackendBaseURL,
			PollIntervalSeconds:   DefaultPollIntervalSeconds,
			RequestTimeoutSeconds: DefaultRequestTimeoutSeconds,
		},
		Server: ServerConfig{
			ListenAddr:         DefaultListenAddr,
			MaxPageSize:        DefaultMaxPageSize,
			FetchCap:           DefaultFetchCap,
			RateLimitPerMinute: DefaultRateLimitPerMinute,
		},
		Scripts: nil,
		ViewState: ViewStateConfig{
			File:          "~/.config/podgrid/table-state.json",
			BackupEnabled: DefaultStateBackups,
		},
		UI: UIConfig{
			NoticeTimeoutSeconds: DefaultNoticeTimeoutSeconds,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			File:   "",
			Format: DefaultLogFormat,
		},
	}
}

// PollInterval returns the backend poll interval as a duration.
func (c BackendConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// RequestTimeout returns the backend request timeout as a duration.
func (c BackendConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// ScriptByName looks up a catalog entry by its identifier.
func (c Config) ScriptByName(name string) (Script, bool) {
	for _, s := range c.Scripts {
		if s.Name == name {
			return s, true
		}
	}
	return Script{}, false
}

// String renders the configuration as YAML.
func (c Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return strings.TrimSpace(string(data))
}
