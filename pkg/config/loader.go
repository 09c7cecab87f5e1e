package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// ConfigFile is an explicit config file path. When set, it must exist.
	ConfigFile string

	// ConfigFiles overrides the default candidate list (tests).
	ConfigFiles []string

	// Flags are CLI flags bound on top of file and env values.
	Flags *pflag.FlagSet
}

// LoadResult contains the merged configuration and validation output.
type LoadResult struct {
	Config         Config
	Validation     ValidationResult
	ConfigFileUsed string
}

// LoadConfig loads configuration from defaults, file, env, and flags.
func LoadConfig(opts LoadOptions) (LoadResult, error) {
	v := viper.New()
	setDefaults(v)
	configureEnv(v)

	if opts.Flags != nil {
		if err := BindFlags(v, opts.Flags); err != nil {
			return LoadResult{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	configPath, err := resolveConfigFile(opts)
	if err != nil {
		return LoadResult{}, err
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return LoadResult{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return LoadResult{}, fmt.Errorf("unmarshal config: %w", err)
	}

	validation := ValidateConfig(cfg)
	result := LoadResult{
		Config:         cfg,
		Validation:     validation,
		ConfigFileUsed: v.ConfigFileUsed(),
	}
	if validation.HasErrors() {
		return result, &ValidationError{Result: validation}
	}

	return result, nil
}

// BindFlags binds supported CLI flags to viper keys.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"backend-url": "backend.base-url",
		"poll":        "backend.poll-interval-seconds",
		"listen":      "server.listen-addr",
		"state-file":  "view-state.file",
		"log-level":   "logging.level",
		"log-file":    "logging.file",
	}

	for flag, key := range bindings {
		if flags.Lookup(flag) == nil {
			continue
		}
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %q: %w", flag, err)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("backend.base-url", defaults.Backend.BaseURL)
	v.SetDefault("backend.poll-interval-seconds", defaults.Backend.PollIntervalSeconds)
	v.SetDefault("backend.request-timeout-seconds", defaults.Backend.RequestTimeoutSeconds)

	v.SetDefault("server.listen-addr", defaults.Server.ListenAddr)
	v.SetDefault("server.max-page-size", defaults.Server.MaxPageSize)
	v.SetDefault("server.fetch-cap", defaults.Server.FetchCap)
	v.SetDefault("server.rate-limit-per-minute", defaults.Server.RateLimitPerMinute)

	v.SetDefault("view-state.file", defaults.ViewState.File)
	v.SetDefault("view-state.backup-enabled", defaults.ViewState.BackupEnabled)

	v.SetDefault("ui.notice-timeout-seconds", defaults.UI.NoticeTimeoutSeconds)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

func configureEnv(v *viper.Viper) {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	v.SetEnvKeyReplacer(replacer)
	v.SetEnvPrefix("PODGRID")
	v.AutomaticEnv()
}

func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("config file not found: %s", opts.ConfigFile)
			}
			return "", fmt.Errorf("config file error: %w", err)
		}
		return opts.ConfigFile, nil
	}

	candidates := opts.ConfigFiles
	if len(candidates) == 0 {
		candidates = defaultConfigFiles()
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("config file error: %w", err)
		}
		if info.IsDir() {
			continue
		}
		return candidate, nil
	}

	return "", nil
}

func defaultConfigFiles() []string {
	files := []string{"./podgrid.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		files = append(files, filepath.Join(home, ".config", "podgrid", "config.yaml"))
	}
	files = append(files, "/etc/podgrid/config.yaml")
	return files
}
