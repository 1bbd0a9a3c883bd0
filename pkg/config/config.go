// Package config provides YAML-based configuration loading for the taskgrid
// client SDK and its command-line tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root client configuration.
type Config struct {
	// Endpoint is the control-plane URI. The scheme decides transport
	// security: grpcs/https are encrypted, grpc/http/tcp are plaintext.
	Endpoint string `mapstructure:"endpoint"`

	// TLS holds optional client certificate material and validation options.
	TLS TLSConfig `mapstructure:"tls"`

	// Pool tunes the channel pool.
	Pool PoolConfig `mapstructure:"pool"`

	// Submit tunes client-side submission retry, backoff and pacing.
	Submit SubmitConfig `mapstructure:"submit"`

	// Tasks holds the session-wide default task options.
	Tasks TaskDefaults `mapstructure:"tasks"`

	// Log holds logging configuration.
	Log LogConfig `mapstructure:"log"`
}

// TLSConfig describes client certificate material (PEM). CertFile and KeyFile
// are supplied together or not at all.
type TLSConfig struct {
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
	// InsecureSkipVerify disables server certificate validation.
	// Only ever enable it against test clusters.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

// PoolConfig tunes channel pooling.
type PoolConfig struct {
	// MaxChannels bounds concurrently leased channels; 0 means unbounded.
	MaxChannels int `mapstructure:"max_channels"`
}

// SubmitConfig tunes the submission path.
type SubmitConfig struct {
	MaxRetries         int `mapstructure:"max_retries"`
	PauseMS            int `mapstructure:"pause_ms"`
	BackoffInitialMS   int `mapstructure:"backoff_initial_ms"`
	BackoffMaxMS       int `mapstructure:"backoff_max_ms"`
	BackoffJitterMS    int `mapstructure:"backoff_jitter_ms"`
	MaxTasksPerRequest int `mapstructure:"max_tasks_per_request"`
}

// TaskDefaults mirrors the session-wide default task options.
type TaskDefaults struct {
	MaxDurationMS        int64             `mapstructure:"max_duration_ms"`
	MaxRetries           int               `mapstructure:"max_retries"`
	Priority             int               `mapstructure:"priority"`
	PartitionID          string            `mapstructure:"partition_id"`
	ApplicationName      string            `mapstructure:"application_name"`
	ApplicationVersion   string            `mapstructure:"application_version"`
	ApplicationNamespace string            `mapstructure:"application_namespace"`
	ApplicationService   string            `mapstructure:"application_service"`
	EngineType           string            `mapstructure:"engine_type"`
	Options              map[string]string `mapstructure:"options"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level"`
	// Format: console or json
	Format string `mapstructure:"format"`
	// Outputs: stdout, stderr, or file paths
	Outputs []string `mapstructure:"outputs"`
	// Rotation controls file rotation when writing to files
	Rotation RotationConfig `mapstructure:"rotation"`
	// Development toggles development-friendly logging options
	Development bool `mapstructure:"development"`
}

// RotationConfig controls log file rotation for file outputs.
type RotationConfig struct {
	Enable     bool   `mapstructure:"enable"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
	Filename   string `mapstructure:"filename"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Endpoint: "grpc://localhost:5001",
		Pool:     PoolConfig{MaxChannels: 0},
		Submit: SubmitConfig{
			MaxRetries:       5,
			PauseMS:          2,
			BackoffInitialMS: 500,
			BackoffMaxMS:     30000,
			BackoffJitterMS:  100,
		},
		Tasks: TaskDefaults{
			MaxDurationMS: 40000,
			MaxRetries:    2,
			Priority:      1,
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "console",
			Outputs:     []string{"stderr"},
			Development: false,
			Rotation: RotationConfig{
				Enable:     false,
				Filename:   "logs/taskgrid.log",
				MaxSizeMB:  50,
				MaxBackups: 3,
				MaxAgeDays: 28,
				Compress:   true,
			},
		},
	}
}

// Load reads configuration from the provided path (if non-empty), otherwise
// it searches common locations and supports environment overrides.
// Environment variables use the prefix TASKGRID and `.`/`-` map to `_`.
// Example: TASKGRID_SUBMIT_MAX_RETRIES=3
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TASKGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// seed defaults for viper so env-only configs work
	v.SetDefault("endpoint", cfg.Endpoint)
	v.SetDefault("tls.cert_file", cfg.TLS.CertFile)
	v.SetDefault("tls.key_file", cfg.TLS.KeyFile)
	v.SetDefault("tls.insecure_skip_verify", cfg.TLS.InsecureSkipVerify)
	v.SetDefault("pool.max_channels", cfg.Pool.MaxChannels)
	v.SetDefault("submit.max_retries", cfg.Submit.MaxRetries)
	v.SetDefault("submit.pause_ms", cfg.Submit.PauseMS)
	v.SetDefault("submit.backoff_initial_ms", cfg.Submit.BackoffInitialMS)
	v.SetDefault("submit.backoff_max_ms", cfg.Submit.BackoffMaxMS)
	v.SetDefault("submit.backoff_jitter_ms", cfg.Submit.BackoffJitterMS)
	v.SetDefault("submit.max_tasks_per_request", cfg.Submit.MaxTasksPerRequest)
	v.SetDefault("tasks.max_duration_ms", cfg.Tasks.MaxDurationMS)
	v.SetDefault("tasks.max_retries", cfg.Tasks.MaxRetries)
	v.SetDefault("tasks.priority", cfg.Tasks.Priority)
	v.SetDefault("tasks.partition_id", cfg.Tasks.PartitionID)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.outputs", cfg.Log.Outputs)
	v.SetDefault("log.development", cfg.Log.Development)
	v.SetDefault("log.rotation.enable", cfg.Log.Rotation.Enable)
	v.SetDefault("log.rotation.filename", cfg.Log.Rotation.Filename)
	v.SetDefault("log.rotation.max_size_mb", cfg.Log.Rotation.MaxSizeMB)
	v.SetDefault("log.rotation.max_backups", cfg.Log.Rotation.MaxBackups)
	v.SetDefault("log.rotation.max_age_days", cfg.Log.Rotation.MaxAgeDays)
	v.SetDefault("log.rotation.compress", cfg.Log.Rotation.Compress)

	if path == "" {
		if envPath := os.Getenv("TASKGRID_CONFIG"); envPath != "" {
			path = envPath
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("taskgrid")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".taskgrid"))
		}
	}

	// Read config file if present; if not found, continue with defaults/env
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return fmt.Errorf("tls.cert_file and tls.key_file must be supplied together")
	}
	if c.Submit.MaxRetries < 0 {
		return fmt.Errorf("submit.max_retries must be >= 0")
	}

	lvl := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch lvl {
	case "debug", "info", "warn", "warning", "error":
		// ok
	default:
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if len(c.Log.Outputs) == 0 {
		c.Log.Outputs = []string{"stderr"}
	}
	return nil
}

// MustLoad is a convenience that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}
