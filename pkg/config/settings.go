package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/bistroworks/bistro/pkg/telemetry"
)

// EnvPrefix prefixes every environment variable read into Settings,
// e.g. BISTRO_LOG_LEVEL or BISTRO_TRACING_ENDPOINT.
const EnvPrefix = "BISTRO"

// Settings are the application settings of the bistro CLI. Precedence is
// command-line flags, then environment, then the settings file, then defaults.
type Settings struct {
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	Environment string `mapstructure:"environment"`

	// DBPath is the session history database.
	DBPath string `mapstructure:"db_path"`

	// Store enables session history.
	Store bool `mapstructure:"store"`

	Metrics MetricsSettings `mapstructure:"metrics"`
	Tracing TracingSettings `mapstructure:"tracing"`
	Events  EventSettings   `mapstructure:"events"`

	// ConfigFile is the settings file that was read, if any.
	ConfigFile string `mapstructure:"-"`
}

// MetricsSettings configures the prometheus endpoint.
type MetricsSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	Path    string `mapstructure:"path"`
}

// TracingSettings configures span export.
type TracingSettings struct {
	Enabled    bool    `mapstructure:"enabled"`
	Exporter   string  `mapstructure:"exporter"`
	Endpoint   string  `mapstructure:"endpoint"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

// EventSettings configures the event publisher.
type EventSettings struct {
	Enabled    bool `mapstructure:"enabled"`
	Async      bool `mapstructure:"async"`
	BufferSize int  `mapstructure:"buffer_size"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("environment", "development")
	v.SetDefault("db_path", "bistro.db")
	v.SetDefault("store", true)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.address", ":9090")
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.exporter", "none")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sample_rate", 1.0)

	v.SetDefault("events.enabled", true)
	v.SetDefault("events.async", false)
	v.SetDefault("events.buffer_size", 256)
}

// LoadSettings reads settings. An empty path searches for bistro.yaml in the
// working directory and $HOME/.config/bistro; a missing file is not an
// error unless path names it explicitly.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bistro")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/bistro")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	s.ConfigFile = v.ConfigFileUsed()
	return &s, nil
}

// Telemetry derives a validated telemetry configuration.
func (s *Settings) Telemetry(version string) (*telemetry.Config, error) {
	cfg := telemetry.DefaultConfig()
	if version != "" {
		cfg.ServiceVersion = version
	}
	cfg.Environment = s.Environment

	cfg.Logging.Level = strings.ToLower(s.LogLevel)
	cfg.Logging.Format = strings.ToLower(s.LogFormat)

	cfg.Metrics.Enabled = s.Metrics.Enabled
	if s.Metrics.Address != "" {
		cfg.Metrics.ListenAddress = s.Metrics.Address
	}
	if s.Metrics.Path != "" {
		cfg.Metrics.Path = s.Metrics.Path
	}

	cfg.Tracing.Enabled = s.Tracing.Enabled
	cfg.Tracing.Exporter = s.Tracing.Exporter
	cfg.Tracing.Endpoint = s.Tracing.Endpoint
	cfg.Tracing.SamplingRate = s.Tracing.SampleRate

	cfg.Events.Enabled = s.Events.Enabled
	cfg.Events.EnableAsync = s.Events.Async
	cfg.Events.BufferSize = s.Events.BufferSize

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid telemetry settings: %w", err)
	}
	return cfg, nil
}
