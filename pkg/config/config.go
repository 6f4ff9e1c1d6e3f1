// Package config loads and validates the server configuration.
//
// Configuration sources, in order of precedence:
//  1. Environment variables (UASTACK_*)
//  2. Configuration file (YAML)
//  3. Default values
//
// Environment variables override only keys that the configuration file
// sets; when no file is found, the defaults are used and the environment
// is not consulted.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Server bounds the service core.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	// Diagnostics configures the HTTP diagnostics API.
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics" yaml:"diagnostics"`

	// Telemetry configures OpenTelemetry tracing.
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// Profiling configures Pyroscope continuous profiling.
	Profiling ProfilingConfig `mapstructure:"profiling" yaml:"profiling"`
}

// LoggingConfig selects log level, format and destination.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  validate:"omitempty,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"                                   yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

// ServerConfig bounds sessions and traversal work.
type ServerConfig struct {
	// MaxSessions caps concurrently live sessions.
	MaxSessions int `mapstructure:"max_sessions" validate:"gt=0" yaml:"max_sessions"`

	// MaxOperationsPerRequest caps batched operations in one request.
	MaxOperationsPerRequest int `mapstructure:"max_operations_per_request" validate:"gt=0" yaml:"max_operations_per_request"`

	// MaxReferencesPerNode caps one Browse result page.
	MaxReferencesPerNode uint32 `mapstructure:"max_references_per_node" validate:"gt=0" yaml:"max_references_per_node"`

	// MaxBrowsePathMatches caps matched targets per translated path.
	MaxBrowsePathMatches int `mapstructure:"max_browse_path_matches" validate:"gt=0" yaml:"max_browse_path_matches"`

	// MaxBrowsePathRemaining caps out-of-server targets per path.
	MaxBrowsePathRemaining int `mapstructure:"max_browse_path_remaining" validate:"gt=0" yaml:"max_browse_path_remaining"`

	// SessionTimeout closes sessions that never activate.
	SessionTimeout time.Duration `mapstructure:"session_timeout" validate:"gt=0" yaml:"session_timeout"`
}

// DiagnosticsConfig configures the chi-based diagnostics listener.
type DiagnosticsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Listen  string `mapstructure:"listen"  validate:"required_if=Enabled true,omitempty,hostname_port" yaml:"listen"`
}

// TelemetryConfig configures the OTLP trace exporter.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"      yaml:"enabled"`
	Endpoint    string `mapstructure:"endpoint"     validate:"required_if=Enabled true" yaml:"endpoint"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1" yaml:"sample_ratio"`
}

// ProfilingConfig configures Pyroscope continuous profiling.
type ProfilingConfig struct {
	Enabled      bool     `mapstructure:"enabled"       yaml:"enabled"`
	Endpoint     string   `mapstructure:"endpoint"      validate:"required_if=Enabled true" yaml:"endpoint"`
	ServiceName  string   `mapstructure:"service_name"  yaml:"service_name"`
	ProfileTypes []string `mapstructure:"profile_types" yaml:"profile_types"`
}

// Load reads configuration from the given file (or the default
// locations when empty), applies environment overrides and defaults,
// and validates the result. Environment variables override only keys
// present in the file; when no file is found, Load returns the validated
// defaults without consulting the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}
	if !found {
		cfg := Default()
		if err := Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHooks())); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("configuration validation failed: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// Save writes the configuration as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func setupViper(v *viper.Viper, configPath string) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("uastack")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "uastack"))
		}
		v.AddConfigPath("/etc/uastack")
	}
	v.SetEnvPrefix("UASTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file: %w", err)
	}
	return true, nil
}

// decodeHooks converts string durations ("30s") and string slices.
func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
