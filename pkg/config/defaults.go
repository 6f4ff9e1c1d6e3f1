package config

import "time"

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with the server defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	if cfg.Server.MaxSessions == 0 {
		cfg.Server.MaxSessions = 20
	}
	if cfg.Server.MaxOperationsPerRequest == 0 {
		cfg.Server.MaxOperationsPerRequest = 500
	}
	if cfg.Server.MaxReferencesPerNode == 0 {
		cfg.Server.MaxReferencesPerNode = 1000
	}
	if cfg.Server.MaxBrowsePathMatches == 0 {
		cfg.Server.MaxBrowsePathMatches = 10
	}
	if cfg.Server.MaxBrowsePathRemaining == 0 {
		cfg.Server.MaxBrowsePathRemaining = 10
	}
	if cfg.Server.SessionTimeout == 0 {
		cfg.Server.SessionTimeout = time.Minute
	}

	if cfg.Diagnostics.Listen == "" {
		cfg.Diagnostics.Listen = "127.0.0.1:8406"
	}

	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "uastack"
	}
	if cfg.Telemetry.SampleRatio == 0 {
		cfg.Telemetry.SampleRatio = 1
	}

	if cfg.Profiling.ServiceName == "" {
		cfg.Profiling.ServiceName = "uastack"
	}
	if len(cfg.Profiling.ProfileTypes) == 0 {
		cfg.Profiling.ProfileTypes = []string{"cpu", "inuse_space"}
	}
}
