package config

import (
	"os"
)

// loadFromEnv overrides config from CHECKLIST_* environment variables
// and records the environment as the source of each value it sets.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("CHECKLIST_STORE"); v != "" {
		cfg.StoreBackend = v
		setEnv("store_backend")
	}
	if v := os.Getenv("CHECKLIST_STORE_PATH"); v != "" {
		cfg.StorePath = v
		setEnv("store_path")
	}
	if v := os.Getenv("CHECKLIST_TITLE"); v != "" {
		cfg.Title = v
		setEnv("title")
	}
	if v := os.Getenv("CHECKLIST_ROOT"); v != "" {
		cfg.ProjectRoot = v
		setEnv("project_root")
	}

	// Logging configuration
	if v := os.Getenv("CHECKLIST_LOG_DIR"); v != "" {
		cfg.LogDir = v
		setEnv("log_dir")
	}
	if v := os.Getenv("CHECKLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("CHECKLIST_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("CHECKLIST_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("CHECKLIST_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}
}
