package config

import (
	"flag"
)

// parseFlags defines the global flags on fs, parses args and records which
// fields were set on the command line.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("checklist", flag.ContinueOnError)
	}

	// Storage
	fs.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "Store backend (file, sqlite, memory)")
	fs.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "Store file path (default .checklist/storage.json or storage.db)")
	fs.StringVar(&cfg.ProjectRoot, "root", cfg.ProjectRoot, "Project root (default current directory)")

	// Display
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Checklist title")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"store":          "store_backend",
		"store-path":     "store_path",
		"root":           "project_root",
		"title":          "title",
		"log-dir":        "log_dir",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	fs.Visit(func(f *flag.Flag) {
		if sources == nil {
			return
		}
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = SourceFlag
		}
	})

	return nil
}
