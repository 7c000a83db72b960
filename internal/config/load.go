package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/checklist-go/internal/statedir"
	"github.com/nibzard/checklist-go/internal/store"
)

// LoadWithSources loads configuration from multiple sources in priority order
// and tracks where each value came from:
// 1. Defaults
// 2. User config file (~/.checklist/checklist.toml or OS-specific config dir)
// 3. Project config file (checklist.toml or .checklist/checklist.toml under the project root)
// 4. Environment variables
// 5. CLI flags
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}
	var files []string

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// Flags are parsed up front so -root can locate the project config,
	// and applied last.
	cli := *cfg
	flagged := make(map[string]ConfigSource)
	if err := parseFlags(&cli, fs, args, flagged); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		files = append(files, userConfigFile)
	}

	// 3. Try to load from project config file (overrides user config)
	root := os.Getenv("CHECKLIST_ROOT")
	if _, ok := flagged["project_root"]; ok {
		root = cli.ProjectRoot
	}
	if projectConfigFile := findProjectConfigFile(expandPath(root)); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		files = append(files, projectConfigFile)
	}

	// 4. Override from environment
	loadFromEnv(cfg, sources)

	// 5. CLI flags override everything
	for field := range flagged {
		cfg.copyField(&cli, field)
		sources[field] = SourceFlag
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
		Files:   files,
	}, nil
}

// loadConfigFile decodes a TOML file over cfg and marks every key the file
// defines with source.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	for _, field := range configFields() {
		if md.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// finalizeConfig computes derived values and resolves paths.
func finalizeConfig(cfg *Config) error {
	cfg.LogDir = expandPath(cfg.LogDir)
	cfg.StoreBackend = store.NormalizeBackend(cfg.StoreBackend)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}
	cfg.ProjectRoot = expandPath(cfg.ProjectRoot)
	if abs, err := filepath.Abs(cfg.ProjectRoot); err == nil {
		cfg.ProjectRoot = abs
	}

	cfg.StorePath = expandPath(cfg.StorePath)
	if cfg.StorePath == "" {
		cfg.StorePath = defaultStorePath(cfg.StoreBackend, cfg.ProjectRoot)
	}
	if cfg.StorePath != "" && !filepath.IsAbs(cfg.StorePath) {
		cfg.StorePath = filepath.Join(cfg.ProjectRoot, cfg.StorePath)
	}

	return nil
}

// defaultStorePath returns the store location for a backend under the
// project's .checklist directory. Memory stores have no path.
func defaultStorePath(backend, root string) string {
	switch backend {
	case store.BackendSQLite:
		return statedir.DBPath(root)
	case store.BackendMemory:
		return ""
	default:
		return statedir.StorePath(root)
	}
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	var problems []string
	if !store.ValidBackend(c.StoreBackend) {
		problems = append(problems, fmt.Sprintf("store_backend %q (expected %s)", c.StoreBackend, strings.Join(store.Backends(), "|")))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		problems = append(problems, fmt.Sprintf("log_level %q (expected debug|info|warn|error|fatal)", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		problems = append(problems, fmt.Sprintf("log_format %q (expected text|json|logfmt)", c.LogFormat))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
