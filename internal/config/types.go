package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultStoreBackend = "file"
	DefaultTitle        = "BE DISCIPLINED"
	DefaultLogDir       = "~/.checklist/logs"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config holds the full configuration for checklist.
type Config struct {
	// Storage
	StoreBackend string `toml:"store_backend"` // file, sqlite or memory
	StorePath    string `toml:"store_path"`    // Empty selects the backend default under .checklist

	// Display
	Title string `toml:"title"`

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed unless set by flag or environment)
	ProjectRoot string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"store_backend",
		"store_path",
		"title",
		"log_dir",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"project_root",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StoreBackend = DefaultStoreBackend
	cfg.StorePath = ""
	cfg.Title = DefaultTitle
	cfg.LogDir = DefaultLogDir
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
	cfg.LogCaller = false
}
