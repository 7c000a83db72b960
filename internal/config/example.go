package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Checklist configuration file
# Values can be overridden by CHECKLIST_* environment variables or CLI flags

# Store backend: file (JSON), sqlite, or memory (nothing persists)
store_backend = "file"

# Store location (relative to project root). Leave empty for the backend
# default: .checklist/storage.json or .checklist/storage.db
# store_path = ".checklist/storage.json"

# Title shown above the checklist
title = "BE DISCIPLINED"

# Log directory (supports ~ and $VAR expansion)
log_dir = "~/.checklist/logs"

# Logging: debug, info, warn, error
log_level = "info"

# Log format: text, json, logfmt
log_format = "text"

log_timestamps = true
log_caller = false
`
}
