// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.checklist/checklist.toml or OS-specific config directory)
// 3. Project config file (checklist.toml or .checklist/checklist.toml under the
//    project root given by -root or CHECKLIST_ROOT, else the working directory)
// 4. Environment variables (CHECKLIST_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.checklist/checklist.toml (preferred)
// - Windows: %APPDATA%\checklist\checklist.toml
// - macOS: ~/Library/Application Support/checklist/checklist.toml
// - Linux/BSD: $XDG_CONFIG_HOME/checklist/checklist.toml or ~/.config/checklist/checklist.toml
//
// Unknown keys in a config file are an error.
package config
