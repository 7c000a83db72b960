// Package statedir provides constants and path helpers for the .checklist directory.
package statedir

import "path/filepath"

const (
	// Dir is the name of the checklist state directory.
	Dir = ".checklist"

	// DefaultStoreFile is the JSON store file name (inside .checklist).
	DefaultStoreFile = "storage.json"

	// DefaultDBFile is the SQLite store file name (inside .checklist).
	DefaultDBFile = "storage.db"

	// DefaultConfigFile is the config file name (inside .checklist).
	DefaultConfigFile = "checklist.toml"
)

// StorePath returns the JSON store path within a work directory.
func StorePath(workDir string) string {
	return joinPath(workDir, DefaultStoreFile)
}

// DBPath returns the SQLite store path within a work directory.
func DBPath(workDir string) string {
	return joinPath(workDir, DefaultDBFile)
}

// ConfigPath returns the config file path within a work directory.
func ConfigPath(workDir string) string {
	return joinPath(workDir, DefaultConfigFile)
}

// DirPath returns the .checklist directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

func joinPath(workDir, file string) string {
	return filepath.Join(DirPath(workDir), file)
}
