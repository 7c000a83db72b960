package config

import "strconv"

// Entry is one effective configuration value and where it came from.
type Entry struct {
	Key    string
	Value  string
	Source ConfigSource
}

// Entries returns every configurable field in a stable order.
func (c *ConfigWithSources) Entries() []Entry {
	fields := configFields()
	entries := make([]Entry, 0, len(fields))
	for _, field := range fields {
		source, ok := c.Sources[field]
		if !ok {
			source = SourceDefault
		}
		entries = append(entries, Entry{
			Key:    field,
			Value:  c.Config.value(field),
			Source: source,
		})
	}
	return entries
}

func (c *Config) value(field string) string {
	switch field {
	case "store_backend":
		return c.StoreBackend
	case "store_path":
		return c.StorePath
	case "title":
		return c.Title
	case "log_dir":
		return c.LogDir
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(c.LogCaller)
	case "project_root":
		return c.ProjectRoot
	}
	return ""
}

// copyField sets field on c to its value in from.
func (c *Config) copyField(from *Config, field string) {
	switch field {
	case "store_backend":
		c.StoreBackend = from.StoreBackend
	case "store_path":
		c.StorePath = from.StorePath
	case "title":
		c.Title = from.Title
	case "log_dir":
		c.LogDir = from.LogDir
	case "log_level":
		c.LogLevel = from.LogLevel
	case "log_format":
		c.LogFormat = from.LogFormat
	case "log_timestamps":
		c.LogTimestamps = from.LogTimestamps
	case "log_caller":
		c.LogCaller = from.LogCaller
	case "project_root":
		c.ProjectRoot = from.ProjectRoot
	}
}
