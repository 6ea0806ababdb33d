package config

import "github.com/nibzard/todo-go/internal/utils"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultDBFile        = "db.json"
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
	DefaultColor         = utils.ColorAuto
	DefaultDurationStyle = utils.DurationLong
)

// Config holds the full configuration for todo.
type Config struct {
	// Task file, resolved against WorkDir
	DBFile string `toml:"db_file"`

	// Output
	Color         string `toml:"color"`          // auto, always, never
	DurationStyle string `toml:"duration_style"` // long ("5 minute(s)") or short ("5m")

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-"`

	// Config files applied, in load order
	Files []string `toml:"-"`

	// Sources maps config keys to where their value came from
	Sources map[string]ConfigSource `toml:"-"`

	// Warnings collected while loading (unknown keys, ignored values)
	Warnings []string `toml:"-"`
}

// ShortDurations reports whether durations use single-letter units.
func (c *Config) ShortDurations() bool {
	return c.DurationStyle == utils.DurationShort
}

// configKeys returns the configurable keys for source tracking.
func configKeys() []string {
	return []string{
		"db_file",
		"color",
		"duration_style",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}
