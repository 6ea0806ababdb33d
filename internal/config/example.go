package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Values can be overridden by environment variables (TODO_*) or global flags

# Task file (relative to the working directory, supports ~ and $VAR)
db_file = "db.json"

# Color output: auto, always, or never (NO_COLOR also disables color)
color = "auto"

# Duration labels: long ("5 minute(s)") or short ("5m")
duration_style = "long"

# Logging
log_level = "warn"     # debug, info, warn, error
log_format = "text"    # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
