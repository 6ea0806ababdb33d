package config

import (
	"os"

	"github.com/nibzard/todo-go/internal/utils"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	set := func(key string) {
		cfg.Sources[key] = SourceEnv
	}

	if v := os.Getenv("TODO_DB"); v != "" {
		cfg.DBFile = v
		set("db_file")
	}
	// https://no-color.org: any non-empty value disables color.
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.Color = utils.ColorNever
		set("color")
	}
	if v := os.Getenv("TODO_COLOR"); v != "" {
		cfg.Color = v
		set("color")
	}
	if v := os.Getenv("TODO_DURATION_STYLE"); v != "" {
		cfg.DurationStyle = v
		set("duration_style")
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TODO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = utils.BoolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("TODO_LOG_CALLER"); v != "" {
		cfg.LogCaller = utils.BoolFromString(v)
		set("log_caller")
	}
}
