package config

import (
	"flag"

	"github.com/nibzard/todo-go/internal/utils"
)

// parseFlags defines and parses the global CLI flags. Parsing stops at the
// first non-flag argument, so the command and its parameter are left in
// fs.Args().
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DBFile, "db", cfg.DBFile, "Path to task file")
	fs.StringVar(&cfg.Color, "color", cfg.Color, "Color output (auto, always, never)")
	short := fs.Bool("short", cfg.ShortDurations(), "Use short duration labels (5m instead of 5 minute(s))")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	flagToKey := map[string]string{
		"db":             "db_file",
		"color":          "color",
		"short":          "duration_style",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}
	fs.Visit(func(f *flag.Flag) {
		key, ok := flagToKey[f.Name]
		if !ok {
			return
		}
		cfg.Sources[key] = SourceFlag
		if f.Name == "short" {
			if *short {
				cfg.DurationStyle = utils.DurationShort
			} else {
				cfg.DurationStyle = utils.DurationLong
			}
		}
	})

	return nil
}
