package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/todo-go/internal/utils"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error", "fatal"}
	validLogFormats = []string{"text", "json", "logfmt"}
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.todo/todo.toml or OS-specific config dir)
// 3. Project config file (todo.toml or .todo.toml in the working directory)
// 4. Environment variables
// 5. CLI flags
//
// Arguments left after flag parsing are available from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadIn(wd, fs, args)
}

// LoadIn is Load with an explicit working directory.
func LoadIn(workDir string, fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{
		WorkDir: workDir,
		Sources: make(map[string]ConfigSource),
	}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(workDir); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// loadConfigFile decodes TOML from path over cfg. Keys absent from the file
// keep their current value.
func loadConfigFile(cfg *Config, path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}

	for _, key := range configKeys() {
		if md.IsDefined(key) {
			cfg.Sources[key] = source
		}
	}
	for _, key := range md.Undecoded() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: unknown key %q", path, key.String()))
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

// finalizeConfig computes derived values and validates enumerations.
func finalizeConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.DBFile) == "" {
		return fmt.Errorf("db_file is empty")
	}
	cfg.DBFile = expandPath(cfg.DBFile)
	if !filepath.IsAbs(cfg.DBFile) {
		cfg.DBFile = filepath.Join(cfg.WorkDir, cfg.DBFile)
	}

	color, ok := utils.NormalizeColorMode(cfg.Color)
	if !ok {
		return fmt.Errorf("invalid color %q (expected auto|always|never)", cfg.Color)
	}
	cfg.Color = color

	style, ok := utils.NormalizeDurationStyle(cfg.DurationStyle)
	if !ok {
		return fmt.Errorf("invalid duration_style %q (expected long|short)", cfg.DurationStyle)
	}
	cfg.DurationStyle = style

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	if !contains(validLogLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log_level %q (expected %s)", cfg.LogLevel, strings.Join(validLogLevels, "|"))
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if !contains(validLogFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log_format %q (expected %s)", cfg.LogFormat, strings.Join(validLogFormats, "|"))
	}

	return nil
}

// expandPath expands environment variables and a leading ~ in paths.
func expandPath(p string) string {
	expanded := os.ExpandEnv(p)
	if expanded != "~" && !strings.HasPrefix(expanded, "~/") && !strings.HasPrefix(expanded, `~\`) {
		return expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	if expanded == "~" {
		return home
	}
	return filepath.Join(home, expanded[2:])
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
