// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points HOME and XDG_CONFIG_HOME at an empty directory and clears
// the TODO_* variables so the host environment cannot leak into tests.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range []string{
		"TODO_DB", "TODO_COLOR", "TODO_DURATION_STYLE", "TODO_LOG_LEVEL",
		"TODO_LOG_FORMAT", "TODO_LOG_TIMESTAMPS", "TODO_LOG_CALLER", "NO_COLOR",
	} {
		t.Setenv(key, "")
	}
	return home
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("todo", flag.ContinueOnError)
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.DBFile != DefaultDBFile {
		t.Errorf("DBFile: got %q, want %q", cfg.DBFile, DefaultDBFile)
	}
	if cfg.Color != "auto" {
		t.Errorf("Color: got %q, want auto", cfg.Color)
	}
	if cfg.DurationStyle != "long" {
		t.Errorf("DurationStyle: got %q, want long", cfg.DurationStyle)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	for _, key := range configKeys() {
		if cfg.Sources[key] != SourceDefault {
			t.Errorf("Sources[%s]: got %q, want default", key, cfg.Sources[key])
		}
	}
}

func TestLoadInDefaults(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()

	fs := newFlagSet()
	cfg, err := LoadIn(workDir, fs, []string{"get", "1"})
	if err != nil {
		t.Fatalf("LoadIn() error = %v", err)
	}

	if want := filepath.Join(workDir, "db.json"); cfg.DBFile != want {
		t.Errorf("DBFile: got %q, want %q", cfg.DBFile, want)
	}
	if cfg.ShortDurations() {
		t.Error("ShortDurations: got true, want false")
	}
	if len(cfg.Files) != 0 {
		t.Errorf("Files: got %v, want none", cfg.Files)
	}
	if got := fs.Args(); len(got) != 2 || got[0] != "get" || got[1] != "1" {
		t.Errorf("remaining args: got %v, want [get 1]", got)
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TODO_DB", "custom.json")
	t.Setenv("TODO_DURATION_STYLE", "short")
	t.Setenv("TODO_LOG_LEVEL", "debug")
	t.Setenv("TODO_LOG_TIMESTAMPS", "yes")

	cfg := &Config{}
	setDefaults(cfg)
	loadFromEnv(cfg)

	if cfg.DBFile != "custom.json" {
		t.Errorf("DBFile: got %q, want custom.json", cfg.DBFile)
	}
	if cfg.DurationStyle != "short" {
		t.Errorf("DurationStyle: got %q, want short", cfg.DurationStyle)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: got false, want true")
	}
	if cfg.Sources["db_file"] != SourceEnv {
		t.Errorf("Sources[db_file]: got %q, want environment", cfg.Sources["db_file"])
	}
	if cfg.Sources["color"] != SourceDefault {
		t.Errorf("Sources[color]: got %q, want default", cfg.Sources["color"])
	}
}

func TestNoColorEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NO_COLOR", "1")

	cfg, err := LoadIn(t.TempDir(), newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadIn() error = %v", err)
	}
	if cfg.Color != "never" {
		t.Errorf("Color: got %q, want never", cfg.Color)
	}

	t.Setenv("TODO_COLOR", "always")
	cfg, err = LoadIn(t.TempDir(), newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadIn() error = %v", err)
	}
	if cfg.Color != "always" {
		t.Errorf("TODO_COLOR should win over NO_COLOR: got %q", cfg.Color)
	}
}

func TestProjectConfigFile(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()
	content := `db_file = "tasks/db.json"
duration_style = "short"
log_format = "json"
mystery = 1
`
	if err := os.WriteFile(filepath.Join(workDir, "todo.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadIn(workDir, newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadIn() error = %v", err)
	}

	if want := filepath.Join(workDir, "tasks", "db.json"); cfg.DBFile != want {
		t.Errorf("DBFile: got %q, want %q", cfg.DBFile, want)
	}
	if !cfg.ShortDurations() {
		t.Error("ShortDurations: got false, want true")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json", cfg.LogFormat)
	}
	if cfg.Sources["db_file"] != SourceProjFile {
		t.Errorf("Sources[db_file]: got %q, want project file", cfg.Sources["db_file"])
	}
	if cfg.Sources["log_level"] != SourceDefault {
		t.Errorf("Sources[log_level]: got %q, want default", cfg.Sources["log_level"])
	}
	if len(cfg.Files) != 1 {
		t.Fatalf("Files: got %v, want one file", cfg.Files)
	}
	if len(cfg.Warnings) != 1 || !strings.Contains(cfg.Warnings[0], "mystery") {
		t.Errorf("Warnings: got %v, want unknown key mystery", cfg.Warnings)
	}
}

func TestUserConfigOverriddenByProject(t *testing.T) {
	home := isolate(t)
	userDir := filepath.Join(home, ".todo")
	if err := os.MkdirAll(userDir, 0755); err != nil {
		t.Fatal(err)
	}
	userCfg := "log_level = \"info\"\ncolor = \"never\"\n"
	if err := os.WriteFile(filepath.Join(userDir, "todo.toml"), []byte(userCfg), 0644); err != nil {
		t.Fatal(err)
	}

	workDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workDir, ".todo.toml"), []byte("log_level = \"error\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadIn(workDir, newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadIn() error = %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel: got %q, want error", cfg.LogLevel)
	}
	if cfg.Color != "never" {
		t.Errorf("Color: got %q, want never", cfg.Color)
	}
	if cfg.Sources["color"] != SourceUserFile {
		t.Errorf("Sources[color]: got %q, want user file", cfg.Sources["color"])
	}
	if len(cfg.Files) != 2 {
		t.Errorf("Files: got %v, want user and project files", cfg.Files)
	}
}

func TestFlagsOverrideEverything(t *testing.T) {
	isolate(t)
	t.Setenv("TODO_DB", "env.json")
	workDir := t.TempDir()
	dbPath := filepath.Join(t.TempDir(), "flag.json")

	fs := newFlagSet()
	cfg, err := LoadIn(workDir, fs, []string{"-db", dbPath, "-short", "-color", "off", "done", "2"})
	if err != nil {
		t.Fatalf("LoadIn() error = %v", err)
	}

	if cfg.DBFile != dbPath {
		t.Errorf("DBFile: got %q, want %q", cfg.DBFile, dbPath)
	}
	if !cfg.ShortDurations() {
		t.Error("ShortDurations: got false, want true")
	}
	if cfg.Color != "never" {
		t.Errorf("Color: got %q, want never", cfg.Color)
	}
	if cfg.Sources["db_file"] != SourceFlag {
		t.Errorf("Sources[db_file]: got %q, want flag", cfg.Sources["db_file"])
	}
	if got := fs.Args(); len(got) != 2 || got[0] != "done" {
		t.Errorf("remaining args: got %v, want [done 2]", got)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad color", []string{"-color", "rainbow"}},
		{"bad log level", []string{"-log-level", "chatty"}},
		{"bad log format", []string{"-log-format", "xml"}},
		{"empty db", []string{"-db", ""}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			fs := newFlagSet()
			fs.SetOutput(new(strings.Builder))
			if _, err := LoadIn(t.TempDir(), fs, tt.args); err == nil {
				t.Errorf("LoadIn(%v) expected error", tt.args)
			}
		})
	}
}

func TestInvalidConfigFile(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workDir, "todo.toml"), []byte("db_file = [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadIn(workDir, newFlagSet(), nil)
	if err == nil {
		t.Fatal("expected error for malformed TOML")
	}
	if !strings.Contains(err.Error(), "loading project config file") {
		t.Errorf("error = %v, want project config context", err)
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)
	t.Setenv("TODO_TEST_DIR", "/data")

	tests := map[string]string{
		"~":                      home,
		"~/db.json":              filepath.Join(home, "db.json"),
		"$TODO_TEST_DIR/db.json": "/data/db.json",
		"relative.json":          "relative.json",
	}
	for in, want := range tests {
		if got := expandPath(in); got != want {
			t.Errorf("expandPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	isolate(t)
	workDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workDir, "todo.toml"), []byte(ExampleConfig()), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadIn(workDir, newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadIn() error = %v", err)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("example config produced warnings: %v", cfg.Warnings)
	}
}
