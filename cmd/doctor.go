package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/todo"
)

// doctorCommand checks config and task file validity.
func doctorCommand(_ context.Context, env *commandEnv, _ string) error {
	out := env.out
	styles := env.view.Styles
	cfg := env.cfg

	fmt.Fprintln(out, "Todo Doctor")
	fmt.Fprintln(out, "===========")
	fmt.Fprintln(out)

	allOK := true

	// Check config
	fmt.Fprintln(out, "Config:")
	fmt.Fprintf(out, "  Working directory: %s\n", cfg.WorkDir)
	if len(cfg.Files) == 0 {
		fmt.Fprintln(out, "  No config files (using defaults)")
	}
	for _, path := range cfg.Files {
		fmt.Fprintf(out, "  File: %s\n", path)
	}
	for _, w := range cfg.Warnings {
		fmt.Fprintln(out, styles.Warning("  ⚠️  "+w))
	}
	keys := make([]string, 0, len(cfg.Sources))
	for key := range cfg.Sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if source := cfg.Sources[key]; source != config.SourceDefault {
			fmt.Fprintf(out, "  %s set by %s\n", key, source)
		}
	}
	fmt.Fprintln(out)

	// Check todo file
	fmt.Fprintf(out, "Todo file: %s\n", cfg.DBFile)
	info, err := os.Stat(cfg.DBFile)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintln(out, styles.Warning("  ⚠️  Not found (created by the first new)"))
	case err != nil:
		fmt.Fprintln(out, styles.Error(fmt.Sprintf("  ❌ Error: %v", err)))
		allOK = false
	case info.IsDir():
		fmt.Fprintln(out, styles.Error("  ❌ Error: path is a directory"))
		allOK = false
	default:
		if !checkTodoFile(env) {
			allOK = false
		}
	}
	fmt.Fprintln(out)

	if !allOK {
		return ErrChecksFailed
	}
	fmt.Fprintln(out, "All checks passed.")
	return nil
}

// checkTodoFile loads the task file, which validates it against the
// bundled schema, then checks the lifecycle invariants of every task.
func checkTodoFile(env *commandEnv) bool {
	out := env.out
	styles := env.view.Styles

	store, err := todo.Open(env.cfg.DBFile, todo.WithLogger(env.logger))
	if err != nil {
		fmt.Fprintln(out, styles.Error(fmt.Sprintf("  ❌ Load error: %v", err)))
		return false
	}
	fmt.Fprintf(out, "  ✅ Schema valid: %s\n", store.Path())

	list := todo.List{Todos: store.All()}
	result := list.Validate()
	for _, w := range result.Warnings {
		fmt.Fprintln(out, styles.Warning("  ⚠️  "+w))
	}
	if result.Valid {
		fmt.Fprintln(out, "  ✅ Valid")
	} else {
		fmt.Fprintln(out, styles.Error("  ❌ Validation failed:"))
		for _, e := range result.Errors {
			fmt.Fprintf(out, "     - %v\n", e)
		}
	}

	var pending, tracking, done int
	for _, t := range list.Todos {
		switch {
		case t.Complete:
			done++
		case t.Tracking:
			tracking++
			pending++
		default:
			pending++
		}
	}
	fmt.Fprintf(out, "  Tasks: %d (pending %d, tracking %d, done %d)\n", len(list.Todos), pending, tracking, done)
	return result.Valid
}
