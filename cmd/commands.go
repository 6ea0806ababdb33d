package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/ui"
)

const titlePrompt = "Type in your todo"

var errMissingIndex = &UsageError{Msg: "Must provide todo index"}

// newCommand prompts for a title and appends a task. Any non-empty
// parameter that is not a boolean starts tracking.
func newCommand(ctx context.Context, env *commandEnv, param string) error {
	track := parseTrackFlag(param)

	title, err := env.prompter.Prompt(ctx, titlePrompt)
	if err != nil {
		return fmt.Errorf("reading title: %w", err)
	}

	task := todo.NewTask(title, track, env.now())
	if err := env.store.Append(task); err != nil {
		return err
	}
	env.logger.Info("added todo", "index", env.store.Len(), "tracking", track)
	return nil
}

// getCommand prints every task, or the one at a 1-based index.
func getCommand(_ context.Context, env *commandEnv, param string) error {
	now := env.now()
	if param == "" {
		fmt.Fprint(env.out, env.view.List(env.store.All(), now))
		return nil
	}

	index, err := parseIndex(param)
	var task todo.Task
	if err == nil {
		task, err = env.store.At(index)
	}
	if errors.Is(err, todo.ErrNotFound) {
		fmt.Fprintln(env.out, "No to-do at this index.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprint(env.out, env.view.Selected(index+1, task, now))
	return nil
}

// doneCommand marks a task complete, computing its duration when tracked.
func doneCommand(_ context.Context, env *commandEnv, param string) error {
	if param == "" {
		return errMissingIndex
	}
	index, err := parseIndex(param)
	if err != nil {
		return err
	}
	task, err := env.store.At(index)
	if err != nil {
		return err
	}

	if err := env.store.ReplaceAt(index, task.Completed(env.now())); err != nil {
		return err
	}
	env.logger.Info("completed todo", "index", index+1)
	return nil
}

// trackCommand starts tracking a task that is not tracked yet.
func trackCommand(_ context.Context, env *commandEnv, param string) error {
	if param == "" {
		return errMissingIndex
	}
	index, err := parseIndex(param)
	if err != nil {
		return err
	}
	task, err := env.store.At(index)
	if err != nil {
		return err
	}

	tracked, err := task.Tracked(env.now())
	if err != nil {
		return err
	}
	if err := env.store.ReplaceAt(index, tracked); err != nil {
		return err
	}
	env.logger.Info("tracking todo", "index", index+1)
	return nil
}

// delCommand removes the task at a 1-based index. Without a parameter, or
// when nothing is there, the list is left as is.
func delCommand(_ context.Context, env *commandEnv, param string) error {
	index := -1
	if param != "" {
		var err error
		index, err = parseIndex(param)
		if errors.Is(err, todo.ErrNotFound) {
			index = -1
		} else if err != nil {
			return err
		}
	}
	before := env.store.Len()
	if err := env.store.RemoveAt(index); err != nil {
		return err
	}
	if env.store.Len() < before {
		env.logger.Info("deleted todo", "index", index+1)
	}
	return nil
}

func clearCommand(_ context.Context, env *commandEnv, _ string) error {
	count := env.store.Len()
	if err := env.store.Clear(); err != nil {
		return err
	}
	env.logger.Info("cleared todos", "count", count)
	return nil
}

// versionCommand prints version information.
func versionCommand(_ context.Context, env *commandEnv, _ string) error {
	fmt.Fprintf(env.out, "todo version %s\n", Version)
	return nil
}

// configCommand prints a commented example config file, or the JSON Schema
// of the task file with "config schema".
func configCommand(_ context.Context, env *commandEnv, param string) error {
	switch param {
	case "":
		fmt.Fprint(env.out, config.ExampleConfig())
		return nil
	case "schema":
		_, err := env.out.Write(todo.Schema())
		return err
	default:
		return &UsageError{Msg: fmt.Sprintf("Unknown config topic %q (expected schema)", param)}
	}
}

// tuiCommand launches the live terminal view of the task file. The optional
// parameter is the refresh interval, e.g. "5s".
func tuiCommand(ctx context.Context, env *commandEnv, param string) error {
	opts := []ui.TUIOption{
		ui.WithTUILogger(env.logger),
		ui.WithClock(env.now),
	}
	if param != "" {
		interval, err := parseInterval(param)
		if err != nil {
			return err
		}
		opts = append(opts, ui.WithRefreshInterval(interval))
	}
	return ui.RunTUI(ctx, env.cfg.DBFile, env.view, opts...)
}

func parseInterval(param string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(param))
	if err != nil || d <= 0 {
		return 0, &UsageError{Msg: fmt.Sprintf("Invalid refresh interval %q", param), Err: err}
	}
	return d, nil
}

// parseTrackFlag reads the optional parameter of new. Booleans are taken
// at face value; anything else that is present means true.
func parseTrackFlag(param string) bool {
	param = strings.TrimSpace(param)
	if param == "" {
		return false
	}
	if v, err := strconv.ParseBool(param); err == nil {
		return v
	}
	return true
}

// parseIndex turns a 1-based index argument into a 0-based one. Indices
// too large to represent come back as todo.ErrNotFound.
func parseIndex(param string) (int, error) {
	index, err := todo.ParsePosition(param)
	if errors.Is(err, todo.ErrNotFound) {
		return 0, err
	}
	if err != nil {
		return 0, &UsageError{Msg: fmt.Sprintf("Invalid todo index %q", param), Err: err}
	}
	return index, nil
}
