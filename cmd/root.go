// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// runOptions holds the process environment a run works against.
type runOptions struct {
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	workDir string // empty means the current directory
	now     func() time.Time
}

// commandEnv is handed to every command handler.
type commandEnv struct {
	cfg      *config.Config
	fs       *flag.FlagSet
	out      io.Writer
	errOut   io.Writer
	errStyle ui.Styles
	view     ui.TaskView
	prompter ui.Prompter
	logger   *log.Logger
	now      func() time.Time
	store    *todo.Store
}

type handler func(ctx context.Context, env *commandEnv, param string) error

// storeCommands operate on the task file; it is opened before they run.
var storeCommands = map[string]handler{
	"new":   newCommand,
	"get":   getCommand,
	"done":  doneCommand,
	"track": trackCommand,
	"del":   delCommand,
	"clear": clearCommand,
}

// Run executes the todo CLI. Errors are reported on stderr before being
// returned; use ExitCode to turn them into a process exit status.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, runOptions{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		now:    time.Now,
	})
}

func run(ctx context.Context, args []string, opts runOptions) error {
	if opts.now == nil {
		opts.now = time.Now
	}
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(opts.stderr)
	fs.Usage = func() {
		printUsage(fs, opts.stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	var cfg *config.Config
	var err error
	if opts.workDir == "" {
		cfg, err = config.Load(fs, args)
	} else {
		cfg, err = config.LoadIn(opts.workDir, fs, args)
	}
	if err != nil {
		err = &UsageError{Msg: fmt.Sprintf("Invalid configuration: %v", err), Err: err}
		fmt.Fprintln(opts.stderr, Message(err))
		return err
	}

	styles := ui.NewStyles(opts.stdout, cfg.Color)
	env := &commandEnv{
		cfg:      cfg,
		fs:       fs,
		out:      opts.stdout,
		errOut:   opts.stderr,
		errStyle: ui.NewStyles(opts.stderr, cfg.Color),
		view:     ui.TaskView{Styles: styles, Short: cfg.ShortDurations()},
		prompter: ui.NewPrompter(opts.stdin, opts.stdout, styles),
		logger:   logging.New(opts.stderr, logging.OptionsFromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)),
		now:      opts.now,
	}
	for _, w := range cfg.Warnings {
		env.logger.Warn(w)
	}
	env.logger.Debug("config loaded", "db", cfg.DBFile, "files", len(cfg.Files))

	switch {
	case *help:
		printUsage(fs, env.out)
		return nil
	case *showVersion:
		return versionCommand(ctx, env, "")
	}

	err = env.dispatch(ctx, fs.Args())
	if err != nil && ctx.Err() == nil {
		env.report(err)
	}
	return err
}

// dispatch runs the command named by args[0] with the optional parameter
// args[1].
func (env *commandEnv) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return &UsageError{Msg: "Invalid Command Passed", ShowUsage: true}
	}
	command, param := args[0], ""
	if len(args) > 1 {
		param = args[1]
	}
	if len(args) > 2 {
		env.logger.Debug("ignoring extra arguments", "args", args[2:])
	}

	if h, ok := storeCommands[command]; ok {
		store, err := todo.Open(env.cfg.DBFile, todo.WithLogger(env.logger))
		if err != nil {
			return err
		}
		env.store = store
		return h(ctx, env, param)
	}

	switch command {
	case "help", "--help", "-h":
		printUsage(env.fs, env.out)
		return nil
	case "version":
		return versionCommand(ctx, env, param)
	case "config":
		return configCommand(ctx, env, param)
	case "doctor":
		return doctorCommand(ctx, env, param)
	case "tui":
		return tuiCommand(ctx, env, param)
	default:
		env.logger.Debug("unknown command", "command", command)
		return &UsageError{Msg: "Invalid Command Passed", ShowUsage: true}
	}
}

// report prints err for the user, followed by the usage text when asked.
func (env *commandEnv) report(err error) {
	fmt.Fprintln(env.errOut, env.errStyle.Error(Message(err)))
	env.logger.Debug("command failed", "err", err, "exit", ExitCode(err))

	var usageErr *UsageError
	if errors.As(err, &usageErr) && usageErr.ShowUsage {
		printUsage(env.fs, env.errOut)
	}
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  todo helps you manage your todo tasks.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  usage:")
	fmt.Fprintln(w, "    todo [options] <command> [parameter]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    commands can be:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    new       <track>     used to create a new todo, if track parameter is set to true, tracking begins immediately")
	fmt.Fprintln(w, "    get       <index>     used to retrieve your todos")
	fmt.Fprintln(w, "    del       <index>     used to delete todo at provided index")
	fmt.Fprintln(w, "    done      <index>     used to mark a todo as complete")
	fmt.Fprintln(w, "    track     <index>     used to track how long it took to complete task")
	fmt.Fprintln(w, "    clear                 used to delete every todo")
	fmt.Fprintln(w, "    tui       <interval>  used to watch your todos in a live terminal view, refreshed every interval (default 1s)")
	fmt.Fprintln(w, "    doctor                used to check the config and the todo file")
	fmt.Fprintln(w, "    config    <schema>    used to print an example config file, or the todo file schema")
	fmt.Fprintln(w, "    version               used to print the version")
	fmt.Fprintln(w, "    help                  used to print the usage guide")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
}
