package ui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/todo"
)

// Filter narrows the tasks shown by the TUI.
type Filter string

const (
	FilterNone    Filter = ""
	FilterPending Filter = "pending"
	FilterDone    Filter = "done"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	interval time.Duration
	logger   *log.Logger
	now      func() time.Time
}

// WithRefreshInterval sets how often the task file is re-read.
func WithRefreshInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTUILogger sets the logger handed to the store on every refresh.
func WithTUILogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used for in-progress durations.
func WithClock(now func() time.Time) TUIOption {
	return func(c *tuiConfig) {
		if now != nil {
			c.now = now
		}
	}
}

func newTUIConfig(opts []TUIOption) *tuiConfig {
	c := &tuiConfig{
		interval: time.Second,
		logger:   logging.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunTUI shows a live view of the task file at path until the user quits
// or ctx is cancelled.
func RunTUI(ctx context.Context, path string, view TaskView, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newTUIModel(path, view, newTUIConfig(opts))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

type tuiModel struct {
	path     string
	view     TaskView
	cfg      *tuiConfig
	tasks    []todo.Task
	loadErr  error
	loaded   bool
	now      time.Time
	filter   Filter
	showHelp bool
}

type tickMsg time.Time

func newTUIModel(path string, view TaskView, cfg *tuiConfig) *tuiModel {
	return &tuiModel{
		path: path,
		view: view,
		cfg:  cfg,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.cfg.interval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "1":
			m.filter = FilterPending
			return m, nil
		case "2":
			m.filter = FilterDone
			return m, nil
		case "0":
			m.filter = FilterNone
			return m, nil
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.cfg.interval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.cfg.interval)
		return b.String()
	}

	if m.filter != FilterNone {
		b.WriteString(fmt.Sprintf("Filter: %s (0 to clear)\n\n", m.filter))
	}

	if m.loadErr != nil {
		b.WriteString("Error loading todo file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		writeFooter(&b, m.cfg.interval)
		return b.String()
	}
	if !m.loaded {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.cfg.interval)
		return b.String()
	}

	writeOverview(&b, m.tasks)
	m.writeTasks(&b)
	b.WriteString(fmt.Sprintf("File: %s\n\n", m.path))
	writeFooter(&b, m.cfg.interval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh re-reads the task file so edits from other invocations show up.
func (m *tuiModel) refresh() {
	m.now = m.cfg.now()
	store, err := todo.Open(m.path, todo.WithLogger(m.cfg.logger))
	if err != nil {
		m.loadErr = err
		return
	}
	m.loadErr = nil
	m.loaded = true
	m.tasks = store.All()
}

func (m *tuiModel) matches(t todo.Task) bool {
	switch m.filter {
	case FilterPending:
		return !t.Complete
	case FilterDone:
		return t.Complete
	default:
		return true
	}
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	shown := 0
	for i, t := range m.tasks {
		if !m.matches(t) {
			continue
		}
		// Positions stay those of the full list so they can be passed to
		// done/track/del.
		b.WriteString(m.view.Task(i+1, t, m.now))
		b.WriteString("\n")
		shown++
	}
	if shown == 0 {
		b.WriteString("  No to-dos available\n\n")
	}
}

func writeTitle(b *strings.Builder) {
	title := "Todo TUI"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeOverview(b *strings.Builder, tasks []todo.Task) {
	var pending, done, tracking int
	for _, t := range tasks {
		if t.Complete {
			done++
		} else {
			pending++
			if t.Tracking {
				tracking++
			}
		}
	}
	b.WriteString(fmt.Sprintf("  Pending: %d  Tracking: %d  Done: %d\n\n", pending, tracking, done))
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh now\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Show pending\n")
	b.WriteString("  2            Show done\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	b.WriteString(fmt.Sprintf("Press h for help | q to quit | Refreshing every %s\n", interval))
}
