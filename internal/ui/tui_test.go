package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todo-go/internal/todo"
)

func newTestTUI(t *testing.T, tasks ...todo.Task) (*tuiModel, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := todo.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	for _, task := range tasks {
		if err := store.Append(task); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
	cfg := newTUIConfig([]TUIOption{WithClock(func() time.Time { return renderNow })})
	return newTUIModel(path, plainView(false), cfg), path
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTUIModel_View(t *testing.T) {
	m, path := newTestTUI(t,
		todo.NewTask("Pending task", true, renderNow.Add(-2*time.Minute)),
		todo.NewTask("Finished task", false, renderNow).Completed(renderNow),
	)
	if m.Init() == nil {
		t.Fatal("Init() should schedule a tick")
	}

	view := m.View()
	for _, want := range []string{
		"Todo TUI",
		"Pending: 1  Tracking: 1  Done: 1",
		"1. Pending task [In progress]",
		"In progress: 2 minute(s)",
		"2. Finished task [Done]",
		"File: " + path,
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestTUIModel_Filters(t *testing.T) {
	m, _ := newTestTUI(t,
		todo.NewTask("Pending task", false, renderNow),
		todo.NewTask("Finished task", false, renderNow).Completed(renderNow),
	)
	m.Init()

	m.Update(keyMsg("2"))
	view := m.View()
	if strings.Contains(view, "Pending task") || !strings.Contains(view, "2. Finished task") {
		t.Errorf("done filter view:\n%s", view)
	}
	if !strings.Contains(view, "Filter: done") {
		t.Errorf("missing filter indicator:\n%s", view)
	}

	m.Update(keyMsg("1"))
	view = m.View()
	if !strings.Contains(view, "1. Pending task") || strings.Contains(view, "Finished task") {
		t.Errorf("pending filter view:\n%s", view)
	}

	m.Update(keyMsg("0"))
	view = m.View()
	if !strings.Contains(view, "Pending task") || !strings.Contains(view, "Finished task") {
		t.Errorf("cleared filter view:\n%s", view)
	}
}

func TestTUIModel_RefreshPicksUpChanges(t *testing.T) {
	m, path := newTestTUI(t)
	m.Init()
	if !strings.Contains(m.View(), "No to-dos available") {
		t.Fatalf("expected empty view:\n%s", m.View())
	}

	store, err := todo.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Append(todo.NewTask("Added elsewhere", false, renderNow)); err != nil {
		t.Fatal(err)
	}

	_, cmd := m.Update(tickMsg(renderNow))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if !strings.Contains(m.View(), "1. Added elsewhere") {
		t.Errorf("refresh did not pick up new task:\n%s", m.View())
	}
}

func TestTUIModel_LoadError(t *testing.T) {
	m, path := newTestTUI(t)
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.Init()
	if !strings.Contains(m.View(), "Error loading todo file") {
		t.Errorf("expected load error:\n%s", m.View())
	}
}

func TestTUIModel_HelpAndQuit(t *testing.T) {
	m, _ := newTestTUI(t)
	m.Init()

	m.Update(keyMsg("h"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Errorf("help not shown:\n%s", m.View())
	}
	m.Update(keyMsg("h"))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help should toggle off")
	}

	if _, cmd := m.Update(keyMsg("q")); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestTUIRefreshInterval(t *testing.T) {
	cfg := newTUIConfig([]TUIOption{WithRefreshInterval(5 * time.Second)})
	m := newTUIModel(filepath.Join(t.TempDir(), "db.json"), plainView(false), cfg)
	if !strings.Contains(m.View(), "Refreshing every 5s") {
		t.Errorf("footer missing interval:\n%s", m.View())
	}

	cfg = newTUIConfig([]TUIOption{WithRefreshInterval(0)})
	if cfg.interval != time.Second {
		t.Errorf("non-positive interval: got %s, want default 1s", cfg.interval)
	}
}
