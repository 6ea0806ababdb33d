// Package ui renders tasks for the terminal and reads interactive input.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/utils"
)

// Status labels.
const (
	LabelDone       = "Done"
	LabelInProgress = "In progress"
	LabelNotTracked = "Not tracked"
)

// Styles holds the lipgloss styles used for command output. When plain is
// set every style renders its input unchanged.
type Styles struct {
	plain bool

	header     lipgloss.Style
	done       lipgloss.Style
	inProgress lipgloss.Style
	notTracked lipgloss.Style
	err        lipgloss.Style
	warn       lipgloss.Style
	prompt     lipgloss.Style
}

// NewStyles builds styles for output written to w. colorMode is one of
// auto, always or never; auto follows the terminal behind w.
func NewStyles(w io.Writer, colorMode string) Styles {
	r := lipgloss.NewRenderer(w)
	switch colorMode {
	case utils.ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case utils.ColorAlways:
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI)
		}
	}

	return Styles{
		plain:      r.ColorProfile() == termenv.Ascii,
		header:     r.NewStyle().Background(lipgloss.Color("5")).Foreground(lipgloss.Color("0")),
		done:       r.NewStyle().Foreground(lipgloss.Color("2")),
		inProgress: r.NewStyle().Foreground(lipgloss.Color("4")),
		notTracked: r.NewStyle().Reverse(true),
		err:        r.NewStyle().Foreground(lipgloss.Color("1")),
		warn:       r.NewStyle().Foreground(lipgloss.Color("3")),
		prompt:     r.NewStyle().Foreground(lipgloss.Color("4")),
	}
}

// PlainStyles returns styles that never emit escape sequences.
func PlainStyles() Styles {
	return Styles{plain: true}
}

func (s Styles) render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}

// Header renders a section header such as "All todos:".
func (s Styles) Header(text string) string { return s.render(s.header, text) }

// Error renders an error message.
func (s Styles) Error(text string) string { return s.render(s.err, text) }

// Warning renders a warning message.
func (s Styles) Warning(text string) string { return s.render(s.warn, text) }

// Prompt renders an interactive question.
func (s Styles) Prompt(text string) string { return s.render(s.prompt, text) }

// Status renders the completion label of a task.
func (s Styles) Status(complete bool) string {
	if complete {
		return s.render(s.done, LabelDone)
	}
	return s.render(s.inProgress, LabelInProgress)
}

// TaskView formats tasks for display.
type TaskView struct {
	Styles Styles
	Short  bool // single-letter duration units
}

// DurationLine describes the tracked time of t: "Completed in: <d>" for
// finished tracked tasks, "In progress: <d>" for running ones and
// "Not tracked" otherwise.
func (v TaskView) DurationLine(t todo.Task, now time.Time) string {
	elapsed, tracked := t.Elapsed(now)
	if !tracked {
		return v.Styles.render(v.Styles.notTracked, LabelNotTracked)
	}
	d := utils.FormatDuration(elapsed, v.Short)
	if t.Duration != nil {
		return "Completed in: " + v.Styles.render(v.Styles.done, d)
	}
	return "In progress: " + v.Styles.render(v.Styles.inProgress, d)
}

// Task renders one task at its 1-based position.
func (v TaskView) Task(pos int, t todo.Task, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s [%s]\n", pos, t.Title, v.Styles.Status(t.Complete))
	b.WriteString("   " + v.DurationLine(t, now) + "\n")
	return b.String()
}

// List renders every task under an "All todos:" header.
func (v TaskView) List(tasks []todo.Task, now time.Time) string {
	if len(tasks) == 0 {
		return "No to-dos available\n"
	}
	var b strings.Builder
	b.WriteString(v.Styles.Header("All todos:") + "\n\n")
	for i, t := range tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(v.Task(i+1, t, now))
	}
	return b.String()
}

// Selected renders a single task under a "Selected todo:" header.
func (v TaskView) Selected(pos int, t todo.Task, now time.Time) string {
	return v.Styles.Header("Selected todo:") + "\n\n" + v.Task(pos, t, now)
}
