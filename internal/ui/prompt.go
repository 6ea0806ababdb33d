package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

var (
	// ErrNoInput is returned when input ends before a line was entered.
	ErrNoInput = errors.New("no input")
	// ErrCancelled is returned when the user aborts the prompt.
	ErrCancelled = errors.New("prompt cancelled")
)

// Prompter asks the user a single question and returns one line of input.
type Prompter interface {
	Prompt(ctx context.Context, question string) (string, error)
}

// NewPrompter returns an interactive text input when both in and out are
// terminals, and a plain line reader otherwise.
func NewPrompter(in io.Reader, out io.Writer, styles Styles) Prompter {
	if IsTTY(in) && IsTTY(out) {
		return &TextInputPrompter{In: in, Out: out, Styles: styles}
	}
	return &LinePrompter{In: in, Out: out, Styles: styles}
}

// IsTTY reports whether v is a terminal file.
func IsTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LinePrompter writes the question and reads one newline-terminated line.
type LinePrompter struct {
	In     io.Reader
	Out    io.Writer
	Styles Styles

	reader *bufio.Reader
}

// Prompt implements Prompter. The trailing line terminator is stripped.
// Cancelling ctx returns ctx.Err() without waiting for input.
func (p *LinePrompter) Prompt(ctx context.Context, question string) (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	if _, err := fmt.Fprintln(p.Out, p.Styles.Prompt(question)); err != nil {
		return "", err
	}

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := p.reader.ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		line := strings.TrimRight(res.line, "\r\n")
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				if res.line == "" {
					return "", ErrNoInput
				}
				return line, nil
			}
			return "", res.err
		}
		return line, nil
	}
}

// TextInputPrompter reads a line with a bubbles text input.
type TextInputPrompter struct {
	In     io.Reader
	Out    io.Writer
	Styles Styles
}

// Prompt implements Prompter. Enter submits, esc or ctrl+c cancels.
func (p *TextInputPrompter) Prompt(ctx context.Context, question string) (string, error) {
	model := newPromptModel(p.Styles.Prompt(question))
	program := tea.NewProgram(model,
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
		tea.WithContext(ctx),
	)
	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}

	m, ok := final.(promptModel)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.input.Value(), nil
}

type promptModel struct {
	question  string
	input     textinput.Model
	submitted bool
	cancelled bool
}

func newPromptModel(question string) promptModel {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 0
	ti.Width = 60
	ti.Focus()
	return promptModel{question: question, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	return m.question + "\n" + m.input.View() + "\n"
}
