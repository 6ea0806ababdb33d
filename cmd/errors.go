package cmd

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/nibzard/todo-go/internal/todo"
)

// Exit codes returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitNotFound    = 3
	ExitState       = 4
	ExitInterrupted = 130
)

// ErrChecksFailed is returned by doctor when any check fails.
var ErrChecksFailed = errors.New("doctor found problems")

// UsageError reports a missing or malformed argument. Msg is shown to the
// user as is.
type UsageError struct {
	Msg       string
	Err       error
	ShowUsage bool // print the usage text after the message
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *UsageError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Run to a process exit code.
func ExitCode(err error) int {
	var usageErr *UsageError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usageErr), errors.Is(err, todo.ErrInvalidPosition):
		return ExitUsage
	case errors.Is(err, todo.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, todo.ErrAlreadyTracked):
		return ExitState
	default:
		return ExitFailure
	}
}

// Message returns the user-facing text for err.
func Message(err error) string {
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return usageErr.Msg
	}
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
