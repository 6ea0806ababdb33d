package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/logging"
)

// PersistenceError reports a failure to read or write the task file.
type PersistenceError struct {
	Op   string // "read", "parse", "validate", "write"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s todo file %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store owns the task list for a single process. Every mutation rewrites
// the whole file before it becomes visible in memory.
type Store struct {
	path   string
	list   List
	logger *log.Logger
}

// Open loads the task file at path. A missing or empty file yields an empty
// list; anything else that does not parse is a *PersistenceError.
func Open(path string, opts ...StoreOption) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the task file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.list.Todos)
}

// All returns a copy of every task in order.
func (s *Store) All() []Task {
	out := make([]Task, len(s.list.Todos))
	copy(out, s.list.Todos)
	return out
}

// At returns the task at a 0-based index.
func (s *Store) At(index int) (Task, error) {
	if !s.inRange(index) {
		return Task{}, fmt.Errorf("%w at index %d", ErrNotFound, index+1)
	}
	return s.list.Todos[index], nil
}

// Append adds a task to the end of the list and persists.
func (s *Store) Append(task Task) error {
	next := s.snapshot()
	next.Todos = append(next.Todos, task)
	return s.commit(next)
}

// ReplaceAt overwrites the task at a 0-based index and persists.
func (s *Store) ReplaceAt(index int, task Task) error {
	if !s.inRange(index) {
		return fmt.Errorf("%w at index %d", ErrNotFound, index+1)
	}
	next := s.snapshot()
	next.Todos[index] = task
	return s.commit(next)
}

// RemoveAt deletes the task at a 0-based index, shifting later tasks down.
// An index outside the list leaves the tasks untouched; the file is
// rewritten either way.
func (s *Store) RemoveAt(index int) error {
	next := s.snapshot()
	if s.inRange(index) {
		next.Todos = append(next.Todos[:index], next.Todos[index+1:]...)
	} else {
		s.logger.Debug("remove skipped", "index", index+1, "len", len(next.Todos))
	}
	return s.commit(next)
}

// Clear removes every task and persists.
func (s *Store) Clear() error {
	return s.commit(List{Todos: []Task{}})
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.list.Todos)
}

func (s *Store) snapshot() List {
	todos := make([]Task, len(s.list.Todos))
	copy(todos, s.list.Todos)
	return List{Todos: todos}
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.list = List{Todos: []Task{}}
			s.logger.Debug("todo file not found, starting empty", "path", s.path)
			return nil
		}
		return &PersistenceError{Op: "read", Path: s.path, Err: err}
	}

	list, err := Decode(data)
	if err != nil {
		var perr *PersistenceError
		if errors.As(err, &perr) {
			perr.Path = s.path
			return perr
		}
		return &PersistenceError{Op: "parse", Path: s.path, Err: err}
	}

	s.list = *list
	s.logger.Debug("loaded todos", "path", s.path, "count", len(s.list.Todos))
	return nil
}

func (s *Store) commit(next List) error {
	data, err := Encode(&next)
	if err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	s.list = next
	s.logger.Debug("persisted todos", "path", s.path, "count", len(next.Todos))
	return nil
}

// Decode parses and validates a task document. Empty input and a JSON null
// both decode to an empty list.
func Decode(data []byte) (*List, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &List{Todos: []Task{}}, nil
	}

	if err := validateDocument(trimmed); err != nil {
		return nil, err
	}

	var list List
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, &PersistenceError{Op: "parse", Err: err}
	}
	if list.Todos == nil {
		list.Todos = []Task{}
	}
	return &list, nil
}

// Encode renders the list with 2-space indentation and a trailing newline.
func Encode(list *List) ([]byte, error) {
	out := *list
	if out.Todos == nil {
		out.Todos = []Task{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal todo file: %w", err)
	}
	return append(data, '\n'), nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
