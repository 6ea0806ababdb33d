package todo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when an index does not address a task.
	ErrNotFound = errors.New("no todo found")
	// ErrAlreadyTracked is returned when tracking is started twice.
	ErrAlreadyTracked = errors.New("todo is already tracked")
	// ErrInvalidPosition is returned when a position argument is not a number.
	ErrInvalidPosition = errors.New("index must be a number")
)

// Task represents a single to-do item.
type Task struct {
	Title        string `json:"title"`
	StartDate    *int64 `json:"start_date"`
	CompleteDate *int64 `json:"complete_date"`
	Duration     *int64 `json:"duration"`
	Tracking     bool   `json:"tracking"`
	Complete     bool   `json:"complete"`
}

// List is the persisted document.
type List struct {
	Todos []Task `json:"todos"`
}

// Millis converts t to milliseconds since the Unix epoch.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// NewTask builds a fresh task. When track is set, tracking starts at now.
func NewTask(title string, track bool, now time.Time) Task {
	task := Task{
		Title:        title,
		StartDate:    nil,
		CompleteDate: nil,
		Duration:     nil,
		Tracking:     track,
		Complete:     false,
	}
	if track {
		start := Millis(now)
		task.StartDate = &start
	}
	return task
}

// Completed returns a copy of t marked complete at now. A tracked task also
// gets its duration computed from start_date.
func (t Task) Completed(now time.Time) Task {
	completedAt := Millis(now)

	var duration *int64
	if t.Tracking && t.StartDate != nil {
		elapsed := completedAt - *t.StartDate
		duration = &elapsed
	} else {
		duration = t.Duration
	}

	return Task{
		Title:        t.Title,
		StartDate:    t.StartDate,
		CompleteDate: &completedAt,
		Duration:     duration,
		Tracking:     t.Tracking,
		Complete:     true,
	}
}

// Tracked returns a copy of t with tracking started at now.
// It fails with ErrAlreadyTracked if t is already being tracked.
func (t Task) Tracked(now time.Time) (Task, error) {
	if t.Tracking {
		return t, ErrAlreadyTracked
	}
	start := Millis(now)
	return Task{
		Title:        t.Title,
		StartDate:    &start,
		CompleteDate: t.CompleteDate,
		Duration:     t.Duration,
		Tracking:     true,
		Complete:     t.Complete,
	}, nil
}

// Elapsed returns the tracked time in milliseconds and whether the task is
// tracked at all. Completed tasks report their stored duration; tasks still
// in progress report now minus start_date.
func (t Task) Elapsed(now time.Time) (int64, bool) {
	if !t.Tracking {
		return 0, false
	}
	if t.Duration != nil {
		return *t.Duration, true
	}
	if t.StartDate == nil {
		return 0, true
	}
	return Millis(now) - *t.StartDate, true
}

// ParsePosition converts a 1-based position argument into a 0-based index.
// Bounds are not checked here; the Store reports ErrNotFound for indices
// outside the list. Numbers too large for an int can never address a task,
// so they fail with ErrNotFound rather than ErrInvalidPosition.
func ParsePosition(arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	n, err := strconv.Atoi(arg)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w at index %s", ErrNotFound, arg)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPosition, arg)
	}
	return n - 1, nil
}
