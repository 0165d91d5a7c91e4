package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for deadlines.
const DateLayout = "2006-01-02"

var (
	// ErrEmptyDescription is returned when a task or subtask description is blank.
	ErrEmptyDescription = errors.New("description cannot be empty")
	// ErrInvalidDate is returned when a deadline is not a YYYY-MM-DD date.
	ErrInvalidDate = errors.New("invalid date")
)

// TaskID identifies a task for the lifetime of a session.
type TaskID int64

// Subtask is a checklist item nested in a Task.
type Subtask struct {
	Description string
	Completed   bool
}

// Task represents a single to-do item.
type Task struct {
	ID          TaskID
	Description string
	Quote       string
	Deadline    *string
	Completed   bool
	Notes       string
	Priority    Priority
	Subtasks    []Subtask
	CreatedAt   time.Time
}

// NewTask validates the fields of a new task. An unset priority becomes
// PriorityMedium.
func NewTask(description, quote string, priority Priority, deadline *string) (Task, error) {
	desc, err := CleanDescription(description)
	if err != nil {
		return Task{}, err
	}
	dl, err := NormalizeDeadline(deadline)
	if err != nil {
		return Task{}, err
	}
	if priority == PriorityUnset {
		priority = PriorityMedium
	}
	return Task{
		Description: desc,
		Quote:       quote,
		Deadline:    dl,
		Priority:    priority,
	}, nil
}

// Clone returns a deep copy so callers never alias the store's records.
func (t Task) Clone() Task {
	c := t
	if t.Deadline != nil {
		d := *t.Deadline
		c.Deadline = &d
	}
	if t.Subtasks != nil {
		c.Subtasks = make([]Subtask, len(t.Subtasks))
		copy(c.Subtasks, t.Subtasks)
	}
	return c
}

// CompletedSubtasks returns how many subtasks are checked off.
func (t Task) CompletedSubtasks() int {
	n := 0
	for _, s := range t.Subtasks {
		if s.Completed {
			n++
		}
	}
	return n
}

// IsDueOn returns true if the task's deadline falls on the given day.
func (t Task) IsDueOn(day time.Time) bool {
	if t.Deadline == nil {
		return false
	}
	return *t.Deadline == day.Format(DateLayout)
}

// Overdue reports whether task is still pending and its deadline is strictly
// before today's calendar date. A task due today is not overdue.
func Overdue(task Task, today time.Time) bool {
	if task.Completed || task.Deadline == nil {
		return false
	}
	return *task.Deadline < today.Format(DateLayout)
}

// CleanDescription trims s and rejects it if nothing is left.
func CleanDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyDescription
	}
	return s, nil
}

// NormalizeDeadline validates a deadline and rewrites it in DateLayout.
// nil and blank values mean "no deadline".
func NormalizeDeadline(deadline *string) (*string, error) {
	if deadline == nil || strings.TrimSpace(*deadline) == "" {
		return nil, nil
	}
	d, err := ParseDate(*deadline)
	if err != nil {
		return nil, err
	}
	s := d.Format(DateLayout)
	return &s, nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// DatePtr formats day as a deadline value.
func DatePtr(day time.Time) *string {
	s := day.Format(DateLayout)
	return &s
}
