// Package view derives the filtered task list and its statistics.
// Everything here is a pure function of its inputs.
package view

import (
	"fmt"
	"strings"

	"github.com/nissyi-gh/momentum/internal/model"
)

// Status selects tasks by completion state.
type Status int

const (
	StatusAll Status = iota
	StatusPending
	StatusCompleted
)

// Statuses lists the filters in cycling order.
var Statuses = []Status{StatusAll, StatusPending, StatusCompleted}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Next cycles All → Pending → Completed → All.
func (s Status) Next() Status {
	return Statuses[(int(s)+1)%len(Statuses)]
}

// ParseStatus accepts "All", "Pending" or "Completed" in any case.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return StatusAll, nil
	case "pending":
		return StatusPending, nil
	case "completed":
		return StatusCompleted, nil
	}
	return StatusAll, fmt.Errorf("unknown status filter %q", s)
}

// Matches reports whether task passes the status filter.
func (s Status) Matches(task model.Task) bool {
	switch s {
	case StatusCompleted:
		return task.Completed
	case StatusPending:
		return !task.Completed
	default:
		return true
	}
}

// MatchesSearch reports whether search occurs, ignoring case, in the task's
// description, notes or any subtask description. A blank search matches
// everything. The quote is not searched.
func MatchesSearch(task model.Task, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(task.Description), needle) ||
		strings.Contains(strings.ToLower(task.Notes), needle) {
		return true
	}
	for _, sub := range task.Subtasks {
		if strings.Contains(strings.ToLower(sub.Description), needle) {
			return true
		}
	}
	return false
}

// Filter returns the tasks matching both status and search, in input order.
func Filter(tasks []model.Task, status Status, search string) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if status.Matches(t) && MatchesSearch(t, search) {
			out = append(out, t)
		}
	}
	return out
}
