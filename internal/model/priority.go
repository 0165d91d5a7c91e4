package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPriority is returned when a priority name is not recognised.
var ErrInvalidPriority = errors.New("invalid priority")

// Priority levels for a task.
type Priority int

const (
	PriorityUnset Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
)

// Priorities lists the selectable levels in the order the forms offer them.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return "Unset"
	}
}

// Label is the bracketed tag shown next to a task, e.g. "HIGH".
func (p Priority) Label() string {
	return strings.ToUpper(p.String())
}

// Next cycles High → Medium → Low → High.
func (p Priority) Next() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

// ParsePriority accepts "High", "Medium" or "Low" in any case.
// An empty string yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	}
	return PriorityUnset, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}
