package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nissyi-gh/momentum/internal/model"
	"github.com/nissyi-gh/momentum/internal/todo"
)

const notesPreviewLen = 24

// TaskItem is one row of the list: a task, or one of its subtasks when Sub
// is not negative.
type TaskItem struct {
	View todo.TaskView
	Sub  int
	// Prefix holds the tree-drawing characters, e.g. " └─ "
	Prefix string
	theme  Theme
}

// IsSubtask reports whether the row is a subtask.
func (i TaskItem) IsSubtask() bool {
	return i.Sub >= 0
}

func (i TaskItem) Title() string {
	if i.IsSubtask() {
		sub := i.View.Subtasks[i.Sub]
		text := sub.Description
		if sub.Completed {
			text = lipgloss.NewStyle().Foreground(i.theme.SubDone).Italic(true).Render(text)
		}
		return fmt.Sprintf("%s%s %s", i.Prefix, checkbox(sub.Completed), text)
	}

	t := i.View
	desc := t.Description
	switch {
	case t.Overdue:
		desc = lipgloss.NewStyle().Foreground(i.theme.Overdue).Render("⚠️ " + desc)
	case t.Completed:
		desc = lipgloss.NewStyle().Foreground(i.theme.Done).Bold(true).Render(desc)
	}

	parts := []string{
		checkbox(t.Completed),
		desc,
		i.theme.priority(t.Priority).Render("[" + t.Priority.Label() + "]"),
	}
	if t.Deadline != nil {
		due := fmt.Sprintf("(Due: %s)", *t.Deadline)
		if t.Overdue {
			parts = append(parts, lipgloss.NewStyle().Foreground(i.theme.Overdue).Render(due))
		} else {
			parts = append(parts, i.theme.status().Render(due))
		}
	}
	if preview := notesPreview(t.Notes); preview != "" {
		parts = append(parts, i.theme.status().Render("🗒 "+preview))
	}
	return i.Prefix + strings.Join(parts, " ")
}

func (i TaskItem) Description() string {
	return ""
}

func (i TaskItem) FilterValue() string {
	if i.IsSubtask() {
		return i.View.Subtasks[i.Sub].Description
	}
	return i.View.Description
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// notesPreview flattens notes to one line and cuts them to notesPreviewLen
// runes, appending "…" when cut.
func notesPreview(notes string) string {
	flat := strings.TrimSpace(strings.ReplaceAll(notes, "\n", " "))
	if flat == "" {
		return ""
	}
	r := []rune(flat)
	if len(r) > notesPreviewLen {
		return string(r[:notesPreviewLen]) + "…"
	}
	return flat
}

// taskID is the task a row belongs to.
func (i TaskItem) taskID() model.TaskID {
	return i.View.ID
}
