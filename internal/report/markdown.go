// Package report renders the current view as a Markdown checklist.
package report

import (
	"fmt"
	"strings"

	"github.com/nissyi-gh/momentum/internal/todo"
)

// Markdown renders snap for pasting elsewhere: a heading with the filter,
// the progress line, the badge, and one checklist item per task with its
// subtasks indented underneath.
func Markdown(snap todo.Snapshot, username string) string {
	var sb strings.Builder

	title := "To-do"
	if username != "" {
		title = fmt.Sprintf("%s's to-do", username)
	}
	sb.WriteString(fmt.Sprintf("# %s (%s)\n\n", title, snap.Filter))
	if strings.TrimSpace(snap.Search) != "" {
		sb.WriteString(fmt.Sprintf("Search: %q\n\n", strings.TrimSpace(snap.Search)))
	}

	sb.WriteString(ProgressLine(snap.Stats.Completed, snap.Stats.Total, snap.Stats.Percent))
	sb.WriteString("\n")
	if msg := snap.Badge.Message(); msg != "" {
		sb.WriteString(msg)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(snap.Tasks) == 0 {
		sb.WriteString("_No tasks._\n")
		return sb.String()
	}

	for _, tv := range snap.Tasks {
		sb.WriteString(fmt.Sprintf("- %s [%s] %s", checkbox(tv.Completed), tv.Priority.Label(), tv.Description))
		if tv.Deadline != nil {
			sb.WriteString(fmt.Sprintf(" (Due: %s)", *tv.Deadline))
		}
		if tv.Overdue {
			sb.WriteString(" **overdue**")
		}
		sb.WriteString("\n")
		if notes := strings.TrimSpace(tv.Notes); notes != "" {
			sb.WriteString(fmt.Sprintf("  > %s\n", strings.ReplaceAll(notes, "\n", " ")))
		}
		for _, sub := range tv.Subtasks {
			sb.WriteString(fmt.Sprintf("  - %s %s\n", checkbox(sub.Completed), sub.Description))
		}
	}
	return sb.String()
}

// ProgressLine is the summary shown above the progress bar.
func ProgressLine(completed, total, percent int) string {
	return fmt.Sprintf("Displayed: %d/%d completed (%d%%)", completed, total, percent)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}
