package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nissyi-gh/momentum/internal/report"
	"github.com/nissyi-gh/momentum/internal/view"
)

const (
	// headerLines and footerLines are the rows kept free around the list.
	headerLines = 9
	footerLines = 2

	barWidth   = 30
	chartWidth = 20
)

// progressBar draws percent as a fixed-width bar.
func progressBar(percent int, th Theme) string {
	percent = max(0, min(100, percent))
	filled := percent * barWidth / 100
	return lipgloss.NewStyle().Foreground(th.Accent).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(th.Muted).Render(strings.Repeat("░", barWidth-filled))
}

// ratioChart draws completed and pending counts as two bars scaled to the
// larger of the two.
func ratioChart(st view.Stats, th Theme) string {
	largest := max(st.Completed, st.Pending())
	bar := func(n int, c lipgloss.Color) string {
		w := 0
		if largest > 0 {
			w = int(math.Round(float64(n) * chartWidth / float64(largest)))
		}
		if n > 0 && w == 0 {
			w = 1
		}
		return lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("▇", w))
	}
	return fmt.Sprintf("Completed %s %d  Pending %s %d",
		bar(st.Completed, th.Done), st.Completed,
		bar(st.Pending(), th.Accent), st.Pending())
}

func (m Model) renderHeader() string {
	th := m.theme
	user := m.username
	if user == "" {
		user = "User"
	}

	filterLine := "Filter: " + m.snap.Filter.String()
	if s := strings.TrimSpace(m.snap.Search); s != "" {
		filterLine += fmt.Sprintf(" • Search: %q", s)
	}
	if m.state == stateSearch {
		filterLine = "Filter: " + m.snap.Filter.String() + " • " + m.search.View()
	}

	lines := []string{
		th.title().Render(appTitle) + "  " + th.status().Render(fmt.Sprintf("👤 %s • Theme: %s", user, th.Name)),
		th.quote().Render("💡 " + m.quote),
		th.text().Bold(true).Render(m.snap.Badge.Message()),
		th.status().Render(filterLine),
		th.text().Render(report.ProgressLine(m.snap.Stats.Completed, m.snap.Stats.Total, m.snap.Stats.Percent)),
		progressBar(m.snap.Stats.Percent, th),
		ratioChart(m.snap.Stats, th),
		"",
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	th := m.theme
	var lines []string
	if u := m.snap.Undo; u != nil {
		secs := int(math.Ceil(u.Remaining.Seconds()))
		lines = append(lines, th.confirm().Render(fmt.Sprintf("Task deleted. (%ds) u: undo", secs)))
	}
	if m.err != nil {
		lines = append(lines, th.errorStyle().Render(errorText(m.err)))
	} else if m.status != "" {
		lines = append(lines, th.status().Render(m.status))
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n" + strings.Join(lines, "\n")
}

func (m Model) renderDetail() string {
	item, ok := m.selected()
	if !ok {
		if m.snap.Total == 0 {
			return m.theme.status().Render("No tasks yet. Press a to add one.")
		}
		return m.theme.status().Render("No tasks match the current filter.")
	}
	th := m.theme
	t := item.View

	notes := th.status().Render("(no notes)")
	if strings.TrimSpace(t.Notes) != "" {
		notes = t.Notes
	}

	var subs []string
	for i, s := range t.Subtasks {
		line := fmt.Sprintf("%s %s", checkbox(s.Completed), s.Description)
		if item.IsSubtask() && i == item.Sub {
			line = th.confirm().Render("> " + line)
		} else {
			line = "  " + line
		}
		subs = append(subs, line)
	}
	subsBlock := ""
	if len(subs) > 0 {
		subsBlock = fmt.Sprintf("\n\nsubtasks: %d/%d\n%s", t.CompletedSubtasks(), len(t.Subtasks), strings.Join(subs, "\n"))
	}

	dueLine := ""
	if t.Deadline != nil {
		label := "deadline:   " + *t.Deadline
		if t.Overdue {
			label = lipgloss.NewStyle().Foreground(th.Overdue).Render("⚠️ " + label + " (overdue)")
		} else if t.IsDueOn(m.snap.Today) {
			label = "📅 " + label
		}
		dueLine = "\n" + label
	}

	state := "pending"
	if t.Completed {
		state = "completed"
	}

	return fmt.Sprintf("%s %s\n%s\n\n%s\n\n%s%s\n\npriority:   %s\nstatus:     %s\ncreated_at: %s%s\n\n%s",
		checkbox(t.Completed),
		th.text().Bold(true).Render(t.Description),
		th.quote().Render("“"+t.Quote+"”"),
		th.box().Render(notes),
		th.status().Render(fmt.Sprintf("#%d of %d", t.Index+1, m.snap.Total)),
		subsBlock,
		th.priority(t.Priority).Render(t.Priority.Label()),
		state,
		t.CreatedAt.Format("2006-01-02 15:04"),
		dueLine,
		th.status().Render("e: edit  s: sub-task  d: delete"),
	)
}

func (m Model) View() string {
	footer := m.renderFooter()

	switch m.state {
	case stateAdd, stateEdit:
		return appStyle.Render(m.form.View(m.theme) + footer)
	case stateAddSub:
		parent := ""
		if tv, ok := m.snap.Find(m.subParentID); ok {
			parent = "  for: " + tv.Description + "\n\n"
		}
		return appStyle.Render(
			m.theme.title().Render("New Sub-task") + "\n\n" +
				parent +
				m.input.View() + "\n\n" +
				m.theme.status().Render("enter: save • esc: cancel") +
				footer,
		)
	case stateConfirm:
		desc := ""
		if tv, ok := m.snap.Find(m.confirmID); ok {
			desc = tv.Description
			if n := len(tv.Subtasks); n > 0 {
				desc = fmt.Sprintf("%s\n  (its %d sub-tasks go with it)", desc, n)
			}
		}
		return appStyle.Render(
			m.theme.confirm().Render("Delete Task?") + "\n\n" +
				"  " + desc + "\n\n" +
				m.theme.status().Render("y: delete • n/esc: cancel") +
				footer,
		)
	default:
		h, v := appStyle.GetFrameSize()
		contentWidth := m.width - h
		contentHeight := m.height - v - headerLines - footerLines
		leftWidth := contentWidth * 60 / 100
		rightWidth := contentWidth - leftWidth

		leftPane := m.list.View()
		if len(m.list.Items()) == 0 {
			leftPane = lipgloss.NewStyle().Width(leftWidth).Render(m.theme.status().Render("Nothing to show."))
		}
		rightPane := m.theme.detail().
			Width(max(rightWidth, 0)).
			Height(max(contentHeight, 0)).
			Render(m.renderDetail())
		content := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)
		return appStyle.Render(m.renderHeader() + "\n" + content + footer)
	}
}
