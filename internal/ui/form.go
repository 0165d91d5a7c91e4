package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nissyi-gh/momentum/internal/model"
	"github.com/nissyi-gh/momentum/internal/todo"
)

type formField int

const (
	fieldDescription formField = iota
	fieldPriority
	fieldDeadline
	fieldNotes
)

// taskForm is the add and edit dialog.
type taskForm struct {
	editing  bool
	taskID   model.TaskID
	desc     textinput.Model
	priority model.Priority
	date     dateInput
	notes    textarea.Model
	focus    formField
}

func newTaskForm(today time.Time) taskForm {
	ti := textinput.New()
	ti.Placeholder = "Task description..."
	ti.CharLimit = 256

	ta := textarea.New()
	ta.Placeholder = "Notes..."
	ta.CharLimit = 4096
	ta.SetHeight(4)

	f := taskForm{
		desc:     ti,
		priority: model.PriorityMedium,
		date:     newDateInput(),
		notes:    ta,
	}
	f.date.SetDate(today)
	return f
}

func editTaskForm(t model.Task, today time.Time) taskForm {
	f := newTaskForm(today)
	f.editing = true
	f.taskID = t.ID
	f.desc.SetValue(t.Description)
	f.priority = t.Priority
	if t.Deadline != nil {
		f.date.SetValue(t.Deadline)
	}
	f.notes.SetValue(t.Notes)
	return f
}

func (f taskForm) fieldOrder() []formField {
	if f.editing {
		return []formField{fieldDescription, fieldPriority, fieldDeadline, fieldNotes}
	}
	return []formField{fieldDescription, fieldPriority, fieldDeadline}
}

func (f *taskForm) focusOn(field formField) tea.Cmd {
	f.focus = field
	f.desc.Blur()
	f.date.Blur()
	f.notes.Blur()
	switch field {
	case fieldDescription:
		return f.desc.Focus()
	case fieldDeadline:
		return f.date.Focus()
	case fieldNotes:
		return f.notes.Focus()
	}
	return nil
}

func (f *taskForm) move(delta int) tea.Cmd {
	order := f.fieldOrder()
	pos := 0
	for i, field := range order {
		if field == f.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(order)) % len(order)
	return f.focusOn(order[pos])
}

func (f taskForm) Update(msg tea.Msg) (taskForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab":
			cmd := f.move(1)
			return f, cmd
		case "shift+tab":
			cmd := f.move(-1)
			return f, cmd
		}
		if f.focus == fieldPriority {
			switch keyMsg.String() {
			case "right", " ", "l":
				f.priority = f.priority.Next()
			case "left", "h":
				f.priority = f.priority.Next().Next()
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	case fieldDeadline:
		f.date, cmd = f.date.Update(msg)
	case fieldNotes:
		f.notes, cmd = f.notes.Update(msg)
	}
	return f, cmd
}

// edit collects the form's values. Validation is left to the list commands.
func (f taskForm) edit(today time.Time) (todo.Edit, error) {
	deadline, err := f.date.Value(today)
	if err != nil {
		return todo.Edit{}, err
	}
	return todo.Edit{
		Description: f.desc.Value(),
		Deadline:    deadline,
		Priority:    f.priority,
		Notes:       strings.TrimSpace(f.notes.Value()),
	}, nil
}

func (f taskForm) View(th Theme) string {
	header := "New Task"
	if f.editing {
		header = "Edit Task"
	}

	label := func(field formField, text string) string {
		if f.focus == field {
			return th.confirm().Render("> " + text)
		}
		return th.status().Render("  " + text)
	}

	var priorities []string
	for _, p := range model.Priorities {
		name := p.String()
		if p == f.priority {
			name = th.priority(p).Render("[" + name + "]")
		} else {
			name = th.status().Render(" " + name + " ")
		}
		priorities = append(priorities, name)
	}

	lines := []string{
		th.title().Render(header),
		"",
		label(fieldDescription, "Description"),
		"  " + f.desc.View(),
		"",
		label(fieldPriority, "Priority"),
		"  " + strings.Join(priorities, " "),
		"",
		label(fieldDeadline, "Deadline"),
		"  " + f.date.View(),
	}
	if f.editing {
		lines = append(lines, "", label(fieldNotes, "Notes"), f.notes.View())
	}

	help := "tab: next field • ←/→: change • enter: save • esc: cancel • ctrl+u: clear date"
	if f.editing {
		help = "tab: next field • ←/→: change • ctrl+s: save • esc: cancel • ctrl+u: clear date"
	}
	lines = append(lines, "", th.status().Render(help))
	return strings.Join(lines, "\n")
}
