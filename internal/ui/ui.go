package ui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nissyi-gh/momentum/internal/export"
	"github.com/nissyi-gh/momentum/internal/model"
	"github.com/nissyi-gh/momentum/internal/report"
	"github.com/nissyi-gh/momentum/internal/todo"
)

type appState int

const (
	stateList appState = iota
	stateAdd
	stateAddSub
	stateEdit
	stateConfirm
	stateSearch
)

const appTitle = "Motivational To-Do List"

var appStyle = lipgloss.NewStyle().Padding(1, 2)

type extraKeyMap struct {
	Add      key.Binding
	SubAdd   key.Binding
	Toggle   key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Undo     key.Binding
	Filter   key.Binding
	Search   key.Binding
	Theme    key.Binding
	Contrast key.Binding
	Export   key.Binding
	Copy     key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		SubAdd: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sub-task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "toggle"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Contrast: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "high contrast"),
		),
		Export: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy report"),
		),
	}
}

func (k extraKeyMap) bindings() []key.Binding {
	return []key.Binding{
		k.Add, k.SubAdd, k.Toggle, k.Edit, k.Delete, k.Undo,
		k.Filter, k.Search, k.Theme, k.Contrast, k.Export, k.Copy,
	}
}

// Options configures the TUI.
type Options struct {
	Theme    string
	Username string
	// ExportPath is the SQLite file E writes to. Empty disables export.
	ExportPath string
	// Quote is shown under the title for the whole session.
	Quote string
	// Clipboard receives the report on y. Defaults to the system clipboard.
	Clipboard func(string) error
	Logger    *log.Logger
}

// Model is the top-level BubbleTea model for the to-do TUI.
type Model struct {
	state       appState
	todo        *todo.List
	list        list.Model
	form        taskForm
	input       textinput.Model
	search      textinput.Model
	theme       Theme
	keys        extraKeyMap
	snap        todo.Snapshot
	subParentID model.TaskID
	confirmID   model.TaskID
	ticking     bool
	username    string
	quote       string
	exportPath  string
	clipboard   func(string) error
	logger      *log.Logger
	status      string
	err         error
	width       int
	height      int
}

type snapshotMsg todo.Snapshot
type undoTickMsg struct{}
type undoExpiredMsg struct{ task model.Task }
type exportedMsg struct{ snapshot export.Snapshot }
type copiedMsg struct{}
type errMsg struct{ error }

// NewModel creates a new TUI model driving l.
func NewModel(l *todo.List, opts Options) Model {
	keys := newExtraKeyMap()
	theme := ThemeByName(opts.Theme)

	lm := list.New(nil, theme.delegate(), 0, 0)
	lm.Title = appTitle
	lm.Styles.Title = theme.title()
	lm.SetShowHelp(true)
	lm.SetShowTitle(false)
	lm.SetFilteringEnabled(false)
	lm.SetStatusBarItemName("row", "rows")
	// esc cancels dialogs, so it must not quit from the list
	lm.KeyMap.Quit = key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	)
	lm.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Delete, keys.Undo, keys.Search}
	}
	lm.AdditionalFullHelpKeys = keys.bindings

	ti := textinput.New()
	ti.Placeholder = "Sub-task description..."
	ti.CharLimit = 256

	si := textinput.New()
	si.Placeholder = "Search..."
	si.Prompt = "🔍 "
	si.CharLimit = 128

	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		state:      stateList,
		todo:       l,
		list:       lm,
		input:      ti,
		search:     si,
		theme:      theme,
		keys:       keys,
		username:   opts.Username,
		quote:      opts.Quote,
		exportPath: opts.ExportPath,
		clipboard:  clip,
		logger:     logger,
	}
}

// Notify forwards list events into the running program.
func Notify(p *tea.Program) func(todo.Event) {
	return func(ev todo.Event) {
		if ev.Kind == todo.EventUndoExpired {
			p.Send(undoExpiredMsg{task: ev.Task})
		}
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadTasks
}

func (m Model) loadTasks() tea.Msg {
	return snapshotMsg(m.todo.Snapshot())
}

func undoTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return undoTickMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case snapshotMsg:
		m.applySnapshot(todo.Snapshot(msg))
		if m.snap.Undo != nil && !m.ticking {
			m.ticking = true
			return m, undoTick()
		}
		return m, nil

	case undoTickMsg:
		m.ticking = false
		return m, m.loadTasks

	case undoExpiredMsg:
		m.status = fmt.Sprintf("%q can no longer be restored.", msg.task.Description)
		return m, m.loadTasks

	case exportedMsg:
		m.status = fmt.Sprintf("Exported %d tasks to %s.", msg.snapshot.Tasks, m.exportPath)
		m.err = nil
		return m, nil

	case copiedMsg:
		m.status = "Report copied to clipboard."
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.error
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.todo.Close()
			return m, tea.Quit
		}
	}

	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateAdd, stateEdit:
		return m.updateForm(msg)
	case stateAddSub:
		return m.updateAddSub(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case stateSearch:
		return m.updateSearch(msg)
	}

	return m, nil
}

func (m *Model) resize() {
	h, v := appStyle.GetFrameSize()
	contentWidth := m.width - h
	leftWidth := contentWidth * 60 / 100
	m.list.SetSize(leftWidth, max(m.height-v-headerLines-footerLines, 0))
	if m.state == stateAdd || m.state == stateEdit {
		m.form.notes.SetWidth(max(contentWidth-4, 10))
	}
}

func (m *Model) applySnapshot(snap todo.Snapshot) {
	m.snap = snap
	treeItems := BuildTree(snap.Tasks, m.theme)
	items := make([]list.Item, len(treeItems))
	for i, ti := range treeItems {
		items[i] = ti
	}
	m.list.SetItems(items)
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.list.SetDelegate(t.delegate())
	m.list.Styles.Title = t.title()
	m.applySnapshot(m.snap)
	m.logger.Debug("theme changed", "theme", t.Name)
}

func (m Model) selected() (TaskItem, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	return item, ok
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	m.status = ""
	switch keyMsg.String() {
	case "a", "n":
		m.state = stateAdd
		m.err = nil
		m.form = newTaskForm(m.snap.Today)
		m.resize()
		cmd := m.form.focusOn(fieldDescription)
		return m, cmd
	case "s":
		if item, ok := m.selected(); ok {
			m.state = stateAddSub
			m.err = nil
			m.subParentID = item.taskID()
			m.input.Reset()
			cmd := m.input.Focus()
			return m, cmd
		}
	case "enter", "x":
		if item, ok := m.selected(); ok {
			var err error
			if item.IsSubtask() {
				err = m.todo.ToggleSubtask(item.taskID(), item.Sub)
			} else {
				err = m.todo.ToggleTask(item.taskID())
			}
			m.err = err
			return m, m.loadTasks
		}
	case "e":
		if item, ok := m.selected(); ok {
			m.state = stateEdit
			m.err = nil
			m.form = editTaskForm(item.View.Task, m.snap.Today)
			m.resize()
			cmd := m.form.focusOn(fieldDescription)
			return m, cmd
		}
	case "d":
		if item, ok := m.selected(); ok {
			if item.IsSubtask() {
				m.err = m.todo.DeleteSubtask(item.taskID(), item.Sub)
				return m, m.loadTasks
			}
			m.state = stateConfirm
			m.confirmID = item.taskID()
			return m, nil
		}
	case "u":
		if task, ok := m.todo.UndoDelete(); ok {
			m.status = fmt.Sprintf("Restored %q.", task.Description)
		} else {
			m.status = "Nothing to undo."
		}
		return m, m.loadTasks
	case "f":
		m.todo.SetFilter(m.snap.Filter.Next())
		return m, m.loadTasks
	case "/":
		m.state = stateSearch
		m.search.SetValue(m.snap.Search)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	case "t":
		m.setTheme(m.theme.Next())
		return m, nil
	case "h":
		m.setTheme(m.theme.ToggleContrast())
		return m, nil
	case "E":
		return m, m.exportSnapshot()
	case "y":
		return m, m.copyReport()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = stateList
			m.err = nil
			return m, nil
		case "ctrl+s":
			return m.saveForm()
		case "enter":
			if m.form.focus != fieldNotes {
				return m.saveForm()
			}
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	e, err := m.form.edit(m.snap.Today)
	if err != nil {
		m.err = err
		return m, nil
	}
	if m.form.editing {
		err = m.todo.EditTask(m.form.taskID, e)
	} else {
		_, err = m.todo.AddTask(e.Description, e.Priority, e.Deadline)
	}
	if err != nil {
		m.err = err
		return m, nil
	}
	m.state = stateList
	m.err = nil
	return m, m.loadTasks
}

func (m Model) updateAddSub(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if err := m.todo.AddSubtask(m.subParentID, m.input.Value()); err != nil {
				m.err = err
				return m, nil
			}
			m.state = stateList
			m.err = nil
			return m, m.loadTasks
		case "esc":
			m.state = stateList
			m.err = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			task, err := m.todo.DeleteTask(m.confirmID)
			m.err = err
			if err == nil {
				m.status = fmt.Sprintf("Deleted %q.", task.Description)
			}
			m.state = stateList
			return m, m.loadTasks
		case "n", "esc":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			m.state = stateList
			m.search.Blur()
			return m, nil
		case "esc":
			m.state = stateList
			m.search.Blur()
			m.search.Reset()
			m.todo.SetSearch("")
			return m, m.loadTasks
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.snap.Search {
		m.todo.SetSearch(m.search.Value())
		return m, tea.Batch(cmd, m.loadTasks)
	}
	return m, cmd
}

func (m Model) exportSnapshot() tea.Cmd {
	path := m.exportPath
	l := m.todo
	return func() tea.Msg {
		if path == "" {
			return errMsg{errors.New("no export path set (use -export)")}
		}
		w, err := export.Open(path)
		if err != nil {
			return errMsg{err}
		}
		defer w.Close()
		snap, err := w.Write(l.All(), time.Now())
		if err != nil {
			return errMsg{err}
		}
		return exportedMsg{snapshot: snap}
	}
}

func (m Model) copyReport() tea.Cmd {
	text := report.Markdown(m.snap, m.username)
	clip := m.clipboard
	return func() tea.Msg {
		if err := clip(text); err != nil {
			return errMsg{fmt.Errorf("copy report: %w", err)}
		}
		return copiedMsg{}
	}
}

// errorText turns command errors into the messages shown to the user.
func errorText(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyDescription):
		return "Please enter a task description."
	case errors.Is(err, model.ErrInvalidDate):
		return "Please enter a valid date (YYYY-MM-DD)."
	}
	return "Error: " + err.Error()
}
