package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nissyi-gh/momentum/internal/config"
	"github.com/nissyi-gh/momentum/internal/model"
	"github.com/nissyi-gh/momentum/internal/todo"
	"github.com/nissyi-gh/momentum/internal/undo"
	"github.com/nissyi-gh/momentum/internal/view"
)

var testNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

func newTestList(t *testing.T) *todo.List {
	t.Helper()
	l := todo.New(
		todo.WithClock(func() time.Time { return testNow }),
		todo.WithQuotes(func() string { return "Progress, not perfection." }),
		todo.WithUndoOptions(undo.WithAfterFunc(func(time.Duration, func()) undo.Timer {
			return idleTimer{}
		})),
	)
	t.Cleanup(l.Close)
	return l
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// press sends a key that is expected to issue a command which does not block,
// runs it, and feeds its result back.
func press(m Model, s string) Model {
	m, cmd := step(m, keyPress(s))
	return settle(m, cmd)
}

func settle(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	m, _ = step(m, cmd())
	return m
}

func newTestModel(t *testing.T, l *todo.List, opts Options) Model {
	t.Helper()
	if opts.Clipboard == nil {
		opts.Clipboard = func(string) error { return nil }
	}
	m := NewModel(l, opts)
	m, _ = step(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return settle(m, m.Init())
}

// typeInto puts text into the focused input without running the cursor blink
// command focusing returns.
func typeInto(m Model, text string) Model {
	m, _ = step(m, keyPress(text))
	return m
}

func TestAddTaskThroughForm(t *testing.T) {
	l := newTestList(t)
	m := newTestModel(t, l, Options{})

	m, _ = step(m, keyPress("a"))
	if m.state != stateAdd {
		t.Fatalf("state = %v, want stateAdd", m.state)
	}
	m = typeInto(m, "Buy milk")
	m, _ = step(m, keyPress("tab"))
	m, _ = step(m, keyPress("right"))
	m = press(m, "enter")

	if m.state != stateList {
		t.Fatalf("state = %v, want stateList (err %v)", m.state, m.err)
	}
	tasks := l.All()
	if len(tasks) != 1 {
		t.Fatalf("len = %d, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Description != "Buy milk" {
		t.Errorf("Description = %q", got.Description)
	}
	if got.Priority != model.PriorityLow {
		t.Errorf("Priority = %v, want Low", got.Priority)
	}
	if got.Deadline == nil || *got.Deadline != "2026-10-17" {
		t.Errorf("Deadline = %v, want today", got.Deadline)
	}
	if len(m.list.Items()) != 1 {
		t.Errorf("rows = %d, want 1", len(m.list.Items()))
	}
}

func TestAddTaskRejectsBlank(t *testing.T) {
	l := newTestList(t)
	m := newTestModel(t, l, Options{})

	m, _ = step(m, keyPress("a"))
	m, _ = step(m, keyPress("enter"))

	if m.state != stateAdd {
		t.Errorf("state = %v, want the form to stay open", m.state)
	}
	if !errors.Is(m.err, model.ErrEmptyDescription) {
		t.Fatalf("err = %v, want ErrEmptyDescription", m.err)
	}
	if got := errorText(m.err); got != "Please enter a task description." {
		t.Errorf("errorText = %q", got)
	}
	if len(l.All()) != 0 {
		t.Error("blank task was added")
	}
}

func TestDeleteConfirmAndUndo(t *testing.T) {
	l := newTestList(t)
	for _, d := range []string{"one", "two", "three"} {
		if _, err := l.AddTask(d, model.PriorityMedium, nil); err != nil {
			t.Fatal(err)
		}
	}
	m := newTestModel(t, l, Options{})

	m, _ = step(m, keyPress("down"))
	m, _ = step(m, keyPress("d"))
	if m.state != stateConfirm {
		t.Fatalf("state = %v, want stateConfirm", m.state)
	}
	m = press(m, "n")
	if len(l.All()) != 3 {
		t.Fatal("n must not delete")
	}

	m, _ = step(m, keyPress("d"))
	m = press(m, "y")
	if got := len(l.All()); got != 2 {
		t.Fatalf("len after delete = %d, want 2", got)
	}
	if m.snap.Undo == nil || m.snap.Undo.Task.Description != "two" {
		t.Fatalf("undo state = %+v, want two", m.snap.Undo)
	}
	if !strings.Contains(m.View(), "Task deleted.") {
		t.Error("undo banner missing")
	}

	m = press(m, "u")
	tasks := l.All()
	if len(tasks) != 3 || tasks[1].Description != "two" {
		t.Fatalf("after undo = %v", tasks)
	}
	if m.snap.Undo != nil {
		t.Error("undo banner should be gone")
	}

	m = press(m, "u")
	if m.status != "Nothing to undo." {
		t.Errorf("status = %q", m.status)
	}
}

func TestUndoExpiredMessage(t *testing.T) {
	l := newTestList(t)
	m := newTestModel(t, l, Options{})

	m, cmd := step(m, undoExpiredMsg{task: model.Task{Description: "gone"}})
	if !strings.Contains(m.status, `"gone"`) {
		t.Errorf("status = %q", m.status)
	}
	if cmd == nil {
		t.Error("expected a reload")
	}
}

func TestSubtaskRows(t *testing.T) {
	l := newTestList(t)
	task, err := l.AddTask("Groceries", model.PriorityHigh, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, l, Options{})

	m, _ = step(m, keyPress("s"))
	if m.state != stateAddSub {
		t.Fatalf("state = %v, want stateAddSub", m.state)
	}
	m = typeInto(m, "find wallet")
	m = press(m, "enter")

	if len(m.list.Items()) != 2 {
		t.Fatalf("rows = %d, want task and subtask", len(m.list.Items()))
	}

	m, _ = step(m, keyPress("down"))
	m = press(m, "x")
	got, err := l.Get(task.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Subtasks[0].Completed {
		t.Error("subtask not toggled")
	}
	if got.Completed {
		t.Error("toggling a subtask must not complete the task")
	}

	m = press(m, "d")
	got, _ = l.Get(task.ID)
	if len(got.Subtasks) != 0 {
		t.Errorf("subtasks = %v, want none", got.Subtasks)
	}
	if m.state != stateList {
		t.Errorf("deleting a subtask should not ask for confirmation")
	}
}

func TestEditForm(t *testing.T) {
	l := newTestList(t)
	task, err := l.AddTask("Draft", model.PriorityMedium, model.DatePtr(testNow))
	if err != nil {
		t.Fatal(err)
	}
	m := newTestModel(t, l, Options{})

	m, _ = step(m, keyPress("e"))
	if m.state != stateEdit || m.form.taskID != task.ID {
		t.Fatalf("state = %v, form for %d", m.state, m.form.taskID)
	}
	m = typeInto(m, " v2")
	m, _ = step(m, keyPress("tab"))
	m, _ = step(m, keyPress("tab"))
	m, _ = step(m, keyPress("ctrl+u"))
	m, _ = step(m, keyPress("tab"))
	m = typeInto(m, "call Bob")
	m, cmd := step(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = settle(m, cmd)

	got, _ := l.Get(task.ID)
	if got.Description != "Draft v2" {
		t.Errorf("Description = %q", got.Description)
	}
	if got.Deadline != nil {
		t.Errorf("Deadline = %v, want cleared", *got.Deadline)
	}
	if got.Notes != "call Bob" {
		t.Errorf("Notes = %q", got.Notes)
	}
	if m.state != stateList {
		t.Errorf("state = %v", m.state)
	}
}

func TestFilterAndSearch(t *testing.T) {
	l := newTestList(t)
	done, _ := l.AddTask("Pay rent", model.PriorityHigh, nil)
	_, _ = l.AddTask("Buy milk", model.PriorityLow, nil)
	_ = l.ToggleTask(done.ID)
	m := newTestModel(t, l, Options{})

	m = press(m, "f")
	if m.snap.Filter != view.StatusPending || len(m.snap.Tasks) != 1 {
		t.Fatalf("filter = %v, tasks = %d", m.snap.Filter, len(m.snap.Tasks))
	}
	m = press(m, "f")
	m = press(m, "f")
	if m.snap.Filter != view.StatusAll {
		t.Fatalf("filter = %v, want All", m.snap.Filter)
	}

	m, _ = step(m, keyPress("/"))
	m, _ = step(m, keyPress("MILK"))
	m = settle(m, m.loadTasks)
	if m.snap.Search != "MILK" || len(m.snap.Tasks) != 1 || m.snap.Tasks[0].Description != "Buy milk" {
		t.Fatalf("search = %q, tasks = %v", m.snap.Search, m.snap.Tasks)
	}

	m = press(m, "esc")
	if m.state != stateList || m.snap.Search != "" || len(m.snap.Tasks) != 2 {
		t.Errorf("esc should clear the search: state %v, search %q", m.state, m.snap.Search)
	}
}

func TestThemeKeys(t *testing.T) {
	l := newTestList(t)
	m := newTestModel(t, l, Options{Theme: "dark"})

	m, _ = step(m, keyPress("t"))
	if m.theme.Name != config.ThemeHighContrast {
		t.Errorf("after t = %q", m.theme.Name)
	}
	m, _ = step(m, keyPress("h"))
	if m.theme.Name != config.ThemeLight {
		t.Errorf("after h = %q", m.theme.Name)
	}
	m, _ = step(m, keyPress("h"))
	if m.theme.Name != config.ThemeHighContrast {
		t.Errorf("after second h = %q", m.theme.Name)
	}
}

func TestCopyReport(t *testing.T) {
	l := newTestList(t)
	_, _ = l.AddTask("Buy milk", model.PriorityHigh, nil)

	var copied string
	m := newTestModel(t, l, Options{
		Username:  "Ana",
		Clipboard: func(s string) error { copied = s; return nil },
	})
	m = press(m, "y")

	if !strings.Contains(copied, "# Ana's to-do (All)") || !strings.Contains(copied, "[HIGH] Buy milk") {
		t.Errorf("report = %q", copied)
	}
	if m.status != "Report copied to clipboard." {
		t.Errorf("status = %q", m.status)
	}

	m = newTestModel(t, l, Options{Clipboard: func(string) error { return fmt.Errorf("no xclip") }})
	m = press(m, "y")
	if m.err == nil || !strings.Contains(m.err.Error(), "no xclip") {
		t.Errorf("err = %v", m.err)
	}
}

func TestExport(t *testing.T) {
	l := newTestList(t)
	_, _ = l.AddTask("Buy milk", model.PriorityHigh, nil)

	m := newTestModel(t, l, Options{})
	m = press(m, "E")
	if m.err == nil {
		t.Error("export without a path should fail")
	}

	path := filepath.Join(t.TempDir(), "snap.db")
	m = newTestModel(t, l, Options{ExportPath: path})
	m = press(m, "E")
	if m.err != nil {
		t.Fatalf("export: %v", m.err)
	}
	if !strings.Contains(m.status, "Exported 1 tasks") {
		t.Errorf("status = %q", m.status)
	}
}

func TestViewHeader(t *testing.T) {
	l := newTestList(t)
	done, _ := l.AddTask("one", model.PriorityMedium, nil)
	_, _ = l.AddTask("two", model.PriorityMedium, nil)
	_, _ = l.AddTask("three", model.PriorityMedium, nil)
	_ = l.ToggleTask(done.ID)

	m := newTestModel(t, l, Options{Username: "Ana", Quote: "Progress, not perfection."})
	out := m.View()
	for _, want := range []string{
		appTitle,
		"Ana",
		"💡 Progress, not perfection.",
		"Displayed: 1/3 completed (33%)",
		"👍 First steps! Keep going!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func quits(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestQuitKeys(t *testing.T) {
	l := newTestList(t)
	_, _ = l.AddTask("Buy milk", model.PriorityMedium, nil)
	m := newTestModel(t, l, Options{})

	m, cmd := step(m, keyPress("esc"))
	if quits(cmd) {
		t.Fatal("esc in the list must not quit")
	}
	if m.state != stateList {
		t.Errorf("state = %v", m.state)
	}

	if _, cmd := step(m, keyPress("q")); !quits(cmd) {
		t.Error("q should quit")
	}
	if _, cmd := step(m, tea.KeyMsg{Type: tea.KeyCtrlC}); !quits(cmd) {
		t.Error("ctrl+c should quit")
	}
}
