package todo

import (
	"fmt"

	"github.com/nissyi-gh/momentum/internal/model"
	"github.com/nissyi-gh/momentum/internal/view"
)

// AddTask appends a new pending task with a freshly drawn quote.
func (l *List) AddTask(description string, priority model.Priority, deadline *string) (model.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	task, err := model.NewTask(description, l.quotes(), priority, deadline)
	if err != nil {
		l.logger.Warn("add task rejected", "err", err)
		return model.Task{}, fmt.Errorf("add task: %w", err)
	}
	task = l.store.Add(task)
	l.logger.Debug("task added", "id", task.ID, "priority", task.Priority, "deadline", deref(task.Deadline))
	return task, nil
}

// ToggleTask flips a task between pending and completed.
func (l *List) ToggleTask(id model.TaskID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.ToggleCompleted(id); err != nil {
		l.logger.Error("toggle task", "id", id, "err", err)
		return fmt.Errorf("toggle task: %w", err)
	}
	l.logger.Debug("task toggled", "id", id)
	return nil
}

// EditTask overwrites description, deadline, priority and notes. A blank
// description rejects the whole edit.
func (l *List) EditTask(id model.TaskID, e Edit) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	desc, err := model.CleanDescription(e.Description)
	if err != nil {
		l.logger.Warn("edit task rejected", "id", id, "err", err)
		return fmt.Errorf("edit task %d: %w", id, err)
	}
	deadline, err := model.NormalizeDeadline(e.Deadline)
	if err != nil {
		l.logger.Warn("edit task rejected", "id", id, "err", err)
		return fmt.Errorf("edit task %d: %w", id, err)
	}
	priority := e.Priority
	if priority == model.PriorityUnset {
		priority = model.PriorityMedium
	}

	err = l.store.Update(id, func(t *model.Task) {
		t.Description = desc
		t.Deadline = deadline
		t.Priority = priority
		t.Notes = e.Notes
	})
	if err != nil {
		l.logger.Error("edit task", "id", id, "err", err)
		return fmt.Errorf("edit task: %w", err)
	}
	l.logger.Debug("task edited", "id", id)
	return nil
}

// AddSubtask appends a pending subtask.
func (l *List) AddSubtask(id model.TaskID, description string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	desc, err := model.CleanDescription(description)
	if err != nil {
		l.logger.Warn("add subtask rejected", "id", id, "err", err)
		return fmt.Errorf("add subtask to %d: %w", id, err)
	}
	if err := l.store.AppendSubtask(id, model.Subtask{Description: desc}); err != nil {
		l.logger.Error("add subtask", "id", id, "err", err)
		return fmt.Errorf("add subtask: %w", err)
	}
	l.logger.Debug("subtask added", "id", id)
	return nil
}

// ToggleSubtask flips subtask sub of a task.
func (l *List) ToggleSubtask(id model.TaskID, sub int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.ToggleSubtask(id, sub); err != nil {
		l.logger.Error("toggle subtask", "id", id, "sub", sub, "err", err)
		return fmt.Errorf("toggle subtask: %w", err)
	}
	l.logger.Debug("subtask toggled", "id", id, "sub", sub)
	return nil
}

// DeleteSubtask removes subtask sub of a task.
func (l *List) DeleteSubtask(id model.TaskID, sub int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.DeleteSubtask(id, sub); err != nil {
		l.logger.Error("delete subtask", "id", id, "sub", sub, "err", err)
		return fmt.Errorf("delete subtask: %w", err)
	}
	l.logger.Debug("subtask deleted", "id", id, "sub", sub)
	return nil
}

// DeleteTask removes a task and arms the undo slot with it. Any task held
// from an earlier delete becomes unrecoverable.
func (l *List) DeleteTask(id model.TaskID) (model.Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	task, index, err := l.store.Remove(id)
	if err != nil {
		l.logger.Error("delete task", "id", id, "err", err)
		return model.Task{}, fmt.Errorf("delete task: %w", err)
	}
	if prev, ok := l.undo.Pending(); ok {
		l.logger.Debug("undo slot replaced", "dropped", prev.Task.ID)
	}
	gen := l.undo.Hold(task, index, l.expireUndo)
	l.logger.Debug("task deleted", "id", id, "index", index, "gen", gen)
	return task.Clone(), nil
}

// UndoDelete puts the last deleted task back where it was. It reports false
// when there is nothing to restore or the window has passed.
func (l *List) UndoDelete() (model.Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.undo.Restore()
	if !ok {
		l.logger.Debug("undo: nothing to restore")
		return model.Task{}, false
	}
	pos, err := l.store.InsertAt(e.Index, e.Task)
	if err != nil {
		l.logger.Error("undo delete", "id", e.Task.ID, "err", err)
		return model.Task{}, false
	}
	l.logger.Debug("task restored", "id", e.Task.ID, "index", e.Index, "position", pos)
	return e.Task.Clone(), true
}

// SetFilter changes the active status filter.
func (l *List) SetFilter(status view.Status) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.filter = status
	l.logger.Debug("filter set", "status", status)
}

// SetSearch changes the active search text.
func (l *List) SetSearch(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.search = text
	l.logger.Debug("search set", "text", text)
}

func (l *List) expireUndo(gen uint64) {
	l.mu.Lock()
	e, ok := l.undo.Expire(gen)
	l.mu.Unlock()
	if !ok {
		return
	}
	l.logger.Debug("undo expired", "id", e.Task.ID, "gen", gen)
	l.notify(Event{Kind: EventUndoExpired, Task: e.Task})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
