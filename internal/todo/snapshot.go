package todo

import (
	"time"

	"github.com/nissyi-gh/momentum/internal/model"
	"github.com/nissyi-gh/momentum/internal/view"
)

// TaskView is a task as currently displayed.
type TaskView struct {
	model.Task
	// Index is the task's position in the full list, not the filtered one.
	Index   int
	Overdue bool
}

// UndoState describes a deleted task that can still be restored.
type UndoState struct {
	Task      model.Task
	Index     int
	Remaining time.Duration
}

// Snapshot is everything the UI needs to render one frame.
type Snapshot struct {
	Tasks  []TaskView
	Stats  view.Stats
	Badge  view.Badge
	Filter view.Status
	Search string
	Undo   *UndoState
	// Total counts every task regardless of filter.
	Total int
	Today time.Time
}

// Snapshot recomputes the filtered view and its statistics.
func (l *List) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	all := l.store.List()
	positions := make(map[model.TaskID]int, len(all))
	for i, t := range all {
		positions[t.ID] = i
	}

	today := l.now()
	filtered := view.Filter(all, l.filter, l.search)
	stats := view.CompletionStats(filtered)

	snap := Snapshot{
		Tasks:  make([]TaskView, len(filtered)),
		Stats:  stats,
		Badge:  view.BadgeFor(stats.Completed),
		Filter: l.filter,
		Search: l.search,
		Total:  len(all),
		Today:  today,
	}
	for i, t := range filtered {
		snap.Tasks[i] = TaskView{
			Task:    t,
			Index:   positions[t.ID],
			Overdue: model.Overdue(t, today),
		}
	}
	if e, ok := l.undo.Pending(); ok {
		snap.Undo = &UndoState{
			Task:      e.Task.Clone(),
			Index:     e.Index,
			Remaining: l.undo.Remaining(),
		}
	}
	return snap
}

// FilteredTasks returns the plain tasks of the snapshot.
func (s Snapshot) FilteredTasks() []model.Task {
	out := make([]model.Task, len(s.Tasks))
	for i, tv := range s.Tasks {
		out[i] = tv.Task
	}
	return out
}

// Find returns the displayed task with the given ID.
func (s Snapshot) Find(id model.TaskID) (TaskView, bool) {
	for _, tv := range s.Tasks {
		if tv.ID == id {
			return tv, true
		}
	}
	return TaskView{}, false
}
