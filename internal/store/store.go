// Package store keeps the session's tasks in display order.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/nissyi-gh/momentum/internal/model"
)

var (
	// ErrTaskNotFound is returned for an ID that is not in the store.
	ErrTaskNotFound = errors.New("task not found")
	// ErrIndexOutOfRange is returned for a task or subtask position that does not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrDuplicateID is returned when re-inserting a task whose ID is still present.
	ErrDuplicateID = errors.New("duplicate task id")
)

// TaskStore is an insertion-ordered collection of tasks keyed by ID.
// It is not safe for concurrent use; callers serialise access.
type TaskStore struct {
	tasks  []model.Task
	nextID model.TaskID
	now    func() time.Time
}

// New returns an empty store. now stamps CreatedAt; nil means time.Now.
func New(now func() time.Time) *TaskStore {
	if now == nil {
		now = time.Now
	}
	return &TaskStore{nextID: 1, now: now}
}

// Add assigns the next ID to task and appends it.
func (s *TaskStore) Add(task model.Task) model.Task {
	task.ID = s.nextID
	s.nextID++
	if task.CreatedAt.IsZero() {
		task.CreatedAt = s.now()
	}
	task = task.Clone()
	s.tasks = append(s.tasks, task)
	return task.Clone()
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// List returns copies of all tasks in store order.
func (s *TaskStore) List() []model.Task {
	out := make([]model.Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns a copy of the task with the given ID.
func (s *TaskStore) Get(id model.TaskID) (model.Task, error) {
	i, err := s.IndexOf(id)
	if err != nil {
		return model.Task{}, err
	}
	return s.tasks[i].Clone(), nil
}

// IndexOf returns the current position of the task with the given ID.
func (s *TaskStore) IndexOf(id model.TaskID) (int, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("task %d: %w", id, ErrTaskNotFound)
}

// RemoveAt removes and returns the task at index.
func (s *TaskStore) RemoveAt(index int) (model.Task, error) {
	if index < 0 || index >= len(s.tasks) {
		return model.Task{}, fmt.Errorf("remove at %d of %d: %w", index, len(s.tasks), ErrIndexOutOfRange)
	}
	t := s.tasks[index]
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return t, nil
}

// Remove removes the task with the given ID and returns it together with
// the position it occupied.
func (s *TaskStore) Remove(id model.TaskID) (model.Task, int, error) {
	i, err := s.IndexOf(id)
	if err != nil {
		return model.Task{}, -1, err
	}
	t, err := s.RemoveAt(i)
	return t, i, err
}

// InsertAt puts a previously removed task back at index and returns the
// position actually used. index is clamped to [0, Len()], so a position past
// the end appends.
func (s *TaskStore) InsertAt(index int, task model.Task) (int, error) {
	if _, err := s.IndexOf(task.ID); err == nil {
		return -1, fmt.Errorf("insert task %d: %w", task.ID, ErrDuplicateID)
	}
	if index < 0 {
		index = 0
	}
	if index > len(s.tasks) {
		index = len(s.tasks)
	}
	s.tasks = append(s.tasks, model.Task{})
	copy(s.tasks[index+1:], s.tasks[index:])
	s.tasks[index] = task.Clone()
	if task.ID >= s.nextID {
		s.nextID = task.ID + 1
	}
	return index, nil
}

// Update applies fn to the stored task in place.
func (s *TaskStore) Update(id model.TaskID, fn func(*model.Task)) error {
	i, err := s.IndexOf(id)
	if err != nil {
		return err
	}
	fn(&s.tasks[i])
	return nil
}

// ToggleCompleted flips the completed flag of a task.
func (s *TaskStore) ToggleCompleted(id model.TaskID) error {
	return s.Update(id, func(t *model.Task) {
		t.Completed = !t.Completed
	})
}

// AppendSubtask adds sub to the end of the task's subtasks.
func (s *TaskStore) AppendSubtask(id model.TaskID, sub model.Subtask) error {
	return s.Update(id, func(t *model.Task) {
		t.Subtasks = append(t.Subtasks, sub)
	})
}

// ToggleSubtask flips the completed flag of subtask sub.
func (s *TaskStore) ToggleSubtask(id model.TaskID, sub int) error {
	t, err := s.subtaskOwner(id, sub)
	if err != nil {
		return err
	}
	t.Subtasks[sub].Completed = !t.Subtasks[sub].Completed
	return nil
}

// DeleteSubtask removes subtask sub, keeping the order of the rest.
func (s *TaskStore) DeleteSubtask(id model.TaskID, sub int) error {
	t, err := s.subtaskOwner(id, sub)
	if err != nil {
		return err
	}
	t.Subtasks = append(t.Subtasks[:sub], t.Subtasks[sub+1:]...)
	return nil
}

func (s *TaskStore) subtaskOwner(id model.TaskID, sub int) (*model.Task, error) {
	i, err := s.IndexOf(id)
	if err != nil {
		return nil, err
	}
	t := &s.tasks[i]
	if sub < 0 || sub >= len(t.Subtasks) {
		return nil, fmt.Errorf("task %d subtask %d of %d: %w", id, sub, len(t.Subtasks), ErrIndexOutOfRange)
	}
	return t, nil
}
