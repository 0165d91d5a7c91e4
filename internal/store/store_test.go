package store

import (
	"errors"
	"testing"
	"time"

	"github.com/nissyi-gh/momentum/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
}

func newStoreWith(descs ...string) *TaskStore {
	s := New(fixedNow)
	for _, d := range descs {
		s.Add(model.Task{Description: d, Priority: model.PriorityMedium})
	}
	return s
}

func descriptions(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Description
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddAssignsIncreasingIDs(t *testing.T) {
	s := New(fixedNow)
	a := s.Add(model.Task{Description: "a"})
	b := s.Add(model.Task{Description: "a"})

	if a.ID != 1 || b.ID != 2 {
		t.Errorf("IDs: got %d, %d; want 1, 2", a.ID, b.ID)
	}
	if !a.CreatedAt.Equal(fixedNow()) {
		t.Errorf("CreatedAt: got %v", a.CreatedAt)
	}
	if s.Len() != 2 {
		t.Errorf("Len: got %d, want 2", s.Len())
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := newStoreWith("one", "two", "three")
	got := descriptions(s.List())
	if !equalStrings(got, []string{"one", "two", "three"}) {
		t.Errorf("List order: got %v", got)
	}
}

func TestListReturnsCopies(t *testing.T) {
	s := newStoreWith("one")
	list := s.List()
	list[0].Description = "changed"

	got, err := s.Get(list[0].ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Description != "one" {
		t.Errorf("store was mutated through List: %q", got.Description)
	}
}

func TestRemoveAt(t *testing.T) {
	s := newStoreWith("one", "two", "three")

	removed, err := s.RemoveAt(1)
	if err != nil {
		t.Fatalf("RemoveAt failed: %v", err)
	}
	if removed.Description != "two" {
		t.Errorf("removed: got %q", removed.Description)
	}
	if got := descriptions(s.List()); !equalStrings(got, []string{"one", "three"}) {
		t.Errorf("after remove: got %v", got)
	}

	for _, idx := range []int{-1, 2, 10} {
		if _, err := s.RemoveAt(idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("RemoveAt(%d): expected ErrIndexOutOfRange, got %v", idx, err)
		}
	}
}

func TestRemoveByID(t *testing.T) {
	s := newStoreWith("one", "two")
	list := s.List()

	task, idx, err := s.Remove(list[1].ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if idx != 1 || task.Description != "two" {
		t.Errorf("Remove: got %q at %d", task.Description, idx)
	}
	if _, _, err := s.Remove(list[1].ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("second Remove: expected ErrTaskNotFound, got %v", err)
	}
}

func TestInsertAtClamps(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		wantPos int
		want    []string
	}{
		{"front", 0, 0, []string{"x", "a", "b"}},
		{"middle", 1, 1, []string{"a", "x", "b"}},
		{"end", 2, 2, []string{"a", "b", "x"}},
		{"past end appends", 7, 2, []string{"a", "b", "x"}},
		{"negative goes first", -3, 0, []string{"x", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStoreWith("a", "b", "x")
			x, _, err := s.Remove(s.List()[2].ID)
			if err != nil {
				t.Fatalf("Remove failed: %v", err)
			}

			pos, err := s.InsertAt(tt.index, x)
			if err != nil {
				t.Fatalf("InsertAt failed: %v", err)
			}
			if pos != tt.wantPos {
				t.Errorf("position: got %d, want %d", pos, tt.wantPos)
			}
			if got := descriptions(s.List()); !equalStrings(got, tt.want) {
				t.Errorf("order: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsertAtKeepsIDAndRejectsDuplicates(t *testing.T) {
	s := newStoreWith("a", "b")
	b := s.List()[1]

	if _, err := s.InsertAt(0, b); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}

	removed, _, _ := s.Remove(b.ID)
	if _, err := s.InsertAt(1, removed); err != nil {
		t.Fatalf("InsertAt failed: %v", err)
	}
	if idx, err := s.IndexOf(b.ID); err != nil || idx != 1 {
		t.Errorf("IndexOf after restore: got %d, %v", idx, err)
	}

	c := s.Add(model.Task{Description: "c"})
	if c.ID <= b.ID {
		t.Errorf("ID reused: got %d after %d", c.ID, b.ID)
	}
}

func TestToggleAndUpdate(t *testing.T) {
	s := newStoreWith("a")
	id := s.List()[0].ID

	if err := s.ToggleCompleted(id); err != nil {
		t.Fatalf("ToggleCompleted failed: %v", err)
	}
	got, _ := s.Get(id)
	if !got.Completed {
		t.Error("expected completed after toggle")
	}

	if err := s.Update(id, func(t *model.Task) { t.Notes = "n" }); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ = s.Get(id)
	if got.Notes != "n" {
		t.Errorf("Notes: got %q", got.Notes)
	}

	if err := s.ToggleCompleted(99); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestSubtasks(t *testing.T) {
	s := newStoreWith("a")
	id := s.List()[0].ID

	for _, d := range []string{"s1", "s2", "s3"} {
		if err := s.AppendSubtask(id, model.Subtask{Description: d}); err != nil {
			t.Fatalf("AppendSubtask failed: %v", err)
		}
	}
	if err := s.ToggleSubtask(id, 1); err != nil {
		t.Fatalf("ToggleSubtask failed: %v", err)
	}
	if err := s.DeleteSubtask(id, 0); err != nil {
		t.Fatalf("DeleteSubtask failed: %v", err)
	}

	got, _ := s.Get(id)
	if len(got.Subtasks) != 2 {
		t.Fatalf("subtasks: got %d, want 2", len(got.Subtasks))
	}
	if got.Subtasks[0].Description != "s2" || !got.Subtasks[0].Completed {
		t.Errorf("first subtask: got %+v", got.Subtasks[0])
	}
	if got.Subtasks[1].Description != "s3" || got.Subtasks[1].Completed {
		t.Errorf("second subtask: got %+v", got.Subtasks[1])
	}

	if err := s.ToggleSubtask(id, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("ToggleSubtask out of range: got %v", err)
	}
	if err := s.DeleteSubtask(id, -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("DeleteSubtask out of range: got %v", err)
	}
	if err := s.DeleteSubtask(42, 0); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("DeleteSubtask unknown task: got %v", err)
	}
}
