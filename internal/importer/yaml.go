package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nissyi-gh/momentum/internal/model"
	"github.com/nissyi-gh/momentum/internal/todo"
)

// YAMLSubtask represents a subtask in the YAML input.
type YAMLSubtask struct {
	Description string `yaml:"description"`
	Completed   bool   `yaml:"completed,omitempty"`
}

// YAMLTask represents a single task in the YAML input.
type YAMLTask struct {
	Description string        `yaml:"description"`
	Priority    string        `yaml:"priority,omitempty"`
	Deadline    string        `yaml:"deadline,omitempty"`
	Notes       string        `yaml:"notes,omitempty"`
	Completed   bool          `yaml:"completed,omitempty"`
	Subtasks    []YAMLSubtask `yaml:"subtasks,omitempty"`
}

// YAMLInput represents the root structure of the YAML input.
type YAMLInput struct {
	Tasks []YAMLTask `yaml:"tasks"`
}

// ImportFile reads path and imports its tasks into list.
func ImportFile(list *todo.List, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return Import(list, string(data))
}

// Import parses a YAML string and adds its tasks to list through the normal
// commands, so every task gets a fresh ID and quote.
// Returns the number of tasks created.
func Import(list *todo.List, yamlStr string) (int, error) {
	var input YAMLInput
	if err := yaml.Unmarshal([]byte(yamlStr), &input); err != nil {
		return 0, fmt.Errorf("YAML parse error: %w", err)
	}

	if len(input.Tasks) == 0 {
		return 0, fmt.Errorf("no tasks found in YAML")
	}

	// validate everything first so a bad entry adds nothing
	priorities := make([]model.Priority, len(input.Tasks))
	for i, yt := range input.Tasks {
		p, err := validate(yt)
		if err != nil {
			return 0, fmt.Errorf("task %d: %w", i+1, err)
		}
		priorities[i] = p
	}

	count := 0
	for i, yt := range input.Tasks {
		if err := importTask(list, yt, priorities[i]); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// validate checks one entry and returns its parsed priority.
func validate(yt YAMLTask) (model.Priority, error) {
	if _, err := model.CleanDescription(yt.Description); err != nil {
		return model.PriorityUnset, err
	}
	priority, err := model.ParsePriority(yt.Priority)
	if err != nil {
		return model.PriorityUnset, err
	}
	if _, err := model.NormalizeDeadline(&yt.Deadline); err != nil {
		return model.PriorityUnset, err
	}
	for _, sub := range yt.Subtasks {
		if _, err := model.CleanDescription(sub.Description); err != nil {
			return model.PriorityUnset, fmt.Errorf("subtask: %w", err)
		}
	}
	return priority, nil
}

func importTask(list *todo.List, yt YAMLTask, priority model.Priority) error {
	deadline := &yt.Deadline

	task, err := list.AddTask(yt.Description, priority, deadline)
	if err != nil {
		return fmt.Errorf("add task %q: %w", yt.Description, err)
	}

	if yt.Notes != "" {
		err := list.EditTask(task.ID, todo.Edit{
			Description: task.Description,
			Deadline:    task.Deadline,
			Priority:    task.Priority,
			Notes:       yt.Notes,
		})
		if err != nil {
			return fmt.Errorf("set notes for %q: %w", yt.Description, err)
		}
	}

	for i, sub := range yt.Subtasks {
		if err := list.AddSubtask(task.ID, sub.Description); err != nil {
			return fmt.Errorf("add subtask %q: %w", sub.Description, err)
		}
		if sub.Completed {
			if err := list.ToggleSubtask(task.ID, i); err != nil {
				return fmt.Errorf("complete subtask %q: %w", sub.Description, err)
			}
		}
	}

	if yt.Completed {
		if err := list.ToggleTask(task.ID); err != nil {
			return fmt.Errorf("complete task %q: %w", yt.Description, err)
		}
	}
	return nil
}
