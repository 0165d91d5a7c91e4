package ui

import "github.com/nissyi-gh/momentum/internal/todo"

// BuildTree flattens the displayed tasks into list rows, each task followed
// by its subtasks drawn with tree prefixes (├─, └─).
func BuildTree(tasks []todo.TaskView, theme Theme) []TaskItem {
	var items []TaskItem
	for _, tv := range tasks {
		items = append(items, TaskItem{View: tv, Sub: -1, theme: theme})
		for idx := range tv.Subtasks {
			prefix := " ├─ "
			if idx == len(tv.Subtasks)-1 {
				prefix = " └─ "
			}
			items = append(items, TaskItem{View: tv, Sub: idx, Prefix: prefix, theme: theme})
		}
	}
	return items
}
