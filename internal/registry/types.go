// Package registry provides an in-memory task registry that group tasks are
// registered into.
package registry

import (
	"fmt"
	"strings"
)

// Task is the body of a registered task: either an ordered list of subtask
// names (a composite task) or a callable.
type Task struct {
	Subtasks []string
	Fn       func()
}

// Alias returns a composite task that runs subtasks in order.
func Alias(subtasks ...string) Task {
	return Task{Subtasks: append([]string(nil), subtasks...)}
}

// Func returns a task that calls fn when run.
func Func(fn func()) Task {
	return Task{Fn: fn}
}

// IsFunc reports whether the task is a callable.
func (t Task) IsFunc() bool {
	return t.Fn != nil
}

func (t Task) String() string {
	if t.IsFunc() {
		return "<func>"
	}
	return "[" + strings.Join(t.Subtasks, ", ") + "]"
}

// Step is one node visited while walking a task expansion.
type Step struct {
	Name   string
	Depth  int
	Task   Task
	Known  bool
	Target string
}

// TaskNotFoundError is returned when a task name is neither registered nor
// accepted by the leaf handler.
type TaskNotFoundError struct {
	Name string
}

func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %q not found", e.Name)
}

// IsTaskNotFound returns true if the error is a TaskNotFoundError.
func IsTaskNotFound(err error) bool {
	_, ok := err.(*TaskNotFoundError)
	return ok
}

// CycleError is returned when composite tasks reference each other.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "task cycle: " + strings.Join(e.Path, " -> ")
}
