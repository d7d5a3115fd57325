package registry

import (
	"fmt"
	"strings"
	"sync"
)

// Registry is a set of named tasks. Registering an existing name replaces
// its body and keeps its original position in Names.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]Task
	order []string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{tasks: make(map[string]Task)}
}

// Register adds or replaces the task stored under name.
func (r *Registry) Register(name string, task Task) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("task name is required")
	}
	if task.Fn != nil && len(task.Subtasks) > 0 {
		return fmt.Errorf("task %q: body is both a func and a subtask list", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[name]; !ok {
		r.order = append(r.order, name)
	}
	task.Subtasks = append([]string(nil), task.Subtasks...)
	r.tasks[name] = task
	return nil
}

// Exists returns true if a task is registered under name.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tasks[name]
	return ok
}

// Lookup returns the task registered under name.
func (r *Registry) Lookup(name string) (Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[name]
	if !ok {
		return Task{}, false
	}
	task.Subtasks = append([]string(nil), task.Subtasks...)
	return task, true
}

// Names returns registered task names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// resolve finds the task for name, falling back to the task part of a
// "task:target" name.
func (r *Registry) resolve(name string) (Task, string, bool) {
	if task, ok := r.Lookup(name); ok {
		return task, "", true
	}
	if base, target, ok := strings.Cut(name, ":"); ok {
		if task, ok := r.Lookup(base); ok {
			return task, target, true
		}
	}
	return Task{}, "", false
}

// Walk visits name and, depth-first, every subtask of composite tasks.
// Unregistered names are visited with Known set to false and not expanded.
func (r *Registry) Walk(name string, fn func(Step) error) error {
	return r.walk(name, 0, nil, fn)
}

func (r *Registry) walk(name string, depth int, stack []string, fn func(Step) error) error {
	for i, seen := range stack {
		if seen == name {
			path := append(append([]string(nil), stack[i:]...), name)
			return &CycleError{Path: path}
		}
	}

	task, target, known := r.resolve(name)
	step := Step{Name: name, Depth: depth, Task: task, Known: known, Target: target}
	if err := fn(step); err != nil {
		return err
	}
	if !known || task.IsFunc() || target != "" {
		return nil
	}

	stack = append(stack, name)
	for _, sub := range task.Subtasks {
		if err := r.walk(sub, depth+1, stack, fn); err != nil {
			return err
		}
	}
	return nil
}

// Run expands name and executes it: callable tasks are called and every
// unregistered name is passed to leaf. A nil leaf rejects unregistered names.
func (r *Registry) Run(name string, leaf func(name string) error) error {
	return r.Walk(name, func(step Step) error {
		switch {
		case !step.Known:
			if leaf == nil {
				return &TaskNotFoundError{Name: step.Name}
			}
			return leaf(step.Name)
		case step.Task.IsFunc():
			step.Task.Fn()
		}
		return nil
	})
}
