package groups

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskgroups/internal/registry"
)

// Registry is the host task registry groups are registered into.
type Registry interface {
	Exists(name string) bool
	Register(name string, task registry.Task) error
}

var nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

// Collector discovers tagged tasks and registers group tasks.
// It is not safe for concurrent use.
type Collector struct {
	registry  Registry
	opts      options
	collected []string
}

// New returns a Collector bound to reg.
func New(reg Registry, opts ...Option) (*Collector, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.verbose == nil {
		o.verbose = noopVerbose{}
	}
	if o.warn == nil {
		o.warn = func(msg string) { log.Warn(msg) }
	}

	c := &Collector{registry: reg, opts: o}
	if reg == nil {
		return nil, c.fail(invalidf("New", "expects a task registry"))
	}
	return c, nil
}

// Prefix returns the group name prefix.
func (c *Collector) Prefix() string { return c.opts.prefix }

// Tag returns the property name that marks group membership.
func (c *Collector) Tag() string { return c.opts.tag }

// Collected returns every group name returned by Collect so far, in call
// order. Names collected by several calls appear once per call.
func (c *Collector) Collected() []string {
	return append([]string(nil), c.collected...)
}

// Collect scans config for the tag field, registers one composite task per
// discovered group and returns the prefixed group names in discovery order.
//
// config is a Mapping or a Go map with string keys; plain maps are scanned in
// sorted key order.
func (c *Collector) Collect(config any) ([]string, error) {
	const op = "Collect"

	m, ok := asMapping(config)
	if !ok {
		return nil, c.fail(invalidf(op, "expects argument #1 to be a task configuration, got %T", config))
	}

	c.writeln("Collect groups from tasks/targets.")

	found, err := c.scan(m)
	if err != nil {
		return nil, c.fail(err)
	}

	if c.opts.verbose.Enabled() {
		c.writeln(fmt.Sprintf("Found %d group(s) tagged with %s.", len(found.names), nameStyle.Render(c.opts.tag)))
		if len(found.names) > 0 {
			if c.opts.prefix != "" {
				c.writeln(fmt.Sprintf("Registering tasks with prefix %s:", nameStyle.Render(c.opts.prefix)))
			} else {
				c.writeln("Registering tasks:")
			}
		}
	}

	for _, name := range found.names {
		members := found.members[name]
		if err := c.registry.Register(name, registry.Alias(members...)); err != nil {
			return nil, fmt.Errorf("register group %q: %w", name, err)
		}
		if c.opts.verbose.Enabled() {
			c.writeln(fmt.Sprintf("+ %s: [%s]", nameStyle.Render(name), strings.Join(members, ", ")))
		}
	}

	c.collected = append(c.collected, found.names...)
	return found.names, nil
}

// RegisterTask registers name as a composite task running subtasks in order.
// subtasks is a string or a list of strings. Subtasks starting with the
// prefix are group references; missing groups are registered as empty
// placeholders first so running name never fails on them.
func (c *Collector) RegisterTask(name string, subtasks any) error {
	const op = "RegisterTask"

	if name == "" {
		return c.fail(invalidf(op, "expects argument #1 to be a task name"))
	}
	tasks, err := parseNames(op, subtasks)
	if err != nil {
		return c.fail(err)
	}

	var refs []string
	for _, task := range tasks {
		if strings.HasPrefix(task, c.opts.prefix) {
			refs = append(refs, task)
		}
	}
	if err := c.ensureGroupTasksExist(refs); err != nil {
		return err
	}

	if err := c.registry.Register(name, registry.Alias(tasks...)); err != nil {
		return fmt.Errorf("register task %q: %w", name, err)
	}
	return nil
}

// EnsureGroupsExist registers an empty placeholder for every group in groups
// that is not registered yet. groups is a string or a list of strings, given
// without the prefix.
func (c *Collector) EnsureGroupsExist(groups any) error {
	names, err := parseNames("EnsureGroupsExist", groups)
	if err != nil {
		return c.fail(err)
	}
	for i, name := range names {
		names[i] = c.prefixed(name)
	}
	return c.ensureGroupTasksExist(names)
}

// ensureGroupTasksExist takes already prefixed names.
func (c *Collector) ensureGroupTasksExist(groups []string) error {
	for _, group := range groups {
		if c.registry.Exists(group) {
			continue
		}
		if c.opts.verbose.Enabled() {
			c.writeln(fmt.Sprintf("+ %s (empty group)", nameStyle.Render(group)))
		}
		msg := fmt.Sprintf("Group task %q is empty. To add tasks, tag them with \"%s: %s\".",
			group, c.opts.tag, strings.TrimPrefix(group, c.opts.prefix))
		warn := c.opts.warn
		if err := c.registry.Register(group, registry.Func(func() { warn(msg) })); err != nil {
			return fmt.Errorf("register empty group %q: %w", group, err)
		}
	}
	return nil
}

func (c *Collector) prefixed(name string) string {
	if c.opts.prefix == "" {
		return name
	}
	return c.opts.prefix + name
}

func (c *Collector) writeln(line string) {
	if c.opts.verbose.Enabled() {
		c.opts.verbose.Writeln(line)
	}
}

func (c *Collector) fail(err error) error {
	var argErr *ArgumentError
	if c.opts.fatal != nil && errors.As(err, &argErr) {
		c.opts.fatal(err)
	}
	return err
}
