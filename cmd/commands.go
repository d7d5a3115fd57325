package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/nibzard/taskgroups/internal/config"
	"github.com/nibzard/taskgroups/internal/registry"
	"github.com/nibzard/taskgroups/internal/taskfile"
)

// Task kinds reported by list.
const (
	kindGroup      = "group"
	kindEmptyGroup = "empty group"
	kindAlias      = "alias"
)

type listEntry struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Subtasks []string `json:"subtasks"`
}

// listCommand lists registered groups, aliases and placeholders.
func (a *app) listCommand(args []string) error {
	fs := flag.NewFlagSet("taskgroups list", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	asJSON := fs.Bool("json", false, "Print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := a.open()
	if err != nil {
		return err
	}
	entries := s.entries()

	if *asJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"tasks": entries})
	}

	if len(entries) == 0 {
		fmt.Fprintf(a.stdout, "No tasks tagged with %q.\n", a.cfg.Tag)
		return nil
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tSUBTASKS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Kind, strings.Join(e.Subtasks, ", "))
	}
	return tw.Flush()
}

func (s *session) entries() []listEntry {
	collected := make(map[string]bool, len(s.groups))
	for _, name := range s.groups {
		collected[name] = true
	}

	entries := make([]listEntry, 0, len(s.registry.Names()))
	for _, name := range s.registry.Names() {
		task, _ := s.registry.Lookup(name)
		e := listEntry{Name: name, Subtasks: task.Subtasks}
		switch {
		case task.IsFunc():
			e.Kind = kindEmptyGroup
		case collected[name]:
			e.Kind = kindGroup
		default:
			e.Kind = kindAlias
		}
		if e.Subtasks == nil {
			e.Subtasks = []string{}
		}
		entries = append(entries, e)
	}
	return entries
}

// defined reports whether name is a registered task or a task in the task
// file. "task:target" names are checked by their task part.
func (s *session) defined(name string) bool {
	if s.registry.Exists(name) {
		return true
	}
	base, _, _ := strings.Cut(name, ":")
	if s.registry.Exists(base) {
		return true
	}
	_, ok := s.doc.Lookup(base)
	return ok
}

func taskArg(command string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s expects exactly one task name", command)
	}
	return args[0], nil
}

// showCommand prints the depth-first expansion of a task.
func (a *app) showCommand(args []string) error {
	name, err := taskArg("show", args)
	if err != nil {
		return err
	}
	s, err := a.open()
	if err != nil {
		return err
	}
	if !s.defined(name) {
		return &registry.TaskNotFoundError{Name: name}
	}

	return s.registry.Walk(name, func(step registry.Step) error {
		indent := strings.Repeat("  ", step.Depth)
		switch {
		case step.Known && step.Task.IsFunc() && step.Target == "":
			fmt.Fprintf(a.stdout, "%s%s (%s)\n", indent, step.Name, kindEmptyGroup)
		case !step.Known && !s.defined(step.Name):
			fmt.Fprintf(a.stdout, "%s%s (not defined)\n", indent, step.Name)
		default:
			fmt.Fprintf(a.stdout, "%s%s\n", indent, step.Name)
		}
		return nil
	})
}

// dryRunCommand walks a task the way the task runner would, running
// placeholders and printing every task that would execute.
func (a *app) dryRunCommand(args []string) error {
	name, err := taskArg("dry-run", args)
	if err != nil {
		return err
	}
	s, err := a.open()
	if err != nil {
		return err
	}

	return s.registry.Run(name, func(task string) error {
		if err := a.ctx.Err(); err != nil {
			return err
		}
		if !s.defined(task) {
			return &registry.TaskNotFoundError{Name: task}
		}
		fmt.Fprintf(a.stdout, "Running %q\n", task)
		return nil
	})
}

// checkCommand validates the task file against the schema for the configured tag.
func (a *app) checkCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	doc, err := a.loadTaskFile()
	if err != nil {
		return err
	}
	result, err := taskfile.Validate(doc, a.cfg.Tag)
	if err != nil {
		return err
	}
	if result.Valid {
		fmt.Fprintf(a.stdout, "%s: ok\n", a.cfg.TaskFile)
		return nil
	}
	for _, e := range result.Errors {
		fmt.Fprintf(a.stdout, "%s: %v\n", a.cfg.TaskFile, e)
	}
	return fmt.Errorf("%s: %d schema error(s)", a.cfg.TaskFile, len(result.Errors))
}

// configCommand prints the effective configuration and where each value came from.
func (a *app) configCommand(args []string) error {
	fs := flag.NewFlagSet("taskgroups config", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(a.stdout, config.ExampleConfig())
		return nil
	}

	cfg := a.cfg
	aliases := make([]string, 0, len(cfg.Aliases))
	for _, name := range cfg.Aliases.Names() {
		aliases = append(aliases, fmt.Sprintf("%s=[%s]", name, strings.Join(cfg.Aliases[name], ", ")))
	}
	rows := []struct {
		field string
		value string
	}{
		{"task_file", cfg.TaskFile},
		{"prefix", fmt.Sprintf("%q", cfg.Prefix)},
		{"tag", cfg.Tag},
		{"aliases", strings.Join(aliases, " ")},
		{"ensure", strings.Join(cfg.Ensure, ", ")},
		{"verbose", fmt.Sprint(cfg.Verbose)},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", fmt.Sprint(cfg.LogTimestamps)},
		{"log_caller", fmt.Sprint(cfg.LogCaller)},
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", row.field, row.value, a.cws.Sources[row.field])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if file := a.cws.GetConfigFile(); file != "" {
		fmt.Fprintf(a.stdout, "\nConfig files: %s\n", strings.Join(a.cws.Files, ", "))
	}
	return nil
}
