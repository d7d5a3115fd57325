package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskgroups/internal/config"
	"github.com/nibzard/taskgroups/internal/groups"
	"github.com/nibzard/taskgroups/internal/logging"
	"github.com/nibzard/taskgroups/internal/registry"
	"github.com/nibzard/taskgroups/internal/taskfile"
)

// app holds what every subcommand needs.
type app struct {
	ctx    context.Context
	cws    *config.ConfigWithSources
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
}

// session is the outcome of loading the task file and registering groups.
type session struct {
	logger    *log.Logger
	doc       *taskfile.Map
	registry  *registry.Registry
	collector *groups.Collector
	groups    []string
}

func (a *app) newLogger() (*log.Logger, error) {
	opts := logging.DefaultOptions()
	level, err := logging.ParseLevel(a.cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	formatter, err := logging.ParseFormatter(a.cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	opts.Level = level
	opts.Formatter = formatter
	opts.ReportTimestamp = a.cfg.LogTimestamps
	opts.ReportCaller = a.cfg.LogCaller
	return logging.New(a.stderr, opts), nil
}

func (a *app) loadTaskFile() (*taskfile.Map, error) {
	if a.cfg.TaskFile == "" {
		return nil, fmt.Errorf("no task file found (looked for %s); set -tasks or task_file",
			strings.Join(config.DefaultTaskFiles, ", "))
	}
	return taskfile.Load(a.cfg.TaskFile)
}

// open loads the task file, collects its groups, then registers aliases and
// ensured groups in that order.
func (a *app) open() (*session, error) {
	logger, err := a.newLogger()
	if err != nil {
		return nil, err
	}
	doc, err := a.loadTaskFile()
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	collector, err := groups.New(reg,
		groups.WithPrefix(a.cfg.Prefix),
		groups.WithTag(a.cfg.Tag),
		groups.WithVerbose(logging.NewVerbose(logger)),
		groups.WithWarn(logging.Warn(logger)),
		groups.WithFatal(func(err error) {
			logger.Error("invalid task configuration", "file", a.cfg.TaskFile, "err", err)
		}),
	)
	if err != nil {
		return nil, err
	}

	names, err := collector.Collect(doc)
	if err != nil {
		return nil, fmt.Errorf("collecting groups from %s: %w", a.cfg.TaskFile, err)
	}
	for _, name := range a.cfg.Aliases.Names() {
		if err := collector.RegisterTask(name, []string(a.cfg.Aliases[name])); err != nil {
			return nil, fmt.Errorf("registering alias %q: %w", name, err)
		}
	}
	if len(a.cfg.Ensure) > 0 {
		if err := collector.EnsureGroupsExist(a.cfg.Ensure); err != nil {
			return nil, fmt.Errorf("ensuring groups: %w", err)
		}
	}

	logger.Debug("registered tasks", "groups", len(names), "total", len(reg.Names()))

	return &session{
		logger:    logger,
		doc:       doc,
		registry:  reg,
		collector: collector,
		groups:    names,
	}, nil
}
