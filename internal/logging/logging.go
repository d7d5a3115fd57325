// Package logging provides console logging with charmbracelet/log.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options holds configuration for console logging.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	ReportCaller    bool
	Prefix          string
}

// DefaultOptions returns default options for console logging.
func DefaultOptions() Options {
	return Options{
		Level:           log.InfoLevel,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          "taskgroups",
	}
}

// New creates a logger writing to w. A nil w writes to stderr.
func New(w io.Writer, opts Options) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
		Prefix:          opts.Prefix,
	})
}

// ParseLevel parses a level name. An empty name is the info level.
func ParseLevel(name string) (log.Level, error) {
	if strings.TrimSpace(name) == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q", name)
	}
	return level, nil
}

// ParseFormatter parses a formatter name: text, json or logfmt.
// An empty name is the text formatter.
func ParseFormatter(name string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return log.TextFormatter, fmt.Errorf("invalid log format %q", name)
}

// Verbose writes diagnostic lines at debug level. It is enabled only when
// the logger reports debug messages.
type Verbose struct {
	logger *log.Logger
}

// NewVerbose returns a Verbose sink backed by logger.
func NewVerbose(logger *log.Logger) *Verbose {
	return &Verbose{logger: logger}
}

// Enabled reports whether lines will be written.
func (v *Verbose) Enabled() bool {
	return v != nil && v.logger != nil && v.logger.GetLevel() <= log.DebugLevel
}

// Writeln writes one line.
func (v *Verbose) Writeln(line string) {
	if !v.Enabled() {
		return
	}
	v.logger.Debug(line)
}

// Warn returns a function that logs messages at warn level.
func Warn(logger *log.Logger) func(msg string) {
	return func(msg string) {
		logger.Warn(msg)
	}
}
