package config

import (
	"fmt"
	"sort"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	Files   []string
}

// Default values.
const (
	DefaultPrefix    = "group-"
	DefaultTag       = "__groups"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// DefaultTaskFiles lists the task files looked up in the current directory
// when no task file is configured.
var DefaultTaskFiles = []string{"tasks.toml", "tasks.yaml", "tasks.yml", "tasks.json"}

// Config holds the full configuration for taskgroups.
type Config struct {
	// Task configuration to collect groups from
	TaskFile string `toml:"task_file"`

	// Grouping
	Prefix string `toml:"prefix"`
	Tag    string `toml:"tag"`

	// Aliases maps task names to subtask lists registered after collection.
	Aliases Aliases `toml:"aliases"`

	// Ensure lists group names (without prefix) that must exist even if empty.
	Ensure []string `toml:"ensure"`

	// Logging configuration
	Verbose       bool   `toml:"verbose"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// Aliases maps task names to their subtasks.
type Aliases map[string]StringList

// Names returns alias names in sorted order.
func (a Aliases) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StringList is a list of strings that also accepts a single string.
type StringList []string

// UnmarshalTOML accepts `name = "a"` as well as `name = ["a", "b"]`.
func (l *StringList) UnmarshalTOML(data interface{}) error {
	switch v := data.(type) {
	case string:
		*l = StringList{v}
		return nil
	case []interface{}:
		out := make(StringList, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("element #%d must be a string, got %T", i, item)
			}
			out = append(out, s)
		}
		*l = out
		return nil
	}
	return fmt.Errorf("expected a string or an array of strings, got %T", data)
}
