package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TASKGROUPS_* environment variables.
// TASKGROUPS_PREFIX is honored even when empty so prefixing can be disabled.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKGROUPS_TASK_FILE"); v != "" {
		cfg.TaskFile = v
		set("task_file")
	}
	if v, ok := os.LookupEnv("TASKGROUPS_PREFIX"); ok {
		cfg.Prefix = v
		set("prefix")
	}
	if v := os.Getenv("TASKGROUPS_TAG"); v != "" {
		cfg.Tag = v
		set("tag")
	}
	if v := os.Getenv("TASKGROUPS_ENSURE"); v != "" {
		cfg.Ensure = splitAndTrim(v, ",")
		set("ensure")
	}
	if v := os.Getenv("TASKGROUPS_VERBOSE"); v != "" {
		cfg.Verbose = boolFromString(v)
		set("verbose")
	}
	if v := os.Getenv("TASKGROUPS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TASKGROUPS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TASKGROUPS_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		set("log_timestamps")
	}
	if v := os.Getenv("TASKGROUPS_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		set("log_caller")
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// splitAndTrim splits s by sep and drops empty parts.
func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
