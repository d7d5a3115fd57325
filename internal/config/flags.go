package config

import (
	"flag"
)

// flagFields maps flag names to the config fields they set.
var flagFields = map[string]string{
	"tasks":          "task_file",
	"prefix":         "prefix",
	"tag":            "tag",
	"ensure":         "ensure",
	"verbose":        "verbose",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines and parses CLI flags, recording explicitly set flags in sources.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskgroups", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.TaskFile, "tasks", cfg.TaskFile, "Path to task configuration (TOML, YAML or JSON)")
	fs.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "Group name prefix (empty disables prefixing)")
	fs.StringVar(&cfg.Tag, "tag", cfg.Tag, "Property that tags tasks and targets with groups")
	fs.Func("ensure", "Comma-separated groups to register even if empty (repeatable)", func(v string) error {
		cfg.Ensure = append(cfg.Ensure, splitAndTrim(v, ",")...)
		return nil
	})
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Show collection details")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json, logfmt")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
