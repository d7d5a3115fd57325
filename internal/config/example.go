package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskgroups configuration file
# Values can be overridden by TASKGROUPS_* environment variables or CLI flags

# Task configuration to collect groups from (TOML, YAML or JSON).
# Defaults to the first of tasks.toml, tasks.yaml, tasks.yml, tasks.json.
# task_file = "tasks.toml"

# Prefix prepended to every group name (set to "" to disable)
prefix = "group-"

# Property that tags tasks and targets with groups
tag = "__groups"

# Groups that must exist even when nothing is tagged with them (without prefix)
# ensure = ["docs", "deploy"]

# Logging
verbose = false
log_level = "info"     # debug, info, warn, error
log_format = "text"    # text, json, logfmt
log_timestamps = false
log_caller = false

# Tasks registered after collection. Subtasks starting with the prefix are
# group references; missing groups become empty placeholders.
[aliases]
# default = ["group-lint", "group-test"]
# build = ["group-lint", "compile"]
`
}
