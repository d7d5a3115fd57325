// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.taskgroups/taskgroups.toml or OS-specific config directory)
// 3. Project config file (taskgroups.toml or .taskgroups.toml in the current directory)
// 4. Environment variables (TASKGROUPS_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.taskgroups/taskgroups.toml (preferred)
// - Windows: %APPDATA%\taskgroups\taskgroups.toml
// - macOS: ~/Library/Application Support/taskgroups/taskgroups.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskgroups/taskgroups.toml or ~/.config/taskgroups/taskgroups.toml
package config
