// Package taskfile loads task configurations from TOML, YAML or JSON files.
//
// Objects are decoded into *Map values that keep keys in document order, so
// groups are discovered in the order tasks and targets appear in the file.
// A generated JSON Schema checks that every tag value is a group name or a
// list of group names.
package taskfile
