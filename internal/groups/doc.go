// Package groups collects tagged tasks and targets into group tasks.
//
// A task configuration maps task names to definitions. A definition that
// carries the tag field (default "__groups") directly is a flat task; any
// other mapping is treated as a multi task whose entries are targets, each of
// which may carry the tag field. Every tagged task or target is appended to
// the group named by the tag value, and each group is registered with the
// host registry as a composite task that runs its members in order.
//
// Group names are prefixed (default "group-") so they do not clash with
// regular tasks. Tasks that reference missing groups can be registered
// through the Collector, which materializes empty groups as placeholders that
// only warn when run.
package groups
