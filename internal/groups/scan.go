package groups

import (
	"errors"
)

// found holds the groups discovered by one collection pass.
type found struct {
	names   []string
	members map[string][]string
}

func (f *found) add(group, member string) {
	if _, ok := f.members[group]; !ok {
		f.names = append(f.names, group)
	}
	f.members[group] = append(f.members[group], member)
}

// scan buckets every tagged task and target of config by prefixed group name.
//
// A definition that has the tag field is a flat task. Every other mapping is
// scanned as a multi task. The two shapes cannot be told apart otherwise: an
// untagged flat task whose options are objects has those options scanned as
// targets, and any of them carrying the tag field joins a group as
// "task:option".
func (c *Collector) scan(config Mapping) (*found, error) {
	f := &found{members: make(map[string][]string)}

	for _, task := range config.Keys() {
		v, _ := config.Lookup(task)
		def, ok := asMapping(v)
		if !ok {
			continue
		}

		if tags, ok := def.Lookup(c.opts.tag); ok {
			if err := c.push(f, task, tags); err != nil {
				return nil, err
			}
			continue
		}

		for _, target := range def.Keys() {
			tv, _ := def.Lookup(target)
			targetDef, ok := asMapping(tv)
			if !ok {
				continue
			}
			tags, ok := targetDef.Lookup(c.opts.tag)
			if !ok {
				continue
			}
			if err := c.push(f, task+":"+target, tags); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func (c *Collector) push(f *found, member string, tags any) error {
	groups, err := parseNames("Collect", tags)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			return invalidf("Collect", "%s: %q %s", member, c.opts.tag, argErr.Msg)
		}
		return err
	}
	for _, group := range groups {
		f.add(c.prefixed(group), member)
	}
	return nil
}
