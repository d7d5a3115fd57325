package groups

import (
	"reflect"
	"sort"
)

// Mapping is an ordered view of a configuration object. Task files decoded
// with key order preserved implement it; plain Go maps are wrapped in sorted
// key order.
type Mapping interface {
	Keys() []string
	Lookup(key string) (any, bool)
}

// ParseNames normalizes a name list argument: a single string becomes a
// one-element list, and any slice or array must hold only strings.
func ParseNames(v any) ([]string, error) {
	return parseNames("ParseNames", v)
}

func parseNames(op string, v any) ([]string, error) {
	switch names := v.(type) {
	case string:
		return []string{names}, nil
	case []string:
		return append([]string(nil), names...), nil
	case nil:
		return nil, invalidf(op, "expects a string or an array of strings, got %T", v)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, invalidf(op, "expects a string or an array of strings, got %T", v)
	}
	names := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		name, ok := elem.(string)
		if !ok {
			return nil, invalidf(op, "expects a string or an array of strings, element #%d is of type %T", i, elem)
		}
		names = append(names, name)
	}
	return names, nil
}

// asMapping reports whether v is a configuration object and returns an
// ordered view of it.
func asMapping(v any) (Mapping, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case Mapping:
		return m, true
	case map[string]any:
		return goMap(m), true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	m := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		m[iter.Key().String()] = iter.Value().Interface()
	}
	return goMap(m), true
}

type goMap map[string]any

func (m goMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m goMap) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}
