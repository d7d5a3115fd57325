package taskfile

// Map is a configuration object with keys in document order.
// Nested objects are *Map values and arrays are []any.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores v under key. A key that is already present keeps its position.
func (m *Map) Set(key string, v any) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Keys returns the keys in document order.
func (m *Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Lookup returns the value stored under key.
func (m *Map) Lookup(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of keys.
func (m *Map) Len() int {
	return len(m.keys)
}

// Plain converts m into nested map[string]any values.
func (m *Map) Plain() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = plain(m.values[k])
	}
	return out
}

func plain(v any) any {
	switch v := v.(type) {
	case *Map:
		return v.Plain()
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = plain(elem)
		}
		return out
	default:
		return v
	}
}
