package envfile

// Map is an insertion-ordered set of parsed assignments.
// When a key is assigned twice the last value wins and the first position is kept.
type Map struct {
	keys   []string
	values map[string]string
	lines  map[string]int
}

func newMap() *Map {
	return &Map{
		values: make(map[string]string),
		lines:  make(map[string]int),
	}
}

func (m *Map) set(key, value string, line int) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
		m.lines[key] = line
	}
	m.values[key] = value
}

// Get returns the value for key.
func (m *Map) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in first-seen order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of distinct keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Line returns the 1-based line where key was first assigned, or 0.
func (m *Map) Line(key string) int {
	if m == nil {
		return 0
	}
	return m.lines[key]
}

// ToMap returns a plain copy of the assignments.
func (m *Map) ToMap() map[string]string {
	out := make(map[string]string, m.Len())
	if m == nil {
		return out
	}
	for k, v := range m.values {
		out[k] = v
	}
	return out
}
