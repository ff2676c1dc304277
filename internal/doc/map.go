package doc

// Map is an insertion-ordered mapping from string keys to values.
// The zero value is not usable; create maps with NewMap.
type Map struct {
	keys   []string
	values map[string]Value
}

func (*Map) docValue() {}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. A new key is appended; an existing key keeps its
// position.
func (m *Map) Set(key string, value Value) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// SetFirst stores value under key and moves key to the front.
func (m *Map) SetFirst(key string, value Value) {
	m.Delete(key)
	m.keys = append([]string{key}, m.keys...)
	m.values[key] = value
}

// Delete removes key if present.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}
