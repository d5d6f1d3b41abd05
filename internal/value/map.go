package value

import "strings"

// Map is a mutable, insertion-order-preserving, reference-counted
// dictionary keyed by string (§3.4, §4.6). Insertion order survives
// deletion and reinsertion does not move a key, matching the base
// library's iteration/print order.
type Map struct {
	Header
	order []string
	index map[string]int
	data  map[string]Value
}

func NewMap() *Map {
	return &Map{Header: newHeader(), index: map[string]int{}, data: map[string]Value{}}
}

func (m *Map) Kind() Kind      { return KindMap }
func (m *Map) header() *Header { return &m.Header }
func (m *Map) Truthy() bool    { return len(m.order) > 0 }

func (m *Map) Display() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range m.order {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(reprOf(m.data[k]))
	}
	b.WriteString("}")
	return b.String()
}

func (m *Map) drop() {
	for _, v := range m.data {
		Release(v)
	}
	m.order, m.index, m.data = nil, nil, nil
}

// Get returns the value stored at key, if any.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.data[key]
	return v, ok
}

// Set stores v at key, taking ownership of a reference. A key already
// present keeps its original position in iteration order.
func (m *Map) Set(key string, v Value) {
	if old, ok := m.data[key]; ok {
		Release(old)
		m.data[key] = Retain(v)
		return
	}
	m.index[key] = len(m.order)
	m.order = append(m.order, key)
	m.data[key] = Retain(v)
}

// Delete removes key, reporting whether it was present.
func (m *Map) Delete(key string) bool {
	pos, ok := m.index[key]
	if !ok {
		return false
	}
	Release(m.data[key])
	delete(m.data, key)
	delete(m.index, key)
	m.order = append(m.order[:pos], m.order[pos+1:]...)
	for i := pos; i < len(m.order); i++ {
		m.index[m.order[i]] = i
	}
	return true
}

// Len reports the number of keys.
func (m *Map) Len() int { return len(m.order) }

// Keys returns the keys in insertion order. The caller must not mutate the
// returned slice.
func (m *Map) Keys() []string { return m.order }

// Each calls fn for every entry in insertion order.
func (m *Map) Each(fn func(key string, v Value)) {
	for _, k := range m.order {
		fn(k, m.data[k])
	}
}
