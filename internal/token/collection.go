package token

import "strings"

// List is an ordered list of tokens.
type List struct {
	elems []Token
}

// NewList returns a list holding a copy of elems.
func NewList(elems ...Token) List {
	return List{elems: append([]Token(nil), elems...)}
}

func (l List) Kind() Kind { return KindList }
func (l List) Len() int   { return len(l.elems) }

// At returns the i-th element.
func (l List) At(i int) Token { return l.elems[i] }

// Elems returns a copy of the elements.
func (l List) Elems() []Token { return append([]Token(nil), l.elems...) }

// Rest returns the list without its first element. The receiver must be
// non-empty.
func (l List) Rest() List { return List{elems: l.elems[1:len(l.elems):len(l.elems)]} }

// Prepend returns a new list with heads in front of l.
func (l List) Prepend(heads ...Token) List {
	out := make([]Token, 0, len(heads)+len(l.elems))
	out = append(out, heads...)
	return List{elems: append(out, l.elems...)}
}

func (l List) String() string {
	parts := make([]string, len(l.elems))
	for i, e := range l.elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l List) Hash() uint64 { return hashOrdered(KindList, l.elems...) }

func (l List) Equal(other Token) bool {
	o, ok := other.(List)
	if !ok || len(o.elems) != len(l.elems) {
		return false
	}
	for i := range l.elems {
		if !l.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

// Entry is a single key/value pair of a Map.
type Entry struct {
	Key   Token
	Value Token
}

// Map associates unique keys with values. Entries keep insertion order so
// that iteration is deterministic, but equality ignores order.
type Map struct {
	entries []Entry
	index   map[uint64][]int
}

// NewMap builds a map from entries. A later entry replaces an earlier entry
// with an equal key.
func NewMap(entries ...Entry) Map {
	m := Map{index: make(map[uint64][]int, len(entries))}
	for _, e := range entries {
		if i, ok := m.find(e.Key); ok {
			m.entries[i].Value = e.Value
			continue
		}
		m.add(e)
	}
	return m
}

func (m *Map) add(e Entry) {
	h := e.Key.Hash()
	m.index[h] = append(m.index[h], len(m.entries))
	m.entries = append(m.entries, e)
}

func (m Map) find(key Token) (int, bool) {
	for _, i := range m.index[key.Hash()] {
		if m.entries[i].Key.Equal(key) {
			return i, true
		}
	}
	return 0, false
}

func (m Map) Kind() Kind { return KindMap }
func (m Map) Len() int   { return len(m.entries) }

// Entries returns a copy of the entries in insertion order.
func (m Map) Entries() []Entry { return append([]Entry(nil), m.entries...) }

// Entry returns the i-th entry in insertion order.
func (m Map) Entry(i int) Entry { return m.entries[i] }

// Get looks up key.
func (m Map) Get(key Token) (Token, bool) {
	if i, ok := m.find(key); ok {
		return m.entries[i].Value, true
	}
	return nil, false
}

// Without returns a new map lacking the i-th entry.
func (m Map) Without(i int) Map {
	rest := make([]Entry, 0, len(m.entries)-1)
	rest = append(rest, m.entries[:i]...)
	rest = append(rest, m.entries[i+1:]...)
	return NewMap(rest...)
}

// Merge returns a new map holding m's entries overridden by other's.
func (m Map) Merge(other Map) Map {
	all := make([]Entry, 0, len(m.entries)+len(other.entries))
	all = append(all, m.entries...)
	return NewMap(append(all, other.entries...)...)
}

func (m Map) String() string {
	parts := make([]string, len(m.entries))
	for i, e := range m.entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (m Map) Hash() uint64 {
	var sum uint64
	for _, e := range m.entries {
		sum += hashEntry(e)
	}
	return hashSized(KindMap, len(m.entries)) ^ sum
}

func (m Map) Equal(other Token) bool {
	o, ok := other.(Map)
	if !ok || len(o.entries) != len(m.entries) {
		return false
	}
	for _, e := range m.entries {
		v, found := o.Get(e.Key)
		if !found || !v.Equal(e.Value) {
			return false
		}
	}
	return true
}
