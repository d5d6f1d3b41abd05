package value

import (
	"strconv"
	"strings"
)

// List is a mutable, ordered, reference-counted sequence (§3.4).
type List struct {
	Header
	Items []Value
}

func NewList(items ...Value) *List {
	l := &List{Header: newHeader(), Items: make([]Value, len(items))}
	for i, v := range items {
		l.Items[i] = Retain(v)
	}
	return l
}

func (l *List) Kind() Kind      { return KindList }
func (l *List) header() *Header { return &l.Header }
func (l *List) Truthy() bool    { return len(l.Items) > 0 }

func (l *List) Display() string { return displaySeq("[", "]", l.Items) }

func (l *List) drop() {
	for _, v := range l.Items {
		Release(v)
	}
	l.Items = nil
}

// Append adds v to the end of the list, taking ownership of a reference.
func (l *List) Append(v Value) { l.Items = append(l.Items, Retain(v)) }

// Tuple is an immutable, ordered, reference-counted sequence (§3.4). Like
// List it owns references to its elements, but callers can never mutate it
// in place; a Tuple is rebuilt whenever the language would otherwise mutate
// one (there are no tuple mutators in §4.7's bound-method table).
type Tuple struct {
	Header
	Items []Value
}

func NewTuple(items ...Value) *Tuple {
	t := &Tuple{Header: newHeader(), Items: make([]Value, len(items))}
	for i, v := range items {
		t.Items[i] = Retain(v)
	}
	return t
}

func (t *Tuple) Kind() Kind      { return KindTuple }
func (t *Tuple) header() *Header { return &t.Header }
func (t *Tuple) Truthy() bool    { return len(t.Items) > 0 }
func (t *Tuple) Display() string { return displaySeq("(", ")", t.Items) }

func (t *Tuple) drop() {
	for _, v := range t.Items {
		Release(v)
	}
	t.Items = nil
}

func displaySeq(open, shut string, items []Value) string {
	var b strings.Builder
	b.WriteString(open)
	for i, v := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(reprOf(v))
	}
	b.WriteString(shut)
	return b.String()
}

// reprOf formats a nested value the way it would appear as a literal, so
// strings inside a list display quoted (print([1, "a"]) -> [1, "a"]) even
// though print("a") alone shows it bare.
func reprOf(v Value) string {
	if s, ok := v.(*String); ok {
		return strconv.Quote(s.V)
	}
	if v == nil {
		return "null"
	}
	return v.Display()
}
