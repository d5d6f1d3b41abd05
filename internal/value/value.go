package value

import "sync/atomic"

// Header is embedded by every concrete value kind. It carries the
// reference count that backs the acyclic-by-construction ownership model
// (§3.4, §9): every Value the interpreter hands out is born with a count of
// one, owned by whoever received it; Retain bumps it, Release drops it, and
// a drop to zero releases anything the value itself owns.
type Header struct {
	refs int32
}

// newHeader starts a freshly constructed value at a reference count of one:
// every New* constructor hands the caller an owned reference, same as the
// convention in original_source's `*_new` functions. A second owner goes
// through Retain; Release matches each owned reference.
func newHeader() Header { return Header{refs: 1} }

func (h *Header) retain() { atomic.AddInt32(&h.refs, 1) }

// release decrements the count and reports whether it reached zero.
func (h *Header) release() bool { return atomic.AddInt32(&h.refs, -1) == 0 }

// Refs reports the current reference count. Exposed for leak-counted
// allocator tests (§8).
func (h *Header) Refs() int32 { return atomic.LoadInt32(&h.refs) }

// Value is the interface every one of the twelve value kinds implements. It is
// the idiomatic-Go stand-in for a tagged variant: each kind is its own
// concrete type rather than a field in one giant union struct.
type Value interface {
	Kind() Kind
	header() *Header
	Truthy() bool
	Display() string
}

// dropper is implemented by kinds that themselves own other Values (List,
// Map, Tuple, Function, BoundCFunction, Module) and must release them when
// their own count reaches zero.
type dropper interface {
	drop()
}

// Retain increments v's reference count and returns v, so it composes at
// call sites: locals.Set(name, value.Retain(v)).
func Retain(v Value) Value {
	if v == nil || v == Null {
		return v
	}
	v.header().retain()
	return v
}

// Release decrements v's reference count, releasing anything v owns once
// the count reaches zero.
func Release(v Value) {
	if v == nil || v == Null {
		return
	}
	if v.header().release() {
		if d, ok := v.(dropper); ok {
			d.drop()
		}
	}
}

// TypeName returns the kind name as the language surfaces it, e.g. from the
// base library's type() builtin.
func TypeName(v Value) string {
	if v == nil {
		return "null"
	}
	return v.Kind().String()
}
