package value

import "fmt"

// methodTable holds the bound-method tables for List, Tuple, String, Map
// (§4.7). It is populated by baselib.Install rather than here, so the value
// package never has to import baselib back.
var methodTable = map[Kind]map[string]*CFunction{}

// RegisterMethod adds a bound method named name, callable on any value of
// kind, to the shared table. Called from baselib.Install.
func RegisterMethod(kind Kind, name string, fn CFunc) {
	tbl, ok := methodTable[kind]
	if !ok {
		tbl = map[string]*CFunction{}
		methodTable[kind] = tbl
	}
	tbl[name] = NewCFunction(name, fn)
}

// Attribute implements `.name` access (§4.7): on a Module it resolves a
// global; on any other kind it looks up a bound method and returns it
// wrapped with its receiver.
func Attribute(v Value, name string) (Value, error) {
	if mod, ok := v.(*Module); ok {
		if g, ok := mod.Globals.Get(name); ok {
			return g, nil
		}
		return nil, fmt.Errorf("module %q has no attribute %q", mod.Name, name)
	}
	kind := TypeNameOrNull(v).Kind()
	if tbl, ok := methodTable[kind]; ok {
		if fn, ok := tbl[name]; ok {
			return NewBoundCFunction(fn, v), nil
		}
	}
	// Map falls through a method-table miss to plain key lookup rather than
	// erroring (§4.7): object-like access is the primary idiom for maps, and
	// a miss there is Null, not an attribute error.
	if m, ok := v.(*Map); ok {
		if val, ok := m.Get(name); ok {
			return val, nil
		}
		return Null, nil
	}
	return nil, fmt.Errorf("%s object has no attribute %q", kind, name)
}

// SetAttribute implements `.name = v` (§4.7): legal on Map (sets a key)
// and Module (sets a global); rejected everywhere else, notably List/Tuple.
func SetAttribute(v Value, name string, val Value) error {
	switch t := v.(type) {
	case *Map:
		t.Set(name, val)
		return nil
	case *Module:
		t.Globals.Set(name, val)
		return nil
	default:
		return fmt.Errorf("%s object does not support attribute assignment", TypeNameOrNull(v).Kind())
	}
}
