package baselib

import (
	"fmt"

	"github.com/mikenno/modelgen/internal/value"
)

// registerMapMethods wires Map's bound methods (§4.7's "map's keys/
// values/items"), grounded on original_source/modules/maplib.c (has,
// clear, size aliased to the shared mg_len, keys, values, pairs — named
// items here to match spec.md §4.7's wording).
func registerMapMethods() {
	value.RegisterMethod(value.KindMap, "size", mmSize)
	value.RegisterMethod(value.KindMap, "has", mmHas)
	value.RegisterMethod(value.KindMap, "clear", mmClear)
	value.RegisterMethod(value.KindMap, "keys", mmKeys)
	value.RegisterMethod(value.KindMap, "values", mmValues)
	value.RegisterMethod(value.KindMap, "items", mmItems)
	value.RegisterMethod(value.KindMap, "copy", mmCopy)
}

func asMap(args []value.Value, method string) (*value.Map, []value.Value, error) {
	m, ok := args[0].(*value.Map)
	if !ok {
		return nil, nil, fmt.Errorf("%s() requires a map receiver", method)
	}
	return m, args[1:], nil
}

func mmSize(inst *value.Instance, args []value.Value) (value.Value, error) {
	m, _, err := asMap(args, "size")
	if err != nil {
		return nil, err
	}
	return mgLen(m)
}

func mmHas(inst *value.Instance, args []value.Value) (value.Value, error) {
	m, rest, err := asMap(args, "has")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("has() takes exactly 1 argument, got %d", len(rest))
	}
	key, ok := rest[0].(*value.String)
	if !ok {
		return nil, fmt.Errorf("has() key must be a string")
	}
	if _, ok := m.Get(key.V); ok {
		return value.NewInteger(1), nil
	}
	return value.NewInteger(0), nil
}

func mmClear(inst *value.Instance, args []value.Value) (value.Value, error) {
	m, _, err := asMap(args, "clear")
	if err != nil {
		return nil, err
	}
	for _, k := range append([]string(nil), m.Keys()...) {
		m.Delete(k)
	}
	return value.Null, nil
}

func mmKeys(inst *value.Instance, args []value.Value) (value.Value, error) {
	m, _, err := asMap(args, "keys")
	if err != nil {
		return nil, err
	}
	keys := m.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		out[i] = value.NewString(k)
	}
	return value.NewList(out...), nil
}

func mmValues(inst *value.Instance, args []value.Value) (value.Value, error) {
	m, _, err := asMap(args, "values")
	if err != nil {
		return nil, err
	}
	keys := m.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		v, _ := m.Get(k)
		out[i] = v
	}
	return value.NewList(out...), nil
}

func mmItems(inst *value.Instance, args []value.Value) (value.Value, error) {
	m, _, err := asMap(args, "items")
	if err != nil {
		return nil, err
	}
	keys := m.Keys()
	out := make([]value.Value, len(keys))
	for i, k := range keys {
		v, _ := m.Get(k)
		out[i] = value.NewTuple(value.NewString(k), v)
	}
	return value.NewList(out...), nil
}

func mmCopy(inst *value.Instance, args []value.Value) (value.Value, error) {
	m, _, err := asMap(args, "copy")
	if err != nil {
		return nil, err
	}
	out := value.NewMap()
	m.Each(func(k string, v value.Value) { out.Set(k, v) })
	return out, nil
}

// newMapModule backs the statically registered `map` module (§4.12):
// module-level helpers that operate on a map passed as an ordinary
// argument rather than a bound receiver, mirroring listlib.c/maplib.c's
// dual module-function-and-bound-method exposure in the original source.
func newMapModule(inst *value.Instance) *value.Module {
	mod := value.NewModule("map", "<map>", nil, inst)
	set := func(name string, fn value.CFunc) { mod.Globals.Set(name, value.NewCFunction(name, fn)) }
	set("new", func(inst *value.Instance, args []value.Value) (value.Value, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("map.new() takes no arguments")
		}
		return value.NewMap(), nil
	})
	set("has", mmHas)
	set("keys", mmKeys)
	set("values", mmValues)
	set("items", mmItems)
	return mod
}
