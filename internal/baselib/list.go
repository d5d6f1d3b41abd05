package baselib

import (
	"fmt"
	"sort"

	"github.com/mikenno/modelgen/internal/value"
)

// registerListMethods wires List's bound methods (§4.7), grounded on
// original_source/modules/listlib.c and src/types/list.c's method table.
// Each CFunc receives the bound receiver as args[0] (the BoundCFunction
// calling convention, §4.10).
func registerListMethods() {
	value.RegisterMethod(value.KindList, "size", lmSize)
	value.RegisterMethod(value.KindList, "add", lmAdd)
	value.RegisterMethod(value.KindList, "insert", lmInsert)
	value.RegisterMethod(value.KindList, "remove", lmRemove)
	value.RegisterMethod(value.KindList, "pop", lmPop)
	value.RegisterMethod(value.KindList, "slice", lmSlice)
	value.RegisterMethod(value.KindList, "reverse", lmReverse)
	value.RegisterMethod(value.KindList, "sort", lmSort)
	value.RegisterMethod(value.KindList, "contains", lmContains)
	value.RegisterMethod(value.KindList, "count", lmCount)
	value.RegisterMethod(value.KindList, "index", lmIndex)
	value.RegisterMethod(value.KindList, "rindex", lmRindex)
	value.RegisterMethod(value.KindList, "extend", lmExtend)
	value.RegisterMethod(value.KindList, "clear", lmClear)
	value.RegisterMethod(value.KindList, "copy", lmCopy)
}

func asList(args []value.Value, method string) (*value.List, []value.Value, error) {
	l, ok := args[0].(*value.List)
	if !ok {
		return nil, nil, fmt.Errorf("%s() requires a list receiver", method)
	}
	return l, args[1:], nil
}

func lmSize(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, _, err := asList(args, "size")
	if err != nil {
		return nil, err
	}
	return mgLen(l)
}

// lmAdd implements list.add(x): original_source's listlib.c append, named
// add to match spec.md §4.7's method list rather than "append".
func lmAdd(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, rest, err := asList(args, "add")
	if err != nil {
		return nil, err
	}
	for _, v := range rest {
		l.Append(v)
	}
	return value.Null, nil
}

func lmInsert(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, rest, err := asList(args, "insert")
	if err != nil {
		return nil, err
	}
	if len(rest) != 2 {
		return nil, fmt.Errorf("insert() takes exactly 2 arguments, got %d", len(rest))
	}
	idx, ok := rest[0].(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("insert() index must be an integer")
	}
	n := int(idx.V)
	if n < 0 {
		n += len(l.Items)
	}
	if n < 0 {
		n = 0
	}
	if n > len(l.Items) {
		n = len(l.Items)
	}
	l.Items = append(l.Items, nil)
	copy(l.Items[n+1:], l.Items[n:])
	l.Items[n] = value.Retain(rest[1])
	return value.Null, nil
}

func lmRemove(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, rest, err := asList(args, "remove")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("remove() takes exactly 1 argument, got %d", len(rest))
	}
	for i, item := range l.Items {
		if value.Equal(item, rest[0]) {
			value.Release(item)
			l.Items = append(l.Items[:i], l.Items[i+1:]...)
			return value.Null, nil
		}
	}
	return nil, fmt.Errorf("remove(): value not found in list")
}

func lmPop(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, rest, err := asList(args, "pop")
	if err != nil {
		return nil, err
	}
	if len(l.Items) == 0 {
		return nil, fmt.Errorf("pop() from empty list")
	}
	n := len(l.Items) - 1
	if len(rest) == 1 {
		idx, ok := rest[0].(*value.Integer)
		if !ok {
			return nil, fmt.Errorf("pop() index must be an integer")
		}
		n = int(idx.V)
		if n < 0 {
			n += len(l.Items)
		}
	} else if len(rest) != 0 {
		return nil, fmt.Errorf("pop() takes at most 1 argument, got %d", len(rest))
	}
	if n < 0 || n >= len(l.Items) {
		return nil, fmt.Errorf("pop() index out of range")
	}
	v := l.Items[n]
	l.Items = append(l.Items[:n], l.Items[n+1:]...)
	return v, nil
}

func lmSlice(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, rest, err := asList(args, "slice")
	if err != nil {
		return nil, err
	}
	from, to, step, err := parseSliceArgs(rest)
	if err != nil {
		return nil, err
	}
	return value.Slice(l, from, to, step)
}

func lmReverse(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, _, err := asList(args, "reverse")
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(l.Items)-1; i < j; i, j = i+1, j-1 {
		l.Items[i], l.Items[j] = l.Items[j], l.Items[i]
	}
	return value.Null, nil
}

// lmSort implements list.sort([cmp]) (original_source's listlib.c sort,
// backed by a user comparator callback when given). Without a comparator
// it orders by the §4.4 Compare table; with one, it calls it through
// Instance.Call so a Go-level callback can invoke an arbitrary ModelGen
// function without the value package depending on interp.
func lmSort(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, rest, err := asList(args, "sort")
	if err != nil {
		return nil, err
	}
	if len(rest) > 1 {
		return nil, fmt.Errorf("sort() takes at most 1 argument, got %d", len(rest))
	}
	var sortErr error
	if len(rest) == 1 {
		cmp := rest[0]
		if !cmp.Kind().IsCallable() {
			return nil, fmt.Errorf("sort() comparator must be callable")
		}
		if inst.Call == nil {
			return nil, fmt.Errorf("sort() comparator requires an active evaluator")
		}
		sort.SliceStable(l.Items, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			res, err := inst.Call(cmp, []value.Value{l.Items[i], l.Items[j]})
			if err != nil {
				sortErr = err
				return false
			}
			n, ok := res.(*value.Integer)
			if !ok {
				sortErr = fmt.Errorf("sort() comparator must return an integer")
				return false
			}
			return n.V < 0
		})
	} else {
		sort.SliceStable(l.Items, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			c, err := value.Compare(l.Items[i], l.Items[j])
			if err != nil {
				sortErr = err
				return false
			}
			return c < 0
		})
	}
	if sortErr != nil {
		return nil, sortErr
	}
	return value.Null, nil
}

func lmContains(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, rest, err := asList(args, "contains")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("contains() takes exactly 1 argument, got %d", len(rest))
	}
	for _, item := range l.Items {
		if value.Equal(item, rest[0]) {
			return value.NewInteger(1), nil
		}
	}
	return value.NewInteger(0), nil
}

func lmCount(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, rest, err := asList(args, "count")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("count() takes exactly 1 argument, got %d", len(rest))
	}
	n := int32(0)
	for _, item := range l.Items {
		if value.Equal(item, rest[0]) {
			n++
		}
	}
	return value.NewInteger(n), nil
}

func lmIndex(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, rest, err := asList(args, "index")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("index() takes exactly 1 argument, got %d", len(rest))
	}
	for i, item := range l.Items {
		if value.Equal(item, rest[0]) {
			return value.NewInteger(int32(i)), nil
		}
	}
	return nil, fmt.Errorf("index(): value not found in list")
}

func lmRindex(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, rest, err := asList(args, "rindex")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("rindex() takes exactly 1 argument, got %d", len(rest))
	}
	for i := len(l.Items) - 1; i >= 0; i-- {
		if value.Equal(l.Items[i], rest[0]) {
			return value.NewInteger(int32(i)), nil
		}
	}
	return nil, fmt.Errorf("rindex(): value not found in list")
}

func lmExtend(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, rest, err := asList(args, "extend")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("extend() takes exactly 1 argument, got %d", len(rest))
	}
	other, ok := rest[0].(*value.List)
	if !ok {
		if t, ok := rest[0].(*value.Tuple); ok {
			for _, v := range t.Items {
				l.Append(v)
			}
			return value.Null, nil
		}
		return nil, fmt.Errorf("extend() requires a list or tuple")
	}
	for _, v := range other.Items {
		l.Append(v)
	}
	return value.Null, nil
}

func lmClear(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, _, err := asList(args, "clear")
	if err != nil {
		return nil, err
	}
	for _, v := range l.Items {
		value.Release(v)
	}
	l.Items = nil
	return value.Null, nil
}

func lmCopy(inst *value.Instance, args []value.Value) (value.Value, error) {
	l, _, err := asList(args, "copy")
	if err != nil {
		return nil, err
	}
	return value.NewList(l.Items...), nil
}

// newListModule backs the statically registered `list` module (§4.12),
// mirroring listlib.c's module-level exposure of the same operations the
// bound-method table offers on a receiver (original_source's dual
// function-and-method style).
func newListModule(inst *value.Instance) *value.Module {
	mod := value.NewModule("list", "<list>", nil, inst)
	set := func(name string, fn value.CFunc) { mod.Globals.Set(name, value.NewCFunction(name, fn)) }
	set("new", func(inst *value.Instance, args []value.Value) (value.Value, error) {
		return value.NewList(args...), nil
	})
	set("sort", lmSort)
	set("reverse", lmReverse)
	return mod
}

// parseSliceArgs turns a variadic (from, to, step) argument list, each
// possibly omitted via Null, into the pointers value.Slice expects.
func parseSliceArgs(args []value.Value) (from, to *int, step int, err error) {
	step = 1
	get := func(v value.Value) (*int, error) {
		switch n := v.(type) {
		case *value.Integer:
			i := int(n.V)
			return &i, nil
		case nil:
			return nil, nil
		default:
			if v == value.Null {
				return nil, nil
			}
			return nil, fmt.Errorf("slice() bounds must be integers")
		}
	}
	if len(args) >= 1 {
		if from, err = get(args[0]); err != nil {
			return nil, nil, 0, err
		}
	}
	if len(args) >= 2 {
		if to, err = get(args[1]); err != nil {
			return nil, nil, 0, err
		}
	}
	if len(args) >= 3 {
		n, ok := args[2].(*value.Integer)
		if !ok {
			return nil, nil, 0, fmt.Errorf("slice() step must be an integer")
		}
		step = int(n.V)
	}
	if len(args) > 3 {
		return nil, nil, 0, fmt.Errorf("slice() takes at most 3 arguments, got %d", len(args))
	}
	return from, to, step, nil
}
