package baselib

import (
	"fmt"

	"github.com/mikenno/modelgen/internal/value"
)

// registerTupleMethods wires Tuple's bound methods (§4.7). Tuple has no
// mutators (§3.4: "no tuple mutators in the bound-method table"), so the
// names shared with List that would mutate in place instead build and
// return a new Tuple, matching Tuple's copy-on-"mutation" design note in
// internal/value/list.go.
func registerTupleMethods() {
	value.RegisterMethod(value.KindTuple, "size", tmSize)
	value.RegisterMethod(value.KindTuple, "slice", tmSlice)
	value.RegisterMethod(value.KindTuple, "reverse", tmReverse)
	value.RegisterMethod(value.KindTuple, "contains", tmContains)
	value.RegisterMethod(value.KindTuple, "count", tmCount)
	value.RegisterMethod(value.KindTuple, "index", tmIndex)
	value.RegisterMethod(value.KindTuple, "rindex", tmRindex)
	value.RegisterMethod(value.KindTuple, "copy", tmCopy)
}

func asTuple(args []value.Value, method string) (*value.Tuple, []value.Value, error) {
	t, ok := args[0].(*value.Tuple)
	if !ok {
		return nil, nil, fmt.Errorf("%s() requires a tuple receiver", method)
	}
	return t, args[1:], nil
}

func tmSize(inst *value.Instance, args []value.Value) (value.Value, error) {
	t, _, err := asTuple(args, "size")
	if err != nil {
		return nil, err
	}
	return mgLen(t)
}

func tmSlice(inst *value.Instance, args []value.Value) (value.Value, error) {
	t, rest, err := asTuple(args, "slice")
	if err != nil {
		return nil, err
	}
	from, to, step, err := parseSliceArgs(rest)
	if err != nil {
		return nil, err
	}
	return value.Slice(t, from, to, step)
}

func tmReverse(inst *value.Instance, args []value.Value) (value.Value, error) {
	t, _, err := asTuple(args, "reverse")
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(t.Items))
	for i, v := range t.Items {
		out[len(out)-1-i] = v
	}
	return value.NewTuple(out...), nil
}

func tmContains(inst *value.Instance, args []value.Value) (value.Value, error) {
	t, rest, err := asTuple(args, "contains")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("contains() takes exactly 1 argument, got %d", len(rest))
	}
	for _, item := range t.Items {
		if value.Equal(item, rest[0]) {
			return value.NewInteger(1), nil
		}
	}
	return value.NewInteger(0), nil
}

func tmCount(inst *value.Instance, args []value.Value) (value.Value, error) {
	t, rest, err := asTuple(args, "count")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("count() takes exactly 1 argument, got %d", len(rest))
	}
	n := int32(0)
	for _, item := range t.Items {
		if value.Equal(item, rest[0]) {
			n++
		}
	}
	return value.NewInteger(n), nil
}

func tmIndex(inst *value.Instance, args []value.Value) (value.Value, error) {
	t, rest, err := asTuple(args, "index")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("index() takes exactly 1 argument, got %d", len(rest))
	}
	for i, item := range t.Items {
		if value.Equal(item, rest[0]) {
			return value.NewInteger(int32(i)), nil
		}
	}
	return nil, fmt.Errorf("index(): value not found in tuple")
}

func tmRindex(inst *value.Instance, args []value.Value) (value.Value, error) {
	t, rest, err := asTuple(args, "rindex")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("rindex() takes exactly 1 argument, got %d", len(rest))
	}
	for i := len(t.Items) - 1; i >= 0; i-- {
		if value.Equal(t.Items[i], rest[0]) {
			return value.NewInteger(int32(i)), nil
		}
	}
	return nil, fmt.Errorf("rindex(): value not found in tuple")
}

func tmCopy(inst *value.Instance, args []value.Value) (value.Value, error) {
	t, _, err := asTuple(args, "copy")
	if err != nil {
		return nil, err
	}
	return value.NewTuple(t.Items...), nil
}
