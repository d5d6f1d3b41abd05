package baselib

import (
	"fmt"
	"strings"

	"github.com/mikenno/modelgen/internal/value"
)

// registerStringMethods wires String's bound methods (§4.7: "length,
// upper, lower, split, join, etc. as implemented"). String is immutable,
// so every method here returns a new value rather than mutating.
func registerStringMethods() {
	value.RegisterMethod(value.KindString, "size", smSize)
	value.RegisterMethod(value.KindString, "length", smSize)
	value.RegisterMethod(value.KindString, "upper", smUpper)
	value.RegisterMethod(value.KindString, "lower", smLower)
	value.RegisterMethod(value.KindString, "split", smSplit)
	value.RegisterMethod(value.KindString, "join", smJoin)
	value.RegisterMethod(value.KindString, "strip", smStrip)
	value.RegisterMethod(value.KindString, "slice", smSlice)
	value.RegisterMethod(value.KindString, "contains", smContains)
	value.RegisterMethod(value.KindString, "index", smIndex)
	value.RegisterMethod(value.KindString, "replace", smReplace)
}

func asString(args []value.Value, method string) (*value.String, []value.Value, error) {
	s, ok := args[0].(*value.String)
	if !ok {
		return nil, nil, fmt.Errorf("%s() requires a string receiver", method)
	}
	return s, args[1:], nil
}

func smSize(inst *value.Instance, args []value.Value) (value.Value, error) {
	s, _, err := asString(args, "size")
	if err != nil {
		return nil, err
	}
	return mgLen(s)
}

func smUpper(inst *value.Instance, args []value.Value) (value.Value, error) {
	s, _, err := asString(args, "upper")
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.ToUpper(s.V)), nil
}

func smLower(inst *value.Instance, args []value.Value) (value.Value, error) {
	s, _, err := asString(args, "lower")
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.ToLower(s.V)), nil
}

func smSplit(inst *value.Instance, args []value.Value) (value.Value, error) {
	s, rest, err := asString(args, "split")
	if err != nil {
		return nil, err
	}
	sep := " "
	if len(rest) == 1 {
		sepStr, ok := rest[0].(*value.String)
		if !ok {
			return nil, fmt.Errorf("split() separator must be a string")
		}
		sep = sepStr.V
	} else if len(rest) != 0 {
		return nil, fmt.Errorf("split() takes at most 1 argument, got %d", len(rest))
	}
	var parts []string
	if sep == "" {
		parts = strings.Fields(s.V)
	} else {
		parts = strings.Split(s.V, sep)
	}
	items := make([]value.Value, len(parts))
	for i, p := range parts {
		items[i] = value.NewString(p)
	}
	return value.NewList(items...), nil
}

func smJoin(inst *value.Instance, args []value.Value) (value.Value, error) {
	s, rest, err := asString(args, "join")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("join() takes exactly 1 argument, got %d", len(rest))
	}
	parts, err := stringItems(rest[0])
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.Join(parts, s.V)), nil
}

func stringItems(v value.Value) ([]string, error) {
	var items []value.Value
	switch t := v.(type) {
	case *value.List:
		items = t.Items
	case *value.Tuple:
		items = t.Items
	default:
		return nil, fmt.Errorf("join() requires a list or tuple of strings")
	}
	out := make([]string, len(items))
	for i, v := range items {
		s, ok := v.(*value.String)
		if !ok {
			return nil, fmt.Errorf("join() requires a list or tuple of strings")
		}
		out[i] = s.V
	}
	return out, nil
}

func smStrip(inst *value.Instance, args []value.Value) (value.Value, error) {
	s, _, err := asString(args, "strip")
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.TrimSpace(s.V)), nil
}

func smSlice(inst *value.Instance, args []value.Value) (value.Value, error) {
	s, rest, err := asString(args, "slice")
	if err != nil {
		return nil, err
	}
	from, to, step, err := parseSliceArgs(rest)
	if err != nil {
		return nil, err
	}
	return value.Slice(s, from, to, step)
}

func smContains(inst *value.Instance, args []value.Value) (value.Value, error) {
	s, rest, err := asString(args, "contains")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("contains() takes exactly 1 argument, got %d", len(rest))
	}
	sub, ok := rest[0].(*value.String)
	if !ok {
		return nil, fmt.Errorf("contains() argument must be a string")
	}
	if strings.Contains(s.V, sub.V) {
		return value.NewInteger(1), nil
	}
	return value.NewInteger(0), nil
}

func smIndex(inst *value.Instance, args []value.Value) (value.Value, error) {
	s, rest, err := asString(args, "index")
	if err != nil {
		return nil, err
	}
	if len(rest) != 1 {
		return nil, fmt.Errorf("index() takes exactly 1 argument, got %d", len(rest))
	}
	sub, ok := rest[0].(*value.String)
	if !ok {
		return nil, fmt.Errorf("index() argument must be a string")
	}
	i := strings.Index(s.V, sub.V)
	if i < 0 {
		return nil, fmt.Errorf("index(): substring not found")
	}
	return value.NewInteger(int32(i)), nil
}

func smReplace(inst *value.Instance, args []value.Value) (value.Value, error) {
	s, rest, err := asString(args, "replace")
	if err != nil {
		return nil, err
	}
	if len(rest) != 2 {
		return nil, fmt.Errorf("replace() takes exactly 2 arguments, got %d", len(rest))
	}
	old, ok := rest[0].(*value.String)
	if !ok {
		return nil, fmt.Errorf("replace() arguments must be strings")
	}
	repl, ok := rest[1].(*value.String)
	if !ok {
		return nil, fmt.Errorf("replace() arguments must be strings")
	}
	return value.NewString(strings.ReplaceAll(s.V, old.V, repl.V)), nil
}
