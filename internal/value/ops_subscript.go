package value

import "fmt"

// normIndex resolves a possibly-negative index against length n, the way
// Python-family languages do: -1 is the last element.
func normIndex(i, n int) int {
	if i < 0 {
		return i + n
	}
	return i
}

// Index implements the single-element form of `seq[i]` (§4.6): List,
// Tuple, String by integer, Map by string key.
func Index(seq Value, idx Value) (Value, error) {
	switch s := seq.(type) {
	case *List:
		i, ok := idx.(*Integer)
		if !ok {
			return nil, fmt.Errorf("list indices must be integers, not %s", TypeNameOrNull(idx).Kind())
		}
		n := normIndex(int(i.V), len(s.Items))
		if n < 0 || n >= len(s.Items) {
			return nil, fmt.Errorf("list index out of range")
		}
		return s.Items[n], nil
	case *Tuple:
		i, ok := idx.(*Integer)
		if !ok {
			return nil, fmt.Errorf("tuple indices must be integers, not %s", TypeNameOrNull(idx).Kind())
		}
		n := normIndex(int(i.V), len(s.Items))
		if n < 0 || n >= len(s.Items) {
			return nil, fmt.Errorf("tuple index out of range")
		}
		return s.Items[n], nil
	case *String:
		i, ok := idx.(*Integer)
		if !ok {
			return nil, fmt.Errorf("string indices must be integers, not %s", TypeNameOrNull(idx).Kind())
		}
		runes := []rune(s.V)
		n := normIndex(int(i.V), len(runes))
		if n < 0 || n >= len(runes) {
			return nil, fmt.Errorf("string index out of range")
		}
		return NewString(string(runes[n])), nil
	case *Map:
		key, ok := idx.(*String)
		if !ok {
			return nil, fmt.Errorf("map keys must be strings, not %s", TypeNameOrNull(idx).Kind())
		}
		v, ok := s.Get(key.V)
		if !ok {
			return Null, nil
		}
		return v, nil
	default:
		return nil, fmt.Errorf("'%s' object is not subscriptable", TypeNameOrNull(seq).Kind())
	}
}

// SetIndex implements `seq[i] = v` for the mutable kinds (List, Map).
func SetIndex(seq, idx, v Value) error {
	switch s := seq.(type) {
	case *List:
		i, ok := idx.(*Integer)
		if !ok {
			return fmt.Errorf("list indices must be integers, not %s", TypeNameOrNull(idx).Kind())
		}
		n := normIndex(int(i.V), len(s.Items))
		if n < 0 || n >= len(s.Items) {
			return fmt.Errorf("list index out of range")
		}
		Release(s.Items[n])
		s.Items[n] = Retain(v)
		return nil
	case *Map:
		key, ok := idx.(*String)
		if !ok {
			return fmt.Errorf("map keys must be strings, not %s", TypeNameOrNull(idx).Kind())
		}
		s.Set(key.V, v)
		return nil
	default:
		return fmt.Errorf("'%s' object does not support item assignment", TypeNameOrNull(seq).Kind())
	}
}

// sliceBounds resolves a `from:to:step` range against length n, filling in
// the Python-family defaults for an omitted bound depending on step sign.
func sliceBounds(from, to *int, step int, n int) (start, stop int) {
	if step == 0 {
		step = 1
	}
	if step > 0 {
		start, stop = 0, n
	} else {
		start, stop = n-1, -1
	}
	if from != nil {
		start = normIndex(*from, n)
	}
	if to != nil {
		stop = normIndex(*to, n)
	}
	return start, stop
}

// Slice implements the `seq[from:to:step]` form (§4.6). from, to may be
// nil for an omitted bound; step defaults to 1.
func Slice(seq Value, from, to *int, step int) (Value, error) {
	if step == 0 {
		step = 1
	}
	switch s := seq.(type) {
	case *List:
		start, stop := sliceBounds(from, to, step, len(s.Items))
		return NewList(sliceItems(s.Items, start, stop, step)...), nil
	case *Tuple:
		start, stop := sliceBounds(from, to, step, len(s.Items))
		return NewList(sliceItems(s.Items, start, stop, step)...), nil
	case *String:
		runes := []rune(s.V)
		start, stop := sliceBounds(from, to, step, len(runes))
		var out []rune
		if step > 0 {
			for i := start; i < stop && i < len(runes); i += step {
				if i >= 0 {
					out = append(out, runes[i])
				}
			}
		} else {
			for i := start; i > stop && i >= 0; i += step {
				if i < len(runes) {
					out = append(out, runes[i])
				}
			}
		}
		return NewString(string(out)), nil
	default:
		return nil, fmt.Errorf("'%s' object is not sliceable", TypeNameOrNull(seq).Kind())
	}
}

func sliceItems(items []Value, start, stop, step int) []Value {
	var out []Value
	if step > 0 {
		for i := start; i < stop && i < len(items); i += step {
			if i >= 0 {
				out = append(out, items[i])
			}
		}
	} else {
		for i := start; i > stop && i >= 0; i += step {
			if i < len(items) {
				out = append(out, items[i])
			}
		}
	}
	return out
}
