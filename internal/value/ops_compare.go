package value

import "fmt"

// Equal implements `==` (§4.4): cross-kind comparisons are always false
// except for the numeric tower, where int and float compare by value.
func Equal(a, b Value) bool {
	a, b = TypeNameOrNull(a), TypeNameOrNull(b)
	if a == Null || b == Null {
		return a == b
	}
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
	}
	if as, ok := a.(*String); ok {
		if bs, ok := b.(*String); ok {
			return as.V == bs.V
		}
	}
	if al, ok := a.(*List); ok {
		if bl, ok := b.(*List); ok {
			return equalSeq(al.Items, bl.Items)
		}
	}
	if at, ok := a.(*Tuple); ok {
		if bt, ok := b.(*Tuple); ok {
			return equalSeq(at.Items, bt.Items)
		}
	}
	if am, ok := a.(*Map); ok {
		if bm, ok := b.(*Map); ok {
			return equalMap(am, bm)
		}
	}
	return a == b
}

// equalMap implements the map,map row of §4.4's table: same keys
// (regardless of order) and equal values at each key.
func equalMap(a, b *Map) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

func equalSeq(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Compare implements the ordering used by `< <= > >=` (§4.4). Only
// numbers and strings are ordered; anything else is a fatal error.
func Compare(a, b Value) (int, error) {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if as, ok := a.(*String); ok {
		if bs, ok := b.(*String); ok {
			switch {
			case as.V < bs.V:
				return -1, nil
			case as.V > bs.V:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return 0, fmt.Errorf("'<' not supported between instances of %s and %s", TypeNameOrNull(a).Kind(), TypeNameOrNull(b).Kind())
}
