package baselib

import (
	"fmt"
	"strconv"

	"github.com/mikenno/modelgen/internal/value"
)

// newBaseModule builds the Instance's base module (§3.6, §4.8): the
// globals every other module falls back to once its own globals miss,
// grounded on original_source/modules/baselib.c's export table (print,
// range, len, type, int, float, str) plus mathlib.c's min/max/abs, which
// live in base rather than math in the original source.
func newBaseModule(inst *value.Instance) *value.Module {
	mod := value.NewModule("", "<base>", nil, inst)
	g := mod.Globals

	g.Set("true", value.NewInteger(1))
	g.Set("false", value.NewInteger(0))
	g.Set("version", value.NewTuple(value.NewInteger(1), value.NewInteger(0), value.NewInteger(0)))

	set := func(name string, fn value.CFunc) { g.Set(name, value.NewCFunction(name, fn)) }

	set("print", biPrint)
	set("range", biRange)
	set("len", biLen)
	set("type", biType)
	set("int", biInt)
	set("float", biFloat)
	set("str", biStr)
	set("min", biMin)
	set("max", biMax)
	set("abs", biAbs)

	return mod
}

func biPrint(inst *value.Instance, args []value.Value) (value.Value, error) {
	for i, a := range args {
		if i > 0 {
			inst.Stdout.WriteString(" ")
		}
		inst.Stdout.WriteString(a.Display())
	}
	inst.Stdout.WriteString("\n")
	return value.Null, nil
}

// biRange implements range(stop) / range(start, stop[, step]) (§1,
// original_source's _mg_rangei/_mg_rangef): the result is a List of
// Integer, unless any argument is a Float, in which case it is a List of
// Float, matching the C implementation's int/float dual form.
func biRange(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) < 1 || len(args) > 3 {
		return nil, fmt.Errorf("range() takes 1 to 3 arguments, got %d", len(args))
	}
	isFloat := false
	for _, a := range args {
		if _, ok := a.(*value.Float); ok {
			isFloat = true
		}
	}
	if isFloat {
		nums := make([]float32, len(args))
		for i, a := range args {
			f, ok := asNumber(a)
			if !ok {
				return nil, fmt.Errorf("range() arguments must be numeric")
			}
			nums[i] = f
		}
		start, stop, step := float32(0), nums[0], float32(1)
		if len(nums) >= 2 {
			start, stop = nums[0], nums[1]
		}
		if len(nums) == 3 {
			step = nums[2]
		}
		if step == 0 {
			return nil, fmt.Errorf("range() step must not be zero")
		}
		var out []value.Value
		if step > 0 {
			for v := start; v < stop; v += step {
				out = append(out, value.NewFloat(v))
			}
		} else {
			for v := start; v > stop; v += step {
				out = append(out, value.NewFloat(v))
			}
		}
		return value.NewList(out...), nil
	}

	ints := make([]int32, len(args))
	for i, a := range args {
		n, ok := a.(*value.Integer)
		if !ok {
			return nil, fmt.Errorf("range() arguments must be integers")
		}
		ints[i] = n.V
	}
	start, stop, step := int32(0), ints[0], int32(1)
	if len(ints) >= 2 {
		start, stop = ints[0], ints[1]
	}
	if len(ints) == 3 {
		step = ints[2]
	}
	if step == 0 {
		return nil, fmt.Errorf("range() step must not be zero")
	}
	var out []value.Value
	if step > 0 {
		for v := start; v < stop; v += step {
			out = append(out, value.NewInteger(v))
		}
	} else {
		for v := start; v > stop; v += step {
			out = append(out, value.NewInteger(v))
		}
	}
	return value.NewList(out...), nil
}

func biLen(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("len() takes exactly 1 argument, got %d", len(args))
	}
	return mgLen(args[0])
}

// mgLen backs both len() and the list/map size() bound method
// (original_source's shared mg_len helper in listlib.c/maplib.c).
func mgLen(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case *value.List:
		return value.NewInteger(int32(len(t.Items))), nil
	case *value.Tuple:
		return value.NewInteger(int32(len(t.Items))), nil
	case *value.String:
		return value.NewInteger(int32(len([]rune(t.V)))), nil
	case *value.Map:
		return value.NewInteger(int32(t.Len())), nil
	default:
		return nil, fmt.Errorf("object of type %s has no len()", value.TypeName(v))
	}
}

func biType(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type() takes exactly 1 argument, got %d", len(args))
	}
	return value.NewString(value.TypeName(args[0])), nil
}

func biInt(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("int() takes exactly 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *value.Integer:
		return v, nil
	case *value.Float:
		return value.NewInteger(int32(v.V)), nil
	case *value.String:
		n, err := strconv.ParseInt(v.V, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid literal for int(): %q", v.V)
		}
		return value.NewInteger(int32(n)), nil
	default:
		return nil, fmt.Errorf("int() argument must be a number or string, not %s", value.TypeName(args[0]))
	}
}

func biFloat(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("float() takes exactly 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *value.Float:
		return v, nil
	case *value.Integer:
		return value.NewFloat(float32(v.V)), nil
	case *value.String:
		f, err := strconv.ParseFloat(v.V, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid literal for float(): %q", v.V)
		}
		return value.NewFloat(float32(f)), nil
	default:
		return nil, fmt.Errorf("float() argument must be a number or string, not %s", value.TypeName(args[0]))
	}
}

func biStr(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("str() takes exactly 1 argument, got %d", len(args))
	}
	return value.NewString(args[0].Display()), nil
}

func asNumber(v value.Value) (float32, bool) {
	switch n := v.(type) {
	case *value.Integer:
		return float32(n.V), true
	case *value.Float:
		return n.V, true
	default:
		return 0, false
	}
}

func biMin(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("min() takes at least 1 argument, got 0")
	}
	return minMax(args, false)
}

func biMax(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("max() takes at least 1 argument, got 0")
	}
	return minMax(args, true)
}

func minMax(args []value.Value, wantMax bool) (value.Value, error) {
	best := args[0]
	bf, ok := asNumber(best)
	if !ok {
		return nil, fmt.Errorf("min()/max() arguments must be numeric")
	}
	for _, a := range args[1:] {
		f, ok := asNumber(a)
		if !ok {
			return nil, fmt.Errorf("min()/max() arguments must be numeric")
		}
		if (wantMax && f > bf) || (!wantMax && f < bf) {
			best, bf = a, f
		}
	}
	return best, nil
}

func biAbs(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("abs() takes exactly 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case *value.Integer:
		if v.V < 0 {
			return value.NewInteger(-v.V), nil
		}
		return v, nil
	case *value.Float:
		if v.V < 0 {
			return value.NewFloat(-v.V), nil
		}
		return v, nil
	default:
		return nil, fmt.Errorf("abs() argument must be numeric, not %s", value.TypeName(args[0]))
	}
}
