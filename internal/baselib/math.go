package baselib

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mikenno/modelgen/internal/value"
)

// newMathModule backs the statically registered `math` module (§4.12),
// grounded on original_source/modules/mathlib.c and src/libs/mathlib.c's
// trig/exponential/rounding export table. All values are computed in
// float32 (§3.4: Float(f32)) even though Go's math package works in
// float64, matching the C original's single-precision float math.
func newMathModule(inst *value.Instance) *value.Module {
	mod := value.NewModule("math", "<math>", nil, inst)
	set := func(name string, fn value.CFunc) { mod.Globals.Set(name, value.NewCFunction(name, fn)) }

	mod.Globals.Set("pi", value.NewFloat(float32(math.Pi)))
	mod.Globals.Set("e", value.NewFloat(float32(math.E)))

	set("abs", biAbs)
	set("min", biMin)
	set("max", biMax)
	set("sqrt", unary(func(f float64) float64 { return math.Sqrt(f) }))
	set("sin", unary(math.Sin))
	set("cos", unary(math.Cos))
	set("tan", unary(math.Tan))
	set("asin", unary(math.Asin))
	set("acos", unary(math.Acos))
	set("atan", unary(math.Atan))
	set("exp", unary(math.Exp))
	set("log", unary(math.Log))
	set("floor", unary(math.Floor))
	set("ceil", unary(math.Ceil))
	set("round", unary(math.Round))
	set("sign", mathSign)
	set("pow", mathPow)
	set("powi", mathPowi)
	set("deg", unary(func(f float64) float64 { return f * 180 / math.Pi }))
	set("rad", unary(func(f float64) float64 { return f * math.Pi / 180 }))
	set("even", mathEven)
	set("odd", mathOdd)
	set("clamp", mathClamp)
	set("lerp", mathLerp)
	set("normalize", mathNormalize)
	set("remap", mathRemap)
	set("wrap", mathWrap)
	set("sum", mathSum)
	set("multiple", mathMultiple)
	set("nearest", mathNearest)
	set("snap", mathSnap)
	set("snap_floor", mathSnapFloor)
	set("snap_ceil", mathSnapCeil)
	set("ping_pong", mathPingPong)
	set("approximately", mathApproximately)
	set("random", mathRandom)
	set("seed", mathSeed)

	return mod
}

func arg1(args []value.Value, name string) (float64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s() takes exactly 1 argument, got %d", name, len(args))
	}
	f, ok := asNumber(args[0])
	if !ok {
		return 0, fmt.Errorf("%s() argument must be numeric", name)
	}
	return float64(f), nil
}

func unary(fn func(float64) float64) value.CFunc {
	return func(inst *value.Instance, args []value.Value) (value.Value, error) {
		f, err := arg1(args, "math")
		if err != nil {
			return nil, err
		}
		return value.NewFloat(float32(fn(f))), nil
	}
}

func mathSign(inst *value.Instance, args []value.Value) (value.Value, error) {
	f, err := arg1(args, "sign")
	if err != nil {
		return nil, err
	}
	switch {
	case f > 0:
		return value.NewFloat(1), nil
	case f < 0:
		return value.NewFloat(-1), nil
	default:
		return value.NewFloat(0), nil
	}
}

func mathPow(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("pow() takes exactly 2 arguments, got %d", len(args))
	}
	a, aok := asNumber(args[0])
	b, bok := asNumber(args[1])
	if !aok || !bok {
		return nil, fmt.Errorf("pow() arguments must be numeric")
	}
	return value.NewFloat(float32(math.Pow(float64(a), float64(b)))), nil
}

func mathPowi(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("powi() takes exactly 2 arguments, got %d", len(args))
	}
	base, ok := args[0].(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("powi() base must be an integer")
	}
	exp, ok := args[1].(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("powi() exponent must be an integer")
	}
	result := int32(1)
	for i := int32(0); i < exp.V; i++ {
		result *= base.V
	}
	return value.NewInteger(result), nil
}

func mathEven(inst *value.Instance, args []value.Value) (value.Value, error) {
	n, ok := singleInteger(args, "even")
	if !ok {
		return nil, fmt.Errorf("even() argument must be an integer")
	}
	if n%2 == 0 {
		return value.NewInteger(1), nil
	}
	return value.NewInteger(0), nil
}

func mathOdd(inst *value.Instance, args []value.Value) (value.Value, error) {
	n, ok := singleInteger(args, "odd")
	if !ok {
		return nil, fmt.Errorf("odd() argument must be an integer")
	}
	if n%2 != 0 {
		return value.NewInteger(1), nil
	}
	return value.NewInteger(0), nil
}

func singleInteger(args []value.Value, name string) (int32, bool) {
	if len(args) != 1 {
		return 0, false
	}
	n, ok := args[0].(*value.Integer)
	if !ok {
		return 0, false
	}
	return n.V, true
}

func mathClamp(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("clamp() takes exactly 3 arguments, got %d", len(args))
	}
	v, vok := asNumber(args[0])
	lo, lok := asNumber(args[1])
	hi, hok := asNumber(args[2])
	if !vok || !lok || !hok {
		return nil, fmt.Errorf("clamp() arguments must be numeric")
	}
	switch {
	case v < lo:
		return value.NewFloat(lo), nil
	case v > hi:
		return value.NewFloat(hi), nil
	default:
		return value.NewFloat(v), nil
	}
}

func mathLerp(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("lerp() takes exactly 3 arguments, got %d", len(args))
	}
	a, aok := asNumber(args[0])
	b, bok := asNumber(args[1])
	t, tok := asNumber(args[2])
	if !aok || !bok || !tok {
		return nil, fmt.Errorf("lerp() arguments must be numeric")
	}
	return value.NewFloat(a + (b-a)*t), nil
}

func mathNormalize(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("normalize() takes exactly 3 arguments, got %d", len(args))
	}
	v, vok := asNumber(args[0])
	lo, lok := asNumber(args[1])
	hi, hok := asNumber(args[2])
	if !vok || !lok || !hok {
		return nil, fmt.Errorf("normalize() arguments must be numeric")
	}
	if hi == lo {
		return nil, fmt.Errorf("normalize() requires distinct bounds")
	}
	return value.NewFloat((v - lo) / (hi - lo)), nil
}

func mathRemap(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 5 {
		return nil, fmt.Errorf("remap() takes exactly 5 arguments, got %d", len(args))
	}
	nums := make([]float32, 5)
	for i, a := range args {
		f, ok := asNumber(a)
		if !ok {
			return nil, fmt.Errorf("remap() arguments must be numeric")
		}
		nums[i] = f
	}
	v, srcLo, srcHi, dstLo, dstHi := nums[0], nums[1], nums[2], nums[3], nums[4]
	if srcHi == srcLo {
		return nil, fmt.Errorf("remap() requires distinct source bounds")
	}
	t := (v - srcLo) / (srcHi - srcLo)
	return value.NewFloat(dstLo + (dstHi-dstLo)*t), nil
}

func mathWrap(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("wrap() takes exactly 3 arguments, got %d", len(args))
	}
	v, vok := asNumber(args[0])
	lo, lok := asNumber(args[1])
	hi, hok := asNumber(args[2])
	if !vok || !lok || !hok {
		return nil, fmt.Errorf("wrap() arguments must be numeric")
	}
	span := hi - lo
	if span == 0 {
		return nil, fmt.Errorf("wrap() requires distinct bounds")
	}
	w := float32(math.Mod(float64(v-lo), float64(span)))
	if w < 0 {
		w += span
	}
	return value.NewFloat(lo + w), nil
}

func mathSum(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("sum() takes exactly 1 argument, got %d", len(args))
	}
	var items []value.Value
	switch t := args[0].(type) {
	case *value.List:
		items = t.Items
	case *value.Tuple:
		items = t.Items
	default:
		return nil, fmt.Errorf("sum() requires a list or tuple")
	}
	var total float32
	allInt := true
	var itotal int32
	for _, v := range items {
		f, ok := asNumber(v)
		if !ok {
			return nil, fmt.Errorf("sum() elements must be numeric")
		}
		total += f
		if n, ok := v.(*value.Integer); ok {
			itotal += n.V
		} else {
			allInt = false
		}
	}
	if allInt {
		return value.NewInteger(itotal), nil
	}
	return value.NewFloat(total), nil
}

func mathMultiple(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("multiple() takes exactly 2 arguments, got %d", len(args))
	}
	a, aok := args[0].(*value.Integer)
	b, bok := args[1].(*value.Integer)
	if !aok || !bok {
		return nil, fmt.Errorf("multiple() arguments must be integers")
	}
	if b.V == 0 {
		return nil, fmt.Errorf("multiple() divisor must not be zero")
	}
	if a.V%b.V == 0 {
		return value.NewInteger(1), nil
	}
	return value.NewInteger(0), nil
}

func mathNearest(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("nearest() takes exactly 2 arguments, got %d", len(args))
	}
	v, vok := asNumber(args[0])
	step, sok := asNumber(args[1])
	if !vok || !sok || step == 0 {
		return nil, fmt.Errorf("nearest() arguments must be numeric and step nonzero")
	}
	return value.NewFloat(float32(math.Round(float64(v/step))) * step), nil
}

func mathSnap(inst *value.Instance, args []value.Value) (value.Value, error) {
	return mathNearest(inst, args)
}

func mathSnapFloor(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("snap_floor() takes exactly 2 arguments, got %d", len(args))
	}
	v, vok := asNumber(args[0])
	step, sok := asNumber(args[1])
	if !vok || !sok || step == 0 {
		return nil, fmt.Errorf("snap_floor() arguments must be numeric and step nonzero")
	}
	return value.NewFloat(float32(math.Floor(float64(v/step))) * step), nil
}

func mathSnapCeil(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("snap_ceil() takes exactly 2 arguments, got %d", len(args))
	}
	v, vok := asNumber(args[0])
	step, sok := asNumber(args[1])
	if !vok || !sok || step == 0 {
		return nil, fmt.Errorf("snap_ceil() arguments must be numeric and step nonzero")
	}
	return value.NewFloat(float32(math.Ceil(float64(v/step))) * step), nil
}

func mathPingPong(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("ping_pong() takes exactly 2 arguments, got %d", len(args))
	}
	v, vok := asNumber(args[0])
	length, lok := asNumber(args[1])
	if !vok || !lok || length == 0 {
		return nil, fmt.Errorf("ping_pong() arguments must be numeric and length nonzero")
	}
	period := length * 2
	m := float32(math.Mod(float64(v), float64(period)))
	if m < 0 {
		m += period
	}
	if m > length {
		m = period - m
	}
	return value.NewFloat(m), nil
}

// mathApproximately implements §9's epsilon float compare.
func mathApproximately(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, fmt.Errorf("approximately() takes 2 or 3 arguments, got %d", len(args))
	}
	a, aok := asNumber(args[0])
	b, bok := asNumber(args[1])
	if !aok || !bok {
		return nil, fmt.Errorf("approximately() arguments must be numeric")
	}
	eps := float32(1e-6)
	if len(args) == 3 {
		e, ok := asNumber(args[2])
		if !ok {
			return nil, fmt.Errorf("approximately() epsilon must be numeric")
		}
		eps = e
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if diff <= eps {
		return value.NewInteger(1), nil
	}
	return value.NewInteger(0), nil
}

var mathRand = rand.New(rand.NewSource(1))

func mathRandom(inst *value.Instance, args []value.Value) (value.Value, error) {
	switch len(args) {
	case 0:
		return value.NewFloat(float32(mathRand.Float64())), nil
	case 2:
		lo, lok := asNumber(args[0])
		hi, hok := asNumber(args[1])
		if !lok || !hok {
			return nil, fmt.Errorf("random() arguments must be numeric")
		}
		return value.NewFloat(lo + float32(mathRand.Float64())*(hi-lo)), nil
	default:
		return nil, fmt.Errorf("random() takes 0 or 2 arguments, got %d", len(args))
	}
}

func mathSeed(inst *value.Instance, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("seed() takes exactly 1 argument, got %d", len(args))
	}
	n, ok := args[0].(*value.Integer)
	if !ok {
		return nil, fmt.Errorf("seed() argument must be an integer")
	}
	mathRand = rand.New(rand.NewSource(int64(n.V)))
	return value.Null, nil
}
