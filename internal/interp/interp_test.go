package interp

import (
	"bytes"
	"testing"

	"github.com/mikenno/modelgen/internal/baselib"
	"github.com/mikenno/modelgen/internal/parse"
	"github.com/mikenno/modelgen/internal/value"
)

// runProgram parses and interprets src as the entry module of a fresh
// Instance, returning everything print() wrote to stdout.
func runProgram(t *testing.T, src string) (string, *value.Instance) {
	t.Helper()
	inst := value.NewInstance(nil)
	baselib.Install(inst)
	var out bytes.Buffer
	inst.Stdout = &out

	root, err := parse.ParseString("t.mg", src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	mod := value.NewModule("", "t.mg", root, inst)
	if err := New(inst, mod).Run(root); err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	return out.String(), inst
}

func runProgramExpectError(t *testing.T, src string) error {
	t.Helper()
	inst := value.NewInstance(nil)
	baselib.Install(inst)
	var out bytes.Buffer
	inst.Stdout = &out

	root, err := parse.ParseString("t.mg", src)
	if err != nil {
		return err
	}
	mod := value.NewModule("", "t.mg", root, inst)
	return New(inst, mod).Run(root)
}

// §8 scenario 1: arithmetic and print.
func TestScenarioArithmeticAndPrint(t *testing.T) {
	out, _ := runProgram(t, "print(1 + 2 * 3)\n")
	if out != "7\n" {
		t.Fatalf("got %q, want %q", out, "7\n")
	}
}

// §8 scenario 2: for-loop sum.
func TestScenarioForLoopSum(t *testing.T) {
	src := "s = 0\nfor i in range(1, 11): s += i\nprint(s)\n"
	out, _ := runProgram(t, src)
	if out != "55\n" {
		t.Fatalf("got %q, want %q", out, "55\n")
	}
}

// §8 scenario 3: closures capture the enclosing frame's locals.
func TestScenarioClosure(t *testing.T) {
	src := "func make_adder(n): return (x) -> x + n\n" +
		"add3 = make_adder(3)\n" +
		"print(add3(4))\n"
	out, _ := runProgram(t, src)
	if out != "7\n" {
		t.Fatalf("got %q, want %q", out, "7\n")
	}
}

// §8 scenario 4: parallel assignment.
func TestScenarioParallelAssignment(t *testing.T) {
	src := "a, b = 1, 2\nprint(a)\nprint(b)\n"
	out, _ := runProgram(t, src)
	if out != "1\n2\n" {
		t.Fatalf("got %q, want %q", out, "1\n2\n")
	}
}

// §8 scenario 5: map iteration preserves insertion order.
func TestScenarioMapIterationOrder(t *testing.T) {
	src := "m = {a: 1, b: 2, c: 3}\nfor k in m.keys(): print(k)\n"
	out, _ := runProgram(t, src)
	if out != "a\nb\nc\n" {
		t.Fatalf("got %q, want %q", out, "a\nb\nc\n")
	}
}

// §8 scenario 6: emit produces the right vertex count/shape for OBJ export.
func TestScenarioEmitProducesVertices(t *testing.T) {
	src := "emit (0,0,0, 0,0,1)\nemit (1,0,0, 0,0,1)\nemit (0,1,0, 0,0,1)\n"
	_, inst := runProgram(t, src)
	if len(inst.Vertices) != 3 {
		t.Fatalf("vertices = %d, want 3", len(inst.Vertices))
	}
	for _, v := range inst.Vertices {
		if len(v.Components) != 6 {
			t.Fatalf("vertex has %d components, want 6 (position+normal)", len(v.Components))
		}
	}
}

func TestShortCircuitAnd(t *testing.T) {
	src := "func boom(): assert false, \"should not run\"\n" +
		"x = false and boom()\n" +
		"print(x)\n"
	out, _ := runProgram(t, src)
	if out != "0\n" {
		t.Fatalf("got %q", out)
	}
}

func TestShortCircuitOr(t *testing.T) {
	src := "func boom(): assert false, \"should not run\"\n" +
		"x = true or boom()\n" +
		"print(x)\n"
	out, _ := runProgram(t, src)
	if out != "1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestCoalesceEvaluatesRHSOnlyWhenNull(t *testing.T) {
	out, _ := runProgram(t, "x = null ?? 5\nprint(x)\ny = 3 ?? 5\nprint(y)\n")
	if out != "5\n3\n" {
		t.Fatalf("got %q", out)
	}
}

func TestBreakUnwindsOneLoop(t *testing.T) {
	src := "for i in range(5):\n" +
		"  if i == 2:\n" +
		"    break\n" +
		"  print(i)\n"
	out, _ := runProgram(t, src)
	if out != "0\n1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestContinueSkipsRestOfBody(t *testing.T) {
	src := "for i in range(4):\n" +
		"  if i == 1:\n" +
		"    continue\n" +
		"  print(i)\n"
	out, _ := runProgram(t, src)
	if out != "0\n2\n3\n" {
		t.Fatalf("got %q", out)
	}
}

func TestReturnUnwindsToCallBoundary(t *testing.T) {
	src := "func f():\n" +
		"  for i in range(5):\n" +
		"    if i == 2:\n" +
		"      return i\n" +
		"  return -1\n" +
		"print(f())\n"
	out, _ := runProgram(t, src)
	if out != "2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestNameResolutionShadowAndDelete(t *testing.T) {
	src := "x = 1\n" +
		"func f(x):\n" +
		"  delete x\n" +
		"  return x\n" +
		"print(f(2))\n"
	out, _ := runProgram(t, src)
	if out != "1\n" {
		t.Fatalf("got %q, want %q (delete of a local should expose the outer global)", out, "1\n")
	}
}

func TestUndefinedNameIsFatal(t *testing.T) {
	err := runProgramExpectError(t, "print(nope)\n")
	if err == nil {
		t.Fatal("expected a runtime error for an undefined name")
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("got %T, want *RuntimeError", err)
	}
}

func TestNonCallableCalleeIsFatal(t *testing.T) {
	err := runProgramExpectError(t, "x = 5\nx()\n")
	if err == nil {
		t.Fatal("expected a runtime error for a non-callable callee")
	}
}

func TestAssertFailureIsFatal(t *testing.T) {
	err := runProgramExpectError(t, "assert 1 == 2, \"nope\"\n")
	if err == nil {
		t.Fatal("expected assert to fail fatally")
	}
	if got := err.Error(); got == "" {
		t.Fatal("expected a non-empty traceback message")
	}
}

func TestMissingRequiredArgumentIsFatal(t *testing.T) {
	err := runProgramExpectError(t, "func f(a): return a\nf()\n")
	if err == nil {
		t.Fatal("expected a runtime error for a missing required argument")
	}
}

func TestDefaultParameterEvaluatedInCallScope(t *testing.T) {
	src := "func f(a, b=a+1): return b\nprint(f(4))\n"
	out, _ := runProgram(t, src)
	if out != "5\n" {
		t.Fatalf("got %q", out)
	}
}

func TestProcedureFallsThroughReturnsNull(t *testing.T) {
	src := "proc f():\n  x = 1\ny = f()\nprint(y)\n"
	out, _ := runProgram(t, src)
	if out != "null\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTernaryConditional(t *testing.T) {
	out, _ := runProgram(t, "print(1 ? \"yes\" : \"no\")\nprint(0 ? \"yes\" : \"no\")\n")
	if out != "yes\nno\n" {
		t.Fatalf("got %q", out)
	}
}

func TestSubscriptAssignment(t *testing.T) {
	src := "l = [1, 2, 3]\nl[1] = 99\nprint(l[1])\n"
	out, _ := runProgram(t, src)
	if out != "99\n" {
		t.Fatalf("got %q", out)
	}
}

func TestAttributeAssignmentOnMap(t *testing.T) {
	src := "m = {}\nm.x = 10\nprint(m.x)\n"
	out, _ := runProgram(t, src)
	if out != "10\n" {
		t.Fatalf("got %q", out)
	}
}

// TestClosureSharesMutableCapture verifies §3.4's "mutation of that map
// after capture is observable to the closure" invariant: two closures over
// the same call frame see each other's writes.
func TestClosureSharesMutableCapture(t *testing.T) {
	src := "func counter():\n" +
		"  n = 0\n" +
		"  inc = () -> n = n + 1\n" +
		"  get = () -> n\n" +
		"  inc()\n" +
		"  inc()\n" +
		"  return get()\n" +
		"print(counter())\n"
	out, _ := runProgram(t, src)
	if out != "2\n" {
		t.Fatalf("got %q, want %q", out, "2\n")
	}
}

func TestWhileLoop(t *testing.T) {
	src := "i = 0\nwhile i < 3:\n  print(i)\n  i += 1\n"
	out, _ := runProgram(t, src)
	if out != "0\n1\n2\n" {
		t.Fatalf("got %q", out)
	}
}
