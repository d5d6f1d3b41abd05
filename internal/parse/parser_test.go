package parse

import (
	"testing"

	"github.com/mikenno/modelgen/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Node {
	t.Helper()
	root, err := ParseString("t.mg", src)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", src, err)
	}
	return root
}

func TestParseModuleSpanCoversWholeStream(t *testing.T) {
	root := mustParse(t, "x = 1\ny = 2\n")
	firstBegin, _ := root.Span()
	if firstBegin.Offset != 0 {
		t.Fatalf("module first offset = %d, want 0", firstBegin.Offset)
	}
}

// TestParseNodeSpansCoverChildren checks §8's parser invariant: every
// node's [first,last] span covers the spans of all its children.
func TestParseNodeSpansCoverChildren(t *testing.T) {
	root := mustParse(t, "x = 1 + 2 * foo(3, bar.baz)\n")
	var check func(n *ast.Node)
	check = func(n *ast.Node) {
		first, last := n.Span()
		for _, c := range n.Children {
			cf, cl := c.Span()
			if cf.Offset < first.Offset || cl.Offset > last.Offset {
				t.Fatalf("child span [%v,%v] escapes parent span [%v,%v] (parent kind %s, child kind %s)",
					cf, cl, first, last, n.Kind, c.Kind)
			}
			check(c)
		}
	}
	check(root)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// 1 + 2 * 3 should parse as Add(1, Mul(2,3)), not Mul(Add(1,2),3).
	root := mustParse(t, "1 + 2 * 3")
	stmt := root.Children[0]
	if stmt.Kind != ast.BinAdd {
		t.Fatalf("top kind = %s, want Add", stmt.Kind)
	}
	rhs := stmt.Children[1]
	if rhs.Kind != ast.BinMul {
		t.Fatalf("rhs kind = %s, want Mul", rhs.Kind)
	}
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	root := mustParse(t, "a = b = 1")
	stmt := root.Children[0]
	if stmt.Kind != ast.Assign {
		t.Fatalf("kind = %s", stmt.Kind)
	}
	rhs := stmt.Children[1]
	if rhs.Kind != ast.Assign {
		t.Fatalf("rhs kind = %s, want nested Assign", rhs.Kind)
	}
}

func TestParseParallelAssignment(t *testing.T) {
	root := mustParse(t, "a, b = 1, 2")
	stmt := root.Children[0]
	if stmt.Kind != ast.Assign {
		t.Fatalf("kind = %s", stmt.Kind)
	}
	lhs := stmt.Children[0]
	if lhs.Kind != ast.TupleLit || len(lhs.Children) != 2 {
		t.Fatalf("lhs = %+v", lhs)
	}
	rhs := stmt.Children[1]
	if rhs.Kind != ast.TupleLit || len(rhs.Children) != 2 {
		t.Fatalf("rhs = %+v", rhs)
	}
}

func TestParseIllegalAssignmentTarget(t *testing.T) {
	_, err := ParseString("t.mg", "1 + 1 = 2")
	if err == nil {
		t.Fatal("expected a syntax error for an illegal assignment target")
	}
}

func TestParseIfElseIfChain(t *testing.T) {
	src := "if a:\n  x = 1\nelse if b:\n  x = 2\nelse:\n  x = 3\n"
	root := mustParse(t, src)
	ifNode := root.Children[0]
	if ifNode.Kind != ast.If {
		t.Fatalf("kind = %s", ifNode.Kind)
	}
	if len(ifNode.Children) != 3 {
		t.Fatalf("children = %d, want 3 (cond, then, elseif)", len(ifNode.Children))
	}
	elseIf := ifNode.Children[2]
	if elseIf.Kind != ast.If {
		t.Fatalf("else arm kind = %s, want nested If", elseIf.Kind)
	}
}

func TestParseIndentedBlockColumnSensitive(t *testing.T) {
	src := "if a:\n  x = 1\n  y = 2\nz = 3\n"
	root := mustParse(t, src)
	ifNode := root.Children[0]
	then := ifNode.Children[1]
	if len(then.Children) != 2 {
		t.Fatalf("then block has %d statements, want 2", len(then.Children))
	}
	if len(root.Children) != 2 {
		t.Fatalf("module has %d top-level statements, want 2 (if, z=3)", len(root.Children))
	}
}

func TestParseSameLineBody(t *testing.T) {
	root := mustParse(t, "if a: x = 1\n")
	ifNode := root.Children[0]
	then := ifNode.Children[1]
	if then.Kind != ast.Block || len(then.Children) != 1 {
		t.Fatalf("then = %+v", then)
	}
}

func TestParseUnexpectedIndentFails(t *testing.T) {
	src := "if a:\n  x = 1\n    y = 2\n"
	_, err := ParseString("t.mg", src)
	if err == nil {
		t.Fatal("expected a syntax error for an unexpected indent")
	}
}

func TestParseFunctionParams(t *testing.T) {
	root := mustParse(t, "func f(a, b=2): return a + b\n")
	fn := root.Children[0]
	if fn.Kind != ast.Function {
		t.Fatalf("kind = %s", fn.Kind)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("params = %d, want 2", len(fn.Params))
	}
	if fn.Params[0].Default != nil {
		t.Fatal("first param should have no default")
	}
	if fn.Params[1].Default == nil {
		t.Fatal("second param should have a default")
	}
}

func TestParseDuplicateParamFails(t *testing.T) {
	_, err := ParseString("t.mg", "func f(a, a): return a\n")
	if err == nil {
		t.Fatal("expected a syntax error for a duplicate parameter")
	}
}

func TestParseDefaultBeforeRequiredFails(t *testing.T) {
	_, err := ParseString("t.mg", "func f(a=1, b): return a\n")
	if err == nil {
		t.Fatal("expected a syntax error: required parameter after a defaulted one")
	}
}

func TestParseLambda(t *testing.T) {
	root := mustParse(t, "add3 = (x) -> x + 3\n")
	assign := root.Children[0]
	fn := assign.Children[1]
	if fn.Kind != ast.Function {
		t.Fatalf("kind = %s, want Function", fn.Kind)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "x" {
		t.Fatalf("params = %+v", fn.Params)
	}
}

func TestParseTernaryAndElvis(t *testing.T) {
	root := mustParse(t, "x = a ? b : c\ny = a ?: c\n")
	ternary := root.Children[0].Children[1]
	if ternary.Kind != ast.TernaryConditional || len(ternary.Children) != 3 {
		t.Fatalf("ternary = %+v", ternary)
	}
	elvis := root.Children[1].Children[1]
	if elvis.Kind != ast.BinConditional || len(elvis.Children) != 2 {
		t.Fatalf("elvis = %+v", elvis)
	}
}

func TestParseCoalesce(t *testing.T) {
	root := mustParse(t, "x = a ?? b\n")
	n := root.Children[0].Children[1]
	if n.Kind != ast.BinCoalesce {
		t.Fatalf("kind = %s", n.Kind)
	}
}

func TestParseRangeSubscript(t *testing.T) {
	root := mustParse(t, "y = x[1:5:2]\n")
	sub := root.Children[0].Children[1]
	if sub.Kind != ast.Subscript {
		t.Fatalf("kind = %s", sub.Kind)
	}
	rng := sub.Children[1]
	if rng.Kind != ast.Range || len(rng.Children) != 3 {
		t.Fatalf("range = %+v", rng)
	}
}

func TestParseCallChain(t *testing.T) {
	root := mustParse(t, "x = foo.bar(1)[0].baz\n")
	assign := root.Children[0]
	attr := assign.Children[1]
	if attr.Kind != ast.Attribute || attr.Ident != "baz" {
		t.Fatalf("outermost = %+v", attr)
	}
	sub := attr.Children[0]
	if sub.Kind != ast.Subscript {
		t.Fatalf("next = %s", sub.Kind)
	}
	call := sub.Children[0]
	if call.Kind != ast.Call {
		t.Fatalf("next = %s", call.Kind)
	}
}

func TestParseListMapTuple(t *testing.T) {
	root := mustParse(t, "a = [1, 2, 3]\nb = {x: 1, y: 2}\nc = (1, 2)\n")
	list := root.Children[0].Children[1]
	if list.Kind != ast.ListLit || len(list.Children) != 3 {
		t.Fatalf("list = %+v", list)
	}
	m := root.Children[1].Children[1]
	if m.Kind != ast.MapLit || len(m.Children) != 4 {
		t.Fatalf("map = %+v", m)
	}
	tup := root.Children[2].Children[1]
	if tup.Kind != ast.TupleLit || len(tup.Children) != 2 {
		t.Fatalf("tuple = %+v", tup)
	}
}

func TestParseForWhileEmitDeleteImport(t *testing.T) {
	src := "for i in range(3): emit (i, 0, 0, 0, 0, 1)\n" +
		"while true: break\n" +
		"delete i\n" +
		"import math\n" +
		"from math import sin, cos as c\n"
	root := mustParse(t, src)
	kinds := []ast.Kind{ast.For, ast.While, ast.Delete, ast.ImportStmt, ast.ImportFrom}
	if len(root.Children) != len(kinds) {
		t.Fatalf("got %d top-level statements, want %d", len(root.Children), len(kinds))
	}
	for i, k := range kinds {
		if root.Children[i].Kind != k {
			t.Fatalf("stmt %d kind = %s, want %s", i, root.Children[i].Kind, k)
		}
	}
}

func TestParseAssertWithMessage(t *testing.T) {
	root := mustParse(t, "assert x > 0, \"must be positive\"\n")
	n := root.Children[0]
	if n.Kind != ast.Assert || len(n.Children) != 2 {
		t.Fatalf("assert = %+v", n)
	}
}
