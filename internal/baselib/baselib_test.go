package baselib

import (
	"bytes"
	"testing"

	"github.com/mikenno/modelgen/internal/interp"
	"github.com/mikenno/modelgen/internal/parse"
	"github.com/mikenno/modelgen/internal/value"
)

func run(t *testing.T, src string) string {
	t.Helper()
	inst := value.NewInstance(nil)
	Install(inst)
	var out bytes.Buffer
	inst.Stdout = &out

	root, err := parse.ParseString("t.mg", src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	mod := value.NewModule("", "t.mg", root, inst)
	if err := interp.New(inst, mod).Run(root); err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	return out.String()
}

func TestBaseLen(t *testing.T) {
	out := run(t, "print(len([1,2,3]))\nprint(len(\"hello\"))\n")
	if out != "3\n5\n" {
		t.Fatalf("got %q", out)
	}
}

func TestBaseTypeIntFloatStr(t *testing.T) {
	out := run(t, "print(type(1))\nprint(type(1.5))\nprint(type(\"x\"))\nprint(type([1]))\n")
	if out != "integer\nfloat\nstring\nlist\n" {
		t.Fatalf("got %q", out)
	}
}

func TestBaseIntFloatConversions(t *testing.T) {
	out := run(t, "print(int(3.9))\nprint(float(2))\nprint(int(\"42\"))\n")
	if out != "3\n2.0\n42\n" {
		t.Fatalf("got %q", out)
	}
}

func TestBaseMinMaxAbs(t *testing.T) {
	out := run(t, "print(min(3, 1, 2))\nprint(max(3, 1, 2))\nprint(abs(-5))\n")
	if out != "1\n3\n5\n" {
		t.Fatalf("got %q", out)
	}
}

func TestBaseRangeThreeForms(t *testing.T) {
	out := run(t, "for i in range(3): print(i)\nfor i in range(1, 3): print(i)\nfor i in range(0, 6, 2): print(i)\n")
	if out != "0\n1\n2\n1\n2\n0\n2\n4\n" {
		t.Fatalf("got %q", out)
	}
}

func TestListMethodsAddSizeContains(t *testing.T) {
	src := "l = [1, 2]\n" +
		"l.add(3)\n" +
		"print(l.size())\n" +
		"print(l.contains(2))\n" +
		"print(l.contains(9))\n"
	out := run(t, src)
	if out != "3\n1\n0\n" {
		t.Fatalf("got %q", out)
	}
}

func TestListSortAndReverse(t *testing.T) {
	src := "l = [3, 1, 2]\n" +
		"l.sort()\n" +
		"for x in l: print(x)\n" +
		"l.reverse()\n" +
		"for x in l: print(x)\n"
	out := run(t, src)
	if out != "1\n2\n3\n3\n2\n1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestListPop(t *testing.T) {
	src := "l = [1, 2, 3]\n" +
		"print(l.pop())\n" +
		"for x in l: print(x)\n"
	out := run(t, src)
	if out != "3\n1\n2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestMapSizeHas(t *testing.T) {
	src := "m = {a: 1, b: 2}\n" +
		"print(m.size())\n" +
		"print(m.has(\"a\"))\n" +
		"print(m.has(\"z\"))\n"
	out := run(t, src)
	if out != "2\n1\n0\n" {
		t.Fatalf("got %q", out)
	}
}

func TestStringMethods(t *testing.T) {
	src := "s = \"Hello\"\n" +
		"print(s.upper())\n" +
		"print(s.lower())\n" +
		"print(s.length())\n"
	out := run(t, src)
	if out != "HELLO\nhello\n5\n" {
		t.Fatalf("got %q", out)
	}
}

func TestMathModule(t *testing.T) {
	src := "import math\n" +
		"print(math.sqrt(9.0))\n" +
		"print(math.floor(3.7))\n" +
		"print(math.abs(-4))\n"
	out := run(t, src)
	if out != "3.0\n3.0\n4\n" {
		t.Fatalf("got %q", out)
	}
}

func TestListSortWithComparator(t *testing.T) {
	src := "l = [1, 2, 3]\n" +
		"l.sort((a, b) -> b - a)\n" +
		"for x in l: print(x)\n"
	out := run(t, src)
	if out != "3\n2\n1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestTupleMethods(t *testing.T) {
	src := "t = (1, 2, 3)\n" +
		"print(t.size())\n" +
		"print(t.contains(2))\n"
	out := run(t, src)
	if out != "3\n1\n" {
		t.Fatalf("got %q", out)
	}
}
