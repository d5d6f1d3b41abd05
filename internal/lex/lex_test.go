package lex

import (
	"testing"

	"github.com/mikenno/modelgen/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func nonTrivial(toks []token.Token) []token.Token {
	var out []token.Token
	for _, t := range toks {
		switch t.Kind {
		case token.Whitespace, token.Comment:
			continue
		}
		out = append(out, t)
	}
	return out
}

func TestTokenizeEndsWithEOF(t *testing.T) {
	toks := Tokenize("t.mg", "x = 1")
	if toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("last token = %s, want EOF", toks[len(toks)-1].Kind)
	}
}

func TestTokenizeIncreasingOffsets(t *testing.T) {
	toks := Tokenize("t.mg", "a = (1 + 2) * foo.bar[0]\n# comment\nreturn\n")
	for i := 1; i < len(toks); i++ {
		if toks[i].Begin.Offset < toks[i-1].Begin.Offset {
			t.Fatalf("token %d begins before token %d", i, i-1)
		}
		if toks[i].Begin.Offset > toks[i].End.Offset {
			t.Fatalf("token %d: begin > end", i)
		}
	}
}

func TestTokenizeKeywordsVsIdentifiers(t *testing.T) {
	toks := nonTrivial(Tokenize("t.mg", "for forest in x: pass"))
	got := kinds(toks)
	want := []token.Kind{token.For, token.Identifier, token.In, token.Identifier, token.Colon, token.Identifier, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeIntegerAndFloat(t *testing.T) {
	toks := nonTrivial(Tokenize("t.mg", "1 2.5 10"))
	if toks[0].Kind != token.Integer || toks[0].IntValue != 1 {
		t.Fatalf("tok0 = %+v", toks[0])
	}
	if toks[1].Kind != token.Float || toks[1].FloatValue != 2.5 {
		t.Fatalf("tok1 = %+v", toks[1])
	}
	if toks[2].Kind != token.Integer || toks[2].IntValue != 10 {
		t.Fatalf("tok2 = %+v", toks[2])
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks := nonTrivial(Tokenize("t.mg", `"a\nb\tc\\d\"e"`))
	if toks[0].Kind != token.String {
		t.Fatalf("kind = %s", toks[0].Kind)
	}
	want := "a\nb\tc\\d\"e"
	if toks[0].StringValue != want {
		t.Fatalf("decoded = %q, want %q", toks[0].StringValue, want)
	}
}

func TestTokenizeStringNoQuotesInPayload(t *testing.T) {
	toks := nonTrivial(Tokenize("t.mg", `'hello'`))
	if toks[0].StringValue != "hello" {
		t.Fatalf("payload = %q", toks[0].StringValue)
	}
}

func TestTokenizeTwoCharOperators(t *testing.T) {
	src := "== != <= >= += -= *= /= //= %= -> ?: ?? //"
	toks := nonTrivial(Tokenize("t.mg", src))
	want := []token.Kind{
		token.Equal, token.NotEqual, token.LessEqual, token.GreaterEqual,
		token.AddAssign, token.SubAssign, token.MulAssign, token.DivAssign,
		token.IntDivAssign, token.ModAssign, token.Arrow, token.Elvis,
		token.Coalesce, token.IntDiv, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v (%d), want %d tokens", got, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	toks := nonTrivial(Tokenize("t.mg", "a $ b"))
	if toks[1].Kind != token.Invalid {
		t.Fatalf("expected Invalid token for '$', got %s", toks[1].Kind)
	}
}

func TestTokenizeNewlineAdvancesLine(t *testing.T) {
	toks := Tokenize("t.mg", "a\nb")
	// a, newline, b, EOF
	var bTok token.Token
	for _, tk := range toks {
		if tk.Kind == token.Identifier && tk.StringValue == "b" {
			bTok = tk
		}
	}
	if bTok.Begin.Line != 2 || bTok.Begin.Column != 1 {
		t.Fatalf("b position = %+v, want line 2 col 1", bTok.Begin)
	}
}

func TestTokenizeCommentToEndOfLine(t *testing.T) {
	toks := Tokenize("t.mg", "x # comment here\ny")
	foundComment := false
	for _, tk := range toks {
		if tk.Kind == token.Comment {
			foundComment = true
			if tk.Source != "# comment here" {
				t.Fatalf("comment source = %q", tk.Source)
			}
		}
	}
	if !foundComment {
		t.Fatal("no comment token produced")
	}
}

// TestTokenizeSourceSliceRoundTrip exercises §8's tokenizer invariant:
// concatenating source_slice(begin,end) across all tokens reconstructs the
// entire source exactly (every byte belongs to some token, none overlap).
func TestTokenizeSourceSliceRoundTrip(t *testing.T) {
	src := "for i in range(1, 11): s += i # sum\n"
	toks := Tokenize("t.mg", src)
	var rebuilt string
	for _, tk := range toks {
		if tk.Kind == token.EOF {
			continue
		}
		rebuilt += src[tk.Begin.Offset:tk.End.Offset]
	}
	if rebuilt != src {
		t.Fatalf("rebuilt = %q, want %q", rebuilt, src)
	}
}
