// Package parse implements the ModelGen recursive-descent, precedence
// climbing parser: tokens in, a typed ast.Node tree out.
package parse

import (
	"fmt"

	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/lex"
	"github.com/mikenno/modelgen/internal/token"
)

// Parser consumes a filtered token stream (whitespace and comments dropped,
// newlines kept as statement/block boundaries) and builds an AST.
type Parser struct {
	filename string
	toks     []token.Token
	pos      int
	depth    int // bracket nesting: ( [ { — newlines are insignificant while depth > 0
}

// New constructs a Parser directly over a token stream (ParseString calls it
// after tokenizing).
func New(filename string, toks []token.Token) *Parser {
	filtered := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind == token.Whitespace || t.Kind == token.Comment {
			continue
		}
		filtered = append(filtered, t)
	}
	return &Parser{filename: filename, toks: filtered}
}

// ParseString tokenizes and parses src, returning the root Module node.
func ParseString(filename, src string) (n *ast.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	p := New(filename, lex.Tokenize(filename, src))
	return p.ParseModule(), nil
}

func (p *Parser) fail(pos token.Position, format string, args ...interface{}) {
	panic(&SyntaxError{Filename: p.filename, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) cur() token.Token {
	for p.pos < len(p.toks) {
		t := p.toks[p.pos]
		if p.depth > 0 && t.Kind == token.Newline {
			p.pos++
			continue
		}
		return t
	}
	return token.Token{Kind: token.EOF}
}

// rawCur returns the current token without skipping newlines, used by block
// parsing to detect statement/line boundaries.
func (p *Parser) rawCur() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	p.pos++
	return t
}

func (p *Parser) skipNewlines() {
	for p.rawCur().Kind == token.Newline {
		p.pos++
	}
}

func (p *Parser) at(kind token.Kind) bool { return p.cur().Kind == kind }

func (p *Parser) accept(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) expect(kind token.Kind) token.Token {
	t := p.cur()
	if t.Kind != kind {
		p.fail(t.Begin, "expected %s, found %s", kind, t.Kind)
	}
	return p.advance()
}

func (p *Parser) enterBracket() { p.depth++ }
func (p *Parser) exitBracket()  { p.depth-- }

// ParseModule parses the full token stream as top-level statements.
func (p *Parser) ParseModule() *ast.Node {
	begin := p.cur()
	var stmts []*ast.Node
	p.skipNewlines()
	for !p.at(token.EOF) {
		stmts = append(stmts, p.parseStatement())
		p.skipNewlines()
	}
	end := p.cur() // EOF
	m := &ast.Node{Kind: ast.Module, Token: begin, First: begin, Last: end, Children: stmts}
	if len(stmts) > 0 {
		m.First = stmts[0].First
		m.Last = stmts[len(stmts)-1].Last
	}
	return m
}
