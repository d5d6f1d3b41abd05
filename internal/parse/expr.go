package parse

import (
	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/token"
)

// parseAssignment is the general expression entry point: level 1 of the
// precedence table (§4.3), right-associative, legal as a sub-expression
// anywhere (e.g. `print(x = 5)`), not only at statement scope.
func (p *Parser) parseAssignment() *ast.Node {
	lhs := p.parseRange()
	return p.finishAssignment(lhs)
}

func (p *Parser) finishAssignment(lhs *ast.Node) *ast.Node {
	if assignTok, ok := p.accept(token.Assign); ok {
		if !isValidAssignTarget(lhs, false) {
			p.fail(lhs.First.Begin, "illegal assignment target")
		}
		rhs := p.parseAssignment()
		return &ast.Node{Kind: ast.Assign, Token: assignTok, First: lhs.First, Last: rhs.Last, Children: []*ast.Node{lhs, rhs}}
	}
	if kind, ok := compoundAssignKinds[p.cur().Kind]; ok {
		if !isValidAssignTarget(lhs, false) {
			p.fail(lhs.First.Begin, "illegal assignment target")
		}
		opTok := p.advance()
		rhs := p.parseAssignment()
		return &ast.Node{Kind: kind, Token: opTok, First: lhs.First, Last: rhs.Last, Children: []*ast.Node{lhs, rhs}}
	}
	return lhs
}

// parseRange is level 2: `a:b` or `a:b:c`.
func (p *Parser) parseRange() *ast.Node {
	first := p.parseOr()
	if !p.at(token.Colon) {
		return first
	}
	colon := p.advance()
	children := []*ast.Node{first}
	children = append(children, p.parseOr())
	if _, ok := p.accept(token.Colon); ok {
		children = append(children, p.parseOr())
	}
	n := ast.New(ast.Range, colon, children...)
	return n
}

// parseOr is level 3: `or`, left-assoc, short-circuit.
func (p *Parser) parseOr() *ast.Node {
	lhs := p.parseAnd()
	for p.at(token.Or) {
		tok := p.advance()
		rhs := p.parseAnd()
		lhs = &ast.Node{Kind: ast.BinOr, Token: tok, First: lhs.First, Last: rhs.Last, Children: []*ast.Node{lhs, rhs}}
	}
	return lhs
}

// parseAnd is level 4: `and`, left-assoc, short-circuit.
func (p *Parser) parseAnd() *ast.Node {
	lhs := p.parseEquality()
	for p.at(token.And) {
		tok := p.advance()
		rhs := p.parseEquality()
		lhs = &ast.Node{Kind: ast.BinAnd, Token: tok, First: lhs.First, Last: rhs.Last, Children: []*ast.Node{lhs, rhs}}
	}
	return lhs
}

var equalityKinds = map[token.Kind]ast.Kind{token.Equal: ast.BinEq, token.NotEqual: ast.BinNotEq}

// parseEquality is level 5: `== !=`.
func (p *Parser) parseEquality() *ast.Node {
	lhs := p.parseRelational()
	for {
		kind, ok := equalityKinds[p.cur().Kind]
		if !ok {
			return lhs
		}
		tok := p.advance()
		rhs := p.parseRelational()
		lhs = &ast.Node{Kind: kind, Token: tok, First: lhs.First, Last: rhs.Last, Children: []*ast.Node{lhs, rhs}}
	}
}

var relationalKinds = map[token.Kind]ast.Kind{
	token.Less: ast.BinLess, token.LessEqual: ast.BinLessEq,
	token.Greater: ast.BinGreater, token.GreaterEqual: ast.BinGreaterEq,
}

// parseRelational is level 6: `< <= > >=`.
func (p *Parser) parseRelational() *ast.Node {
	lhs := p.parseAdditive()
	for {
		kind, ok := relationalKinds[p.cur().Kind]
		if !ok {
			return lhs
		}
		tok := p.advance()
		rhs := p.parseAdditive()
		lhs = &ast.Node{Kind: kind, Token: tok, First: lhs.First, Last: rhs.Last, Children: []*ast.Node{lhs, rhs}}
	}
}

var additiveKinds = map[token.Kind]ast.Kind{token.Add: ast.BinAdd, token.Sub: ast.BinSub}

// parseAdditive is level 7: `+ -`.
func (p *Parser) parseAdditive() *ast.Node {
	lhs := p.parseMultiplicative()
	for {
		kind, ok := additiveKinds[p.cur().Kind]
		if !ok {
			return lhs
		}
		tok := p.advance()
		rhs := p.parseMultiplicative()
		lhs = &ast.Node{Kind: kind, Token: tok, First: lhs.First, Last: rhs.Last, Children: []*ast.Node{lhs, rhs}}
	}
}

var multiplicativeKinds = map[token.Kind]ast.Kind{
	token.Mul: ast.BinMul, token.Div: ast.BinDiv, token.IntDiv: ast.BinIntDiv, token.Mod: ast.BinMod,
}

// parseMultiplicative is level 8: `* / // %`.
func (p *Parser) parseMultiplicative() *ast.Node {
	lhs := p.parseCoalesce()
	for {
		kind, ok := multiplicativeKinds[p.cur().Kind]
		if !ok {
			return lhs
		}
		tok := p.advance()
		rhs := p.parseCoalesce()
		lhs = &ast.Node{Kind: kind, Token: tok, First: lhs.First, Last: rhs.Last, Children: []*ast.Node{lhs, rhs}}
	}
}

// parseCoalesce is level 9: `??`, the tightest of the numbered precedence
// levels (§4.3).
func (p *Parser) parseCoalesce() *ast.Node {
	lhs := p.parseTernary()
	for p.at(token.Coalesce) {
		tok := p.advance()
		rhs := p.parseTernary()
		lhs = &ast.Node{Kind: ast.BinCoalesce, Token: tok, First: lhs.First, Last: rhs.Last, Children: []*ast.Node{lhs, rhs}}
	}
	return lhs
}

// parseTernary sits above the numbered levels: the full `cond ? then : else`
// form and the two-operand Elvis form `cond ?: else` (§4.3 design note:
// both bind tighter than `??` and looser than unary).
func (p *Parser) parseTernary() *ast.Node {
	cond := p.parseUnary()
	if tok, ok := p.accept(token.Elvis); ok {
		els := p.parseTernary()
		return &ast.Node{Kind: ast.BinConditional, Token: tok, First: cond.First, Last: els.Last, Children: []*ast.Node{cond, els}}
	}
	if tok, ok := p.accept(token.Question); ok {
		then := p.parseOr()
		p.expect(token.Colon)
		els := p.parseTernary()
		return &ast.Node{Kind: ast.TernaryConditional, Token: tok, First: cond.First, Last: els.Last, Children: []*ast.Node{cond, then, els}}
	}
	return cond
}

var unaryKinds = map[token.Kind]ast.Kind{token.Add: ast.UnaryPos, token.Sub: ast.UnaryNeg, token.Not: ast.UnaryNot}

// parseUnary handles prefix `+ - not`.
func (p *Parser) parseUnary() *ast.Node {
	if kind, ok := unaryKinds[p.cur().Kind]; ok {
		tok := p.advance()
		operand := p.parseUnary()
		return &ast.Node{Kind: kind, Token: tok, First: tok, Last: operand.Last, Children: []*ast.Node{operand}}
	}
	return p.parsePostfix()
}

// parsePostfix handles the postfix chain: call, subscript, attribute, `as`.
func (p *Parser) parsePostfix() *ast.Node {
	n := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.LParen:
			n = p.parseCall(n)
		case token.LSquare:
			n = p.parseSubscript(n)
		case token.Dot:
			p.advance()
			nameTok := p.expect(token.Identifier)
			attr := &ast.Node{Kind: ast.Attribute, Token: nameTok, First: n.First, Last: nameTok, Ident: nameTok.StringValue, Children: []*ast.Node{n}}
			n = attr
		case token.As:
			p.advance()
			nameTok := p.expect(token.Identifier)
			n = &ast.Node{Kind: ast.As, Token: nameTok, First: n.First, Last: nameTok, Ident: nameTok.StringValue, Children: []*ast.Node{n}}
		default:
			return n
		}
	}
}

func (p *Parser) parseCall(callee *ast.Node) *ast.Node {
	p.expect(token.LParen)
	p.enterBracket()
	defer p.exitBracket()
	var args []*ast.Node
	for !p.at(token.RParen) {
		args = append(args, p.parseAssignment())
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	end := p.expect(token.RParen)
	children := append([]*ast.Node{callee}, args...)
	return &ast.Node{Kind: ast.Call, Token: callee.Token, First: callee.First, Last: end, Children: children}
}

func (p *Parser) parseSubscript(target *ast.Node) *ast.Node {
	p.expect(token.LSquare)
	p.enterBracket()
	defer p.exitBracket()
	index := p.parseAssignment()
	end := p.expect(token.RSquare)
	return &ast.Node{Kind: ast.Subscript, Token: target.Token, First: target.First, Last: end, Children: []*ast.Node{target, index}}
}
