package parse

import (
	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/token"
)

func (p *Parser) parsePrimary() *ast.Node {
	t := p.cur()
	switch t.Kind {
	case token.Identifier:
		p.advance()
		n := ast.New(ast.Name, t)
		n.Ident = t.StringValue
		return n
	case token.Null:
		p.advance()
		return ast.New(ast.NullLit, t)
	case token.Integer:
		p.advance()
		n := ast.New(ast.IntegerLit, t)
		n.Int = t.IntValue
		return n
	case token.Float:
		p.advance()
		n := ast.New(ast.FloatLit, t)
		n.Float = t.FloatValue
		return n
	case token.String:
		p.advance()
		n := ast.New(ast.StringLit, t)
		n.Str = t.StringValue
		return n
	case token.LSquare:
		return p.parseList()
	case token.LBrace:
		return p.parseMap()
	case token.LParen:
		if n, ok := p.tryParseLambda(); ok {
			return n
		}
		return p.parseParenOrTuple()
	default:
		p.fail(t.Begin, "unexpected token %s", t.Kind)
		return nil
	}
}

// tryParseLambda speculatively parses `(params) -> expr`, backtracking on
// failure so the caller can fall back to a parenthesized expression or tuple
// literal. Lambdas always synthesize an anonymous Function node.
func (p *Parser) tryParseLambda() (result *ast.Node, ok bool) {
	save := p.pos
	defer func() {
		if r := recover(); r != nil {
			if _, isSyntax := r.(*SyntaxError); isSyntax {
				p.pos = save
				result, ok = nil, false
				return
			}
			panic(r)
		}
	}()

	tok := p.cur()
	params := p.parseParamList()
	if !p.at(token.Arrow) {
		p.pos = save
		return nil, false
	}
	arrow := p.advance()
	body := p.parseAssignment()
	ret := ast.New(ast.Return, arrow, body)
	blk := &ast.Node{Kind: ast.Block, Token: arrow, First: ret.First, Last: ret.Last, Children: []*ast.Node{ret}}
	fn := ast.New(ast.Function, tok, blk)
	fn.Params = params
	return fn, true
}

func (p *Parser) parseParenOrTuple() *ast.Node {
	begin := p.expect(token.LParen)
	p.enterBracket()
	defer p.exitBracket()

	if end, ok := p.accept(token.RParen); ok {
		return &ast.Node{Kind: ast.TupleLit, Token: begin, First: begin, Last: end}
	}

	first := p.parseAssignment()
	if _, ok := p.accept(token.Comma); ok {
		items := []*ast.Node{first}
		for !p.at(token.RParen) {
			items = append(items, p.parseAssignment())
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		end := p.expect(token.RParen)
		return &ast.Node{Kind: ast.TupleLit, Token: begin, First: begin, Last: end, Children: items}
	}
	p.expect(token.RParen)
	return first
}

func (p *Parser) parseList() *ast.Node {
	begin := p.expect(token.LSquare)
	p.enterBracket()
	defer p.exitBracket()
	var items []*ast.Node
	for !p.at(token.RSquare) {
		items = append(items, p.parseAssignment())
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	end := p.expect(token.RSquare)
	return &ast.Node{Kind: ast.ListLit, Token: begin, First: begin, Last: end, Children: items}
}

func (p *Parser) parseMap() *ast.Node {
	begin := p.expect(token.LBrace)
	p.enterBracket()
	defer p.exitBracket()
	var keys, values []*ast.Node
	for !p.at(token.RBrace) {
		var keyNode *ast.Node
		if p.at(token.Identifier) {
			keyTok := p.advance()
			keyNode = ast.New(ast.StringLit, keyTok)
			keyNode.Str = keyTok.StringValue
		} else {
			keyTok := p.expect(token.String)
			keyNode = ast.New(ast.StringLit, keyTok)
			keyNode.Str = keyTok.StringValue
		}
		p.expect(token.Colon)
		val := p.parseAssignment()
		keys = append(keys, keyNode)
		values = append(values, val)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	end := p.expect(token.RBrace)
	n := &ast.Node{Kind: ast.MapLit, Token: begin, First: begin, Last: end}
	for i := range keys {
		n.Children = append(n.Children, keys[i], values[i])
	}
	return n
}
