package parse

import (
	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/token"
)

// parseStatement dispatches on the current token's keyword, falling back to
// a simple (expression/assignment) statement.
func (p *Parser) parseStatement() *ast.Node {
	switch p.cur().Kind {
	case token.For:
		return p.parseFor()
	case token.While:
		return p.parseWhile()
	case token.If:
		return p.parseIf()
	case token.Func:
		return p.parseFuncOrProc(false)
	case token.Proc:
		return p.parseFuncOrProc(true)
	case token.Return:
		return p.parseReturn()
	case token.Break:
		tok := p.advance()
		if p.sameLineExprFollows() {
			return ast.New(ast.Break, tok, p.parseAssignment())
		}
		return ast.New(ast.Break, tok)
	case token.Continue:
		tok := p.advance()
		return ast.New(ast.Continue, tok)
	case token.Emit:
		return p.parseEmit()
	case token.Delete:
		return p.parseDelete()
	case token.Import:
		return p.parseImport()
	case token.From:
		return p.parseImportFrom()
	case token.Assert:
		return p.parseAssert()
	default:
		return p.parseSimpleStatement()
	}
}

// sameLineExprFollows reports whether the current token begins an
// expression on the same source line (used by `break [e]`).
func (p *Parser) sameLineExprFollows() bool {
	t := p.rawCur()
	switch t.Kind {
	case token.Newline, token.EOF:
		return false
	default:
		return true
	}
}

// parseBody parses the body of a statement introduced by the keyword
// introducer whose header ends at colon: either a single statement on the
// same line as colon, or an indented block of statements at a column
// strictly greater than introducer's.
func (p *Parser) parseBody(introducer, colon token.Token) *ast.Node {
	if p.rawCur().Kind != token.Newline && p.rawCur().Begin.Line == colon.Begin.Line {
		stmt := p.parseStatement()
		return &ast.Node{Kind: ast.Block, Token: stmt.Token, First: stmt.First, Last: stmt.Last, Children: []*ast.Node{stmt}}
	}

	p.skipNewlines()
	first := p.rawCur()
	if first.Kind == token.EOF {
		p.fail(first.Begin, "expected an indented block")
	}
	col := first.Begin.Column
	if col <= introducer.Begin.Column {
		p.fail(first.Begin, "expected an indented block")
	}

	var stmts []*ast.Node
	for {
		cur := p.rawCur()
		if cur.Kind == token.EOF {
			break
		}
		if cur.Begin.Column != col {
			break
		}
		stmts = append(stmts, p.parseStatement())
		p.skipNewlines()
		if p.rawCur().Begin.Column < col || p.rawCur().Kind == token.EOF {
			break
		}
		if p.rawCur().Begin.Column > col {
			p.fail(p.rawCur().Begin, "unexpected indent")
		}
	}
	blk := &ast.Node{Kind: ast.Block, Token: first, Children: stmts}
	if len(stmts) > 0 {
		blk.First = stmts[0].First
		blk.Last = stmts[len(stmts)-1].Last
	} else {
		blk.First, blk.Last = first, first
	}
	return blk
}

func (p *Parser) parseFor() *ast.Node {
	tok := p.expect(token.For)
	name := p.expect(token.Identifier)
	nameNode := ast.New(ast.Name, name)
	nameNode.Ident = name.StringValue
	p.expect(token.In)
	iter := p.parseOr()
	colon := p.expect(token.Colon)
	body := p.parseBody(tok, colon)
	return ast.New(ast.For, tok, nameNode, iter, body)
}

func (p *Parser) parseWhile() *ast.Node {
	tok := p.expect(token.While)
	cond := p.parseOr()
	colon := p.expect(token.Colon)
	body := p.parseBody(tok, colon)
	return ast.New(ast.While, tok, cond, body)
}

func (p *Parser) parseIf() *ast.Node {
	return p.parseIfAt(p.cur())
}

// parseIfAt parses an if statement whose blocks are indented past the column
// of introducer: the `if` keyword itself, or the `else` of an `else if` arm.
func (p *Parser) parseIfAt(introducer token.Token) *ast.Node {
	tok := p.expect(token.If)
	cond := p.parseOr()
	colon := p.expect(token.Colon)
	then := p.parseBody(introducer, colon)
	children := []*ast.Node{cond, then}

	save := p.pos
	p.skipNewlines()
	if p.at(token.Else) {
		elseTok := p.advance()
		if p.at(token.If) {
			children = append(children, p.parseIfAt(elseTok))
		} else {
			elseColon := p.expect(token.Colon)
			children = append(children, p.parseBody(elseTok, elseColon))
		}
	} else {
		p.pos = save
	}
	return ast.New(ast.If, tok, children...)
}

func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LParen)
	p.enterBracket()
	defer p.exitBracket()

	var params []ast.Param
	seen := map[string]bool{}
	sawDefault := false
	for !p.at(token.RParen) {
		nameTok := p.expect(token.Identifier)
		if seen[nameTok.StringValue] {
			p.fail(nameTok.Begin, "duplicate parameter %q", nameTok.StringValue)
		}
		seen[nameTok.StringValue] = true

		var def *ast.Node
		if _, ok := p.accept(token.Assign); ok {
			def = p.parseAssignment()
			sawDefault = true
		} else if sawDefault {
			p.fail(nameTok.Begin, "parameter %q without a default follows one with a default", nameTok.StringValue)
		}
		params = append(params, ast.Param{Name: nameTok.StringValue, Default: def})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen)
	return params
}

func (p *Parser) parseFuncOrProc(isProc bool) *ast.Node {
	tok := p.advance() // func or proc
	nameTok := p.expect(token.Identifier)
	params := p.parseParamList()
	colon := p.expect(token.Colon)
	body := p.parseBody(tok, colon)

	kind := ast.Function
	if isProc {
		kind = ast.Procedure
	}
	n := ast.New(kind, tok, body)
	n.Ident = nameTok.StringValue
	n.Params = params
	return n
}

func (p *Parser) parseReturn() *ast.Node {
	tok := p.advance()
	if p.sameLineExprFollows() {
		return ast.New(ast.Return, tok, p.parseAssignment())
	}
	return ast.New(ast.Return, tok)
}

func (p *Parser) parseEmit() *ast.Node {
	tok := p.advance()
	expr := p.parseAssignment()
	return ast.New(ast.Emit, tok, expr)
}

func (p *Parser) parseDelete() *ast.Node {
	tok := p.advance()
	target := p.parsePostfix()
	if target.Kind != ast.Name {
		p.fail(target.First.Begin, "delete target must be a name")
	}
	return ast.New(ast.Delete, tok, target)
}

// parseDottedName parses `a.b.c` and returns the dotted string plus its
// first and last identifier tokens (used for import paths).
func (p *Parser) parseDottedName() (string, token.Token, token.Token) {
	first := p.expect(token.Identifier)
	name := first.StringValue
	last := first
	for p.at(token.Dot) {
		p.advance()
		part := p.expect(token.Identifier)
		name += "." + part.StringValue
		last = part
	}
	return name, first, last
}

func (p *Parser) parseImport() *ast.Node {
	tok := p.advance()
	var items []*ast.Node
	for {
		name, first, last := p.parseDottedName()
		imp := &ast.Node{Kind: ast.Name, Token: first, First: first, Last: last, Ident: name}
		if _, ok := p.accept(token.As); ok {
			alias := p.expect(token.Identifier)
			asNode := &ast.Node{Kind: ast.As, Token: alias, First: imp.First, Last: alias, Ident: alias.StringValue, Children: []*ast.Node{imp}}
			items = append(items, asNode)
		} else {
			items = append(items, imp)
		}
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	return ast.New(ast.ImportStmt, tok, items...)
}

func (p *Parser) parseImportFrom() *ast.Node {
	tok := p.advance()
	modName, first, last := p.parseDottedName()
	modNode := &ast.Node{Kind: ast.Name, Token: first, First: first, Last: last, Ident: modName}
	p.expect(token.Import)

	var items []*ast.Node
	if _, ok := p.accept(token.Mul); ok {
		items = append(items, &ast.Node{Kind: ast.Name, Ident: "*"})
	} else {
		for {
			nameTok := p.expect(token.Identifier)
			n := ast.New(ast.Name, nameTok)
			n.Ident = nameTok.StringValue
			if _, ok := p.accept(token.As); ok {
				alias := p.expect(token.Identifier)
				asNode := &ast.Node{Kind: ast.As, Token: alias, First: n.First, Last: alias, Ident: alias.StringValue, Children: []*ast.Node{n}}
				items = append(items, asNode)
			} else {
				items = append(items, n)
			}
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
	}
	children := append([]*ast.Node{modNode}, items...)
	return ast.New(ast.ImportFrom, tok, children...)
}

func (p *Parser) parseAssert() *ast.Node {
	tok := p.advance()
	cond := p.parseAssignment()
	children := []*ast.Node{cond}
	if _, ok := p.accept(token.Comma); ok {
		children = append(children, p.parseAssignment())
	}
	return ast.New(ast.Assert, tok, children...)
}

// isValidAssignTarget reports whether n is legal on the left side of an
// assignment per §4.3: a Name, Subscript, Attribute, or (for plain `=`
// parallel assignment only) a Tuple of such targets.
func isValidAssignTarget(n *ast.Node, allowTuple bool) bool {
	switch n.Kind {
	case ast.Name, ast.Subscript, ast.Attribute:
		return true
	case ast.TupleLit:
		if !allowTuple {
			return false
		}
		for _, c := range n.Children {
			if !isValidAssignTarget(c, false) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

var compoundAssignKinds = map[token.Kind]ast.Kind{
	token.AddAssign:    ast.AssignAdd,
	token.SubAssign:    ast.AssignSub,
	token.MulAssign:    ast.AssignMul,
	token.DivAssign:    ast.AssignDiv,
	token.IntDivAssign: ast.AssignIntDiv,
	token.ModAssign:    ast.AssignMod,
}

// parseSimpleStatement handles expression statements, including bare-comma
// parallel assignment targets (`a, b = 1, 2`), which must be detected before
// committing to a single-target assignment.
func (p *Parser) parseSimpleStatement() *ast.Node {
	first := p.parseRange()

	if p.at(token.Comma) {
		items := []*ast.Node{first}
		for p.at(token.Comma) {
			p.advance()
			items = append(items, p.parseRange())
		}
		if _, ok := p.accept(token.Assign); ok {
			for _, t := range items {
				if !isValidAssignTarget(t, true) {
					p.fail(t.First.Begin, "illegal assignment target")
				}
			}
			lhs := &ast.Node{Kind: ast.TupleLit, First: items[0].First, Last: items[len(items)-1].Last, Children: items}
			values := p.parseExprList()
			rhs := values[0]
			if len(values) > 1 {
				rhs = &ast.Node{Kind: ast.TupleLit, First: values[0].First, Last: values[len(values)-1].Last, Children: values}
			}
			return &ast.Node{Kind: ast.Assign, First: lhs.First, Last: rhs.Last, Children: []*ast.Node{lhs, rhs}}
		}
		return &ast.Node{Kind: ast.TupleLit, First: items[0].First, Last: items[len(items)-1].Last, Children: items}
	}

	return p.finishAssignment(first)
}

// parseExprList parses one or more comma-separated Assignment-level
// expressions (used for the rhs of parallel assignment).
func (p *Parser) parseExprList() []*ast.Node {
	items := []*ast.Node{p.parseAssignment()}
	for p.at(token.Comma) {
		p.advance()
		items = append(items, p.parseAssignment())
	}
	return items
}
