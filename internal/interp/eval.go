package interp

import (
	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/value"
)

// Eval evaluates an expression node to a Value. Statement-only node kinds
// (For, While, If, Return, ...) are handled by exec and never reach here.
func (it *Interp) Eval(n *ast.Node) (value.Value, error) {
	switch n.Kind {
	case ast.NullLit:
		return value.Null, nil
	case ast.IntegerLit:
		return value.NewInteger(n.Int), nil
	case ast.FloatLit:
		return value.NewFloat(n.Float), nil
	case ast.StringLit:
		return value.NewString(n.Str), nil
	case ast.Name:
		v, ok := it.resolve(n.Ident)
		if !ok {
			return nil, it.newError(n.Token.Begin, "undefined name %q", n.Ident)
		}
		return v, nil
	case ast.TupleLit:
		items, err := it.evalList(n.Children)
		if err != nil {
			return nil, err
		}
		return value.NewTuple(items...), nil
	case ast.ListLit:
		items, err := it.evalList(n.Children)
		if err != nil {
			return nil, err
		}
		return value.NewList(items...), nil
	case ast.MapLit:
		m := value.NewMap()
		for i := 0; i+1 < len(n.Children); i += 2 {
			k, v, err := it.evalMapEntry(n.Children[i], n.Children[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		return m, nil
	case ast.Call:
		return it.evalCall(n)
	case ast.Subscript:
		return it.evalSubscript(n)
	case ast.Attribute:
		return it.evalAttribute(n)
	case ast.As:
		return it.Eval(n.Children[0])
	case ast.Function, ast.Procedure:
		return it.makeFunction(n), nil
	case ast.BinAnd:
		return it.evalAnd(n)
	case ast.BinOr:
		return it.evalOr(n)
	case ast.BinCoalesce:
		return it.evalCoalesce(n)
	case ast.BinConditional:
		return it.evalElvis(n)
	case ast.TernaryConditional:
		return it.evalTernary(n)
	case ast.UnaryPos, ast.UnaryNeg, ast.UnaryNot:
		return it.evalUnary(n)
	case ast.BinAdd, ast.BinSub, ast.BinMul, ast.BinDiv, ast.BinIntDiv, ast.BinMod,
		ast.BinEq, ast.BinNotEq, ast.BinLess, ast.BinLessEq, ast.BinGreater, ast.BinGreaterEq:
		return it.evalBinOp(n)
	case ast.Assign, ast.AssignAdd, ast.AssignSub, ast.AssignMul, ast.AssignDiv, ast.AssignIntDiv, ast.AssignMod:
		return it.evalAssign(n)
	default:
		return nil, it.newError(n.Token.Begin, "cannot evaluate %s as an expression", n.Kind)
	}
}

func (it *Interp) evalList(children []*ast.Node) ([]value.Value, error) {
	items := make([]value.Value, 0, len(children))
	for _, c := range children {
		v, err := it.Eval(c)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}

func (it *Interp) evalMapEntry(keyNode, valNode *ast.Node) (string, value.Value, error) {
	v, err := it.Eval(valNode)
	if err != nil {
		return "", nil, err
	}
	return keyNode.Str, v, nil
}

func (it *Interp) evalAnd(n *ast.Node) (value.Value, error) {
	l, err := it.Eval(n.Children[0])
	if err != nil {
		return nil, err
	}
	if !l.Truthy() {
		return l, nil
	}
	return it.Eval(n.Children[1])
}

func (it *Interp) evalOr(n *ast.Node) (value.Value, error) {
	l, err := it.Eval(n.Children[0])
	if err != nil {
		return nil, err
	}
	if l.Truthy() {
		return l, nil
	}
	return it.Eval(n.Children[1])
}

func (it *Interp) evalCoalesce(n *ast.Node) (value.Value, error) {
	l, err := it.Eval(n.Children[0])
	if err != nil {
		return nil, err
	}
	if l != value.Null {
		return l, nil
	}
	return it.Eval(n.Children[1])
}

// evalElvis implements the two-operand `cond ?: else` form: else evaluates
// only when cond is falsy (§4.3's Conditional node, distinct from ?? which
// tests specifically for Null).
func (it *Interp) evalElvis(n *ast.Node) (value.Value, error) {
	l, err := it.Eval(n.Children[0])
	if err != nil {
		return nil, err
	}
	if l.Truthy() {
		return l, nil
	}
	return it.Eval(n.Children[1])
}

func (it *Interp) evalTernary(n *ast.Node) (value.Value, error) {
	cond, err := it.Eval(n.Children[0])
	if err != nil {
		return nil, err
	}
	if cond.Truthy() {
		return it.Eval(n.Children[1])
	}
	return it.Eval(n.Children[2])
}

func (it *Interp) evalUnary(n *ast.Node) (value.Value, error) {
	operand, err := it.Eval(n.Children[0])
	if err != nil {
		return nil, err
	}
	switch n.Kind {
	case ast.UnaryNot:
		return boolValue(!operand.Truthy()), nil
	case ast.UnaryNeg:
		v, err := value.Neg(operand)
		return v, it.wrap(n.Token.Begin, err)
	default: // UnaryPos
		v, err := value.Pos(operand)
		return v, it.wrap(n.Token.Begin, err)
	}
}

// boolValue surfaces a boolean as an Integer 0/1, since the value model has
// no dedicated boolean kind (§3.4 lists ten kinds, none of them Boolean;
// truthiness is a projection, per §4.5, and `not`/comparisons return that
// projection's canonical integer form).
func boolValue(b bool) value.Value {
	if b {
		return value.NewInteger(1)
	}
	return value.NewInteger(0)
}
