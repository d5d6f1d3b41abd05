package interp

import (
	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/value"
)

// evalBinOp dispatches the arithmetic and comparison operators (§4.4)
// through the value package's per-operator tables.
func (it *Interp) evalBinOp(n *ast.Node) (value.Value, error) {
	lhs, err := it.Eval(n.Children[0])
	if err != nil {
		return nil, err
	}
	rhs, err := it.Eval(n.Children[1])
	if err != nil {
		return nil, err
	}

	switch n.Kind {
	case ast.BinAdd:
		v, err := value.Add(lhs, rhs)
		return v, it.wrap(n.Token.Begin, err)
	case ast.BinSub:
		v, err := value.Sub(lhs, rhs)
		return v, it.wrap(n.Token.Begin, err)
	case ast.BinMul:
		v, err := value.Mul(lhs, rhs)
		return v, it.wrap(n.Token.Begin, err)
	case ast.BinDiv:
		v, err := value.Div(lhs, rhs)
		return v, it.wrap(n.Token.Begin, err)
	case ast.BinIntDiv:
		v, err := value.IntDiv(lhs, rhs)
		return v, it.wrap(n.Token.Begin, err)
	case ast.BinMod:
		v, err := value.Mod(lhs, rhs)
		return v, it.wrap(n.Token.Begin, err)
	case ast.BinEq:
		return boolValue(value.Equal(lhs, rhs)), nil
	case ast.BinNotEq:
		return boolValue(!value.Equal(lhs, rhs)), nil
	case ast.BinLess, ast.BinLessEq, ast.BinGreater, ast.BinGreaterEq:
		cmp, err := value.Compare(lhs, rhs)
		if err != nil {
			return nil, it.wrap(n.Token.Begin, err)
		}
		switch n.Kind {
		case ast.BinLess:
			return boolValue(cmp < 0), nil
		case ast.BinLessEq:
			return boolValue(cmp <= 0), nil
		case ast.BinGreater:
			return boolValue(cmp > 0), nil
		default:
			return boolValue(cmp >= 0), nil
		}
	default:
		return nil, it.newError(n.Token.Begin, "unsupported operator %s", n.Kind)
	}
}
