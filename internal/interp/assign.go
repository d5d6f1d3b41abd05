package interp

import (
	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/value"
)

var compoundOps = map[ast.Kind]func(a, b value.Value) (value.Value, error){
	ast.AssignAdd:    value.Add,
	ast.AssignSub:    value.Sub,
	ast.AssignMul:    value.Mul,
	ast.AssignDiv:    value.Div,
	ast.AssignIntDiv: value.IntDiv,
	ast.AssignMod:    value.Mod,
}

// evalAssign implements `=` and the compound assignment operators (§4.3),
// including `=`'s parallel-assignment form when the target is a Tuple.
func (it *Interp) evalAssign(n *ast.Node) (value.Value, error) {
	target := n.Children[0]
	rhsNode := n.Children[1]

	if n.Kind == ast.Assign && target.Kind == ast.TupleLit {
		rhs, err := it.Eval(rhsNode)
		if err != nil {
			return nil, err
		}
		items, err := tupleItems(rhs)
		if err != nil {
			return nil, it.wrap(n.Token.Begin, err)
		}
		if len(items) != len(target.Children) {
			return nil, it.newError(n.Token.Begin, "cannot unpack %d values into %d targets", len(items), len(target.Children))
		}
		for i, t := range target.Children {
			if err := it.store(t, items[i]); err != nil {
				return nil, err
			}
		}
		return rhs, nil
	}

	if n.Kind == ast.Assign {
		rhs, err := it.Eval(rhsNode)
		if err != nil {
			return nil, err
		}
		if err := it.store(target, rhs); err != nil {
			return nil, err
		}
		return rhs, nil
	}

	op := compoundOps[n.Kind]
	cur, err := it.load(target)
	if err != nil {
		return nil, err
	}
	rhs, err := it.Eval(rhsNode)
	if err != nil {
		return nil, err
	}
	result, err := op(cur, rhs)
	if err != nil {
		return nil, it.wrap(n.Token.Begin, err)
	}
	if err := it.store(target, result); err != nil {
		return nil, err
	}
	return result, nil
}

func tupleItems(v value.Value) ([]value.Value, error) {
	switch t := v.(type) {
	case *value.Tuple:
		return t.Items, nil
	case *value.List:
		return t.Items, nil
	default:
		return nil, &value.OpError{Op: "unpack", Left: value.TypeNameOrNull(v).Kind(), Right: value.KindNull}
	}
}

// load reads the current value of an assignment target, used by the
// read-modify-write compound assignment operators.
func (it *Interp) load(target *ast.Node) (value.Value, error) {
	switch target.Kind {
	case ast.Name:
		v, ok := it.resolve(target.Ident)
		if !ok {
			return nil, it.newError(target.Token.Begin, "undefined name %q", target.Ident)
		}
		return v, nil
	case ast.Subscript, ast.Attribute:
		return it.Eval(target)
	default:
		return nil, it.newError(target.Token.Begin, "illegal assignment target")
	}
}

// store writes v into an assignment target (§4.3, §4.8).
func (it *Interp) store(target *ast.Node, v value.Value) error {
	switch target.Kind {
	case ast.Name:
		it.assign(target.Ident, v)
		return nil
	case ast.Subscript:
		container, err := it.Eval(target.Children[0])
		if err != nil {
			return err
		}
		idx, err := it.Eval(target.Children[1])
		if err != nil {
			return err
		}
		return it.wrap(target.Token.Begin, value.SetIndex(container, idx, v))
	case ast.Attribute:
		container, err := it.Eval(target.Children[0])
		if err != nil {
			return err
		}
		return it.wrap(target.Token.Begin, value.SetAttribute(container, target.Ident, v))
	default:
		return it.newError(target.Token.Begin, "illegal assignment target")
	}
}
