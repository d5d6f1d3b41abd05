package interp

import (
	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/value"
)

// evalSubscript implements `x[i]` and `x[a:b:c]` (§4.6). A Range index
// never goes through Eval (there is no Range Value kind — it is purely
// syntactic) and is instead interpreted directly into slice bounds here.
func (it *Interp) evalSubscript(n *ast.Node) (value.Value, error) {
	target, err := it.Eval(n.Children[0])
	if err != nil {
		return nil, err
	}
	idxNode := n.Children[1]
	if idxNode.Kind == ast.Range {
		from, to, step, err := it.evalRange(idxNode)
		if err != nil {
			return nil, err
		}
		v, err := value.Slice(target, from, to, step)
		return v, it.wrap(n.Token.Begin, err)
	}
	idx, err := it.Eval(idxNode)
	if err != nil {
		return nil, err
	}
	v, err := value.Index(target, idx)
	return v, it.wrap(n.Token.Begin, err)
}

// evalRange evaluates a Range node's 2 or 3 children into (from, to, step)
// slice bounds; from/to are nil when the corresponding child is absent
// entirely is not representable by the grammar (both sides are required),
// but either may itself be Null to mean "open" (handled by the caller's
// default bounds).
func (it *Interp) evalRange(n *ast.Node) (from, to *int, step int, err error) {
	fromV, err := it.Eval(n.Children[0])
	if err != nil {
		return nil, nil, 0, err
	}
	toV, err := it.Eval(n.Children[1])
	if err != nil {
		return nil, nil, 0, err
	}
	step = 1
	if len(n.Children) > 2 {
		stepV, err := it.Eval(n.Children[2])
		if err != nil {
			return nil, nil, 0, err
		}
		si, ok := stepV.(*value.Integer)
		if !ok {
			return nil, nil, 0, it.newError(n.Token.Begin, "range step must be an integer")
		}
		step = int(si.V)
	}
	if fromV != value.Null {
		fi, ok := fromV.(*value.Integer)
		if !ok {
			return nil, nil, 0, it.newError(n.Token.Begin, "range bounds must be integers")
		}
		v := int(fi.V)
		from = &v
	}
	if toV != value.Null {
		ti, ok := toV.(*value.Integer)
		if !ok {
			return nil, nil, 0, it.newError(n.Token.Begin, "range bounds must be integers")
		}
		v := int(ti.V)
		to = &v
	}
	return from, to, step, nil
}

func (it *Interp) evalAttribute(n *ast.Node) (value.Value, error) {
	target, err := it.Eval(n.Children[0])
	if err != nil {
		return nil, err
	}
	v, err := value.Attribute(target, n.Ident)
	return v, it.wrap(n.Token.Begin, err)
}
