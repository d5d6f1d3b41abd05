package interp

import (
	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/value"
)

// execEmit implements §4.11: `emit (x1, ..., xn)` validates the operand is
// a Tuple of exactly the instance's configured vertex width, coerces
// integer components to float, and appends one vertex record.
func (it *Interp) execEmit(n *ast.Node) error {
	v, err := it.Eval(n.Children[0])
	if err != nil {
		return err
	}
	tup, ok := v.(*value.Tuple)
	if !ok {
		return it.newError(n.Token.Begin, "emit requires a tuple, got %s", v.Kind())
	}
	want := it.inst.VertexLayout.Total()
	if len(tup.Items) != want {
		return it.newError(n.Token.Begin, "emit expects a %d-component tuple, got %d", want, len(tup.Items))
	}
	components := make([]float32, len(tup.Items))
	for i, item := range tup.Items {
		switch num := item.(type) {
		case *value.Integer:
			components[i] = float32(num.V)
		case *value.Float:
			components[i] = num.V
		default:
			return it.newError(n.Token.Begin, "emit component %d must be numeric, got %s", i, item.Kind())
		}
	}
	return it.wrap(n.Token.Begin, it.inst.Emit(components))
}
