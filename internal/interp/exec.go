package interp

import (
	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/value"
)

// exec executes a statement node, threading control-flow state through the
// current frame (§4.9). It returns an error only for fatal evaluator
// failures; Break/Continue/Return are communicated via frame.State, not Go
// errors, since they are normal (non-exceptional) control flow here.
func (it *Interp) exec(n *ast.Node) error {
	switch n.Kind {
	case ast.Block:
		return it.execBlock(n)
	case ast.If:
		return it.execIf(n)
	case ast.For:
		return it.execFor(n)
	case ast.While:
		return it.execWhile(n)
	case ast.Return:
		return it.execReturn(n)
	case ast.Break:
		return it.execBreak(n)
	case ast.Continue:
		it.inst.TopFrame.State = value.Continuing
		return nil
	case ast.Function, ast.Procedure:
		fn := it.makeFunction(n)
		it.assign(n.Ident, fn)
		value.Release(fn)
		return nil
	case ast.Emit:
		return it.execEmit(n)
	case ast.Delete:
		target := n.Children[0]
		if !it.deleteName(target.Ident) {
			return it.newError(target.Token.Begin, "undefined name %q", target.Ident)
		}
		return nil
	case ast.ImportStmt:
		return it.execImport(n)
	case ast.ImportFrom:
		return it.execImportFrom(n)
	case ast.Assert:
		return it.execAssert(n)
	case ast.Nop:
		return nil
	default:
		v, err := it.Eval(n)
		if err != nil {
			return err
		}
		value.Release(v)
		return nil
	}
}

// execBlock runs each statement in order, stopping as soon as the frame
// leaves the Active state (a nested return/break/continue propagating up).
func (it *Interp) execBlock(n *ast.Node) error {
	frame := it.inst.TopFrame
	for _, stmt := range n.Children {
		if err := it.exec(stmt); err != nil {
			return err
		}
		if frame.State != value.Active {
			return nil
		}
	}
	return nil
}

func (it *Interp) execIf(n *ast.Node) error {
	cond, err := it.Eval(n.Children[0])
	if err != nil {
		return err
	}
	if cond.Truthy() {
		return it.exec(n.Children[1])
	}
	if len(n.Children) > 2 {
		return it.exec(n.Children[2])
	}
	return nil
}

func (it *Interp) execWhile(n *ast.Node) error {
	frame := it.inst.TopFrame
	for {
		cond, err := it.Eval(n.Children[0])
		if err != nil {
			return err
		}
		if !cond.Truthy() {
			return nil
		}
		if err := it.exec(n.Children[1]); err != nil {
			return err
		}
		switch frame.State {
		case value.Breaking:
			frame.Unwind()
			return nil
		case value.Continuing:
			frame.Unwind()
		case value.Returning:
			return nil
		}
	}
}

func (it *Interp) execFor(n *ast.Node) error {
	nameNode, iterNode, body := n.Children[0], n.Children[1], n.Children[2]
	iterVal, err := it.Eval(iterNode)
	if err != nil {
		return err
	}
	items, err := iterate(iterVal)
	if err != nil {
		return it.wrap(n.Token.Begin, err)
	}

	frame := it.inst.TopFrame
	for _, item := range items {
		it.assign(nameNode.Ident, item)
		if err := it.exec(body); err != nil {
			return err
		}
		switch frame.State {
		case value.Breaking:
			frame.Unwind()
			return nil
		case value.Continuing:
			frame.Unwind()
		case value.Returning:
			return nil
		}
	}
	return nil
}

// iterate implements the for-loop iteration protocol: List/Tuple yield
// their elements, String yields one-character strings, Map yields its keys
// in insertion order (§4.8's ordered map backs deterministic iteration).
func iterate(v value.Value) ([]value.Value, error) {
	switch t := v.(type) {
	case *value.List:
		return append([]value.Value{}, t.Items...), nil
	case *value.Tuple:
		return append([]value.Value{}, t.Items...), nil
	case *value.String:
		runes := []rune(t.V)
		out := make([]value.Value, len(runes))
		for i, r := range runes {
			out[i] = value.NewString(string(r))
		}
		return out, nil
	case *value.Map:
		keys := t.Keys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			out[i] = value.NewString(k)
		}
		return out, nil
	default:
		return nil, &value.OpError{Op: "iterate", Left: value.TypeNameOrNull(v).Kind(), Right: value.KindNull}
	}
}

func (it *Interp) execReturn(n *ast.Node) error {
	frame := it.inst.TopFrame
	if len(n.Children) > 0 {
		v, err := it.Eval(n.Children[0])
		if err != nil {
			return err
		}
		frame.ReturnValue = v
	}
	frame.State = value.Returning
	return nil
}

func (it *Interp) execBreak(n *ast.Node) error {
	frame := it.inst.TopFrame
	if len(n.Children) > 0 {
		v, err := it.Eval(n.Children[0])
		if err != nil {
			return err
		}
		frame.ReturnValue = v
	}
	frame.State = value.Breaking
	return nil
}

func (it *Interp) execAssert(n *ast.Node) error {
	cond, err := it.Eval(n.Children[0])
	if err != nil {
		return err
	}
	if cond.Truthy() {
		return nil
	}
	msg := "assertion failed"
	if len(n.Children) > 1 {
		m, err := it.Eval(n.Children[1])
		if err != nil {
			return err
		}
		msg = m.Display()
	}
	return it.newError(n.Token.Begin, "%s", msg)
}
