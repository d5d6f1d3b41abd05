package interp

import (
	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/token"
	"github.com/mikenno/modelgen/internal/value"
)

// makeFunction constructs a Function/Procedure value from a def or lambda
// node. It captures the currently executing frame's locals only when that
// frame is a genuine call frame rather than the module's base frame: the
// base frame's locals is the same map as the module's globals (see Run),
// so capturing it there would retain the very map the function is about
// to be stored into, a direct two-node reference cycle the manual
// refcount model forbids (§3.4, §9).
func (it *Interp) makeFunction(n *ast.Node) *value.Function {
	frame := it.inst.TopFrame
	var captured *value.Locals
	if frame.Locals != frame.Module.Globals {
		captured = frame.Locals
	}
	return value.NewFunction(n.Ident, n.Params, n.Children[0], n.Kind == ast.Procedure, frame.Module, captured)
}

// evalCall implements §4.10.
func (it *Interp) evalCall(n *ast.Node) (value.Value, error) {
	callee, err := it.Eval(n.Children[0])
	if err != nil {
		return nil, err
	}
	if !callee.Kind().IsCallable() {
		return nil, it.newError(n.Token.Begin, "%s object is not callable", callee.Kind())
	}
	argv, err := it.evalList(n.Children[1:])
	if err != nil {
		return nil, err
	}
	return it.invoke(callee, argv, n)
}

// sitePos returns the call site's source position, or the zero Position
// when invoke is driven by a built-in's callback (e.g. list.sort's
// comparator, §4.10) rather than an evaluated call expression.
func sitePos(site *ast.Node) token.Position {
	if site == nil {
		return token.Position{}
	}
	return site.Token.Begin
}

// invoke dispatches a callable value against already-evaluated arguments.
// site is nil when the call originates from a built-in's own callback
// rather than a call expression in the AST.
func (it *Interp) invoke(callee value.Value, argv []value.Value, site *ast.Node) (value.Value, error) {
	switch f := callee.(type) {
	case *value.CFunction:
		v, err := f.Fn(it.inst, argv)
		return v, it.wrap(sitePos(site), err)
	case *value.BoundCFunction:
		full := append([]value.Value{f.Receiver}, argv...)
		v, err := f.Fn.Fn(it.inst, full)
		return v, it.wrap(sitePos(site), err)
	case *value.Function:
		return it.invokeFunction(f, argv, site)
	default:
		return nil, it.newError(sitePos(site), "%s object is not callable", callee.Kind())
	}
}

func (it *Interp) invokeFunction(f *value.Function, argv []value.Value, site *ast.Node) (value.Value, error) {
	name := f.Name
	if name == "" {
		name = "<anonymous>"
	}
	frame := value.NewFrame(f.Module, site, name, nil)
	if f.Captured != nil {
		frame.Locals.Release()
		frame.Locals = f.Captured.Retain()
	}

	it.inst.PushFrame(frame)
	defer it.inst.PopFrame()

	if err := it.bindParams(frame, f, argv, site); err != nil {
		return nil, err
	}

	for _, stmt := range f.Body.Children {
		if err := it.exec(stmt); err != nil {
			return nil, err
		}
		if frame.State != value.Active {
			break
		}
	}

	if frame.State == value.Returning {
		if frame.ReturnValue == nil {
			return value.Null, nil
		}
		return frame.ReturnValue, nil
	}
	return value.Null, nil
}

func (it *Interp) bindParams(frame *value.Frame, f *value.Function, argv []value.Value, site *ast.Node) error {
	if len(argv) > len(f.Params) {
		return it.newError(sitePos(site), "%s takes at most %d argument(s), got %d", displayName(f), len(f.Params), len(argv))
	}
	for i, p := range f.Params {
		if i < len(argv) {
			frame.Locals.Set(p.Name, argv[i])
			continue
		}
		if p.Default == nil {
			return it.newError(sitePos(site), "%s missing required argument %q", displayName(f), p.Name)
		}
		def, err := it.Eval(p.Default)
		if err != nil {
			return err
		}
		frame.Locals.Set(p.Name, def)
	}
	return nil
}

func displayName(f *value.Function) string {
	if f.Name == "" {
		return "<anonymous>"
	}
	return f.Name
}
