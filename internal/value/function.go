package value

import "github.com/mikenno/modelgen/internal/ast"

// Function and Procedure are the two user-defined callable kinds (§3.4):
// identical in shape and invoked the same way; IsProc changes only the
// reported Kind and the Display text.
type Function struct {
	Header
	Name     string // "" for lambdas
	Params   []ast.Param
	Body     *ast.Node // Block
	IsProc   bool
	Module   *Module // defining module; NOT retained (§9 weak back-reference)
	Captured *Locals // non-nil for closures; holds a retained reference
}

func NewFunction(name string, params []ast.Param, body *ast.Node, isProc bool, mod *Module, captured *Locals) *Function {
	f := &Function{Header: newHeader(), Name: name, Params: params, Body: body, IsProc: isProc, Module: mod}
	if captured != nil {
		f.Captured = captured.Retain()
	}
	return f
}

func (f *Function) Kind() Kind {
	if f.IsProc {
		return KindProcedure
	}
	return KindFunction
}

func (f *Function) header() *Header { return &f.Header }
func (f *Function) Truthy() bool    { return true }

func (f *Function) Display() string {
	kw := "function"
	if f.IsProc {
		kw = "procedure"
	}
	name := f.Name
	if name == "" {
		name = "<anonymous>"
	}
	return "<" + kw + " " + name + ">"
}

func (f *Function) drop() {
	if f.Captured != nil {
		f.Captured.Release()
		f.Captured = nil
	}
}
