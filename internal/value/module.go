package value

import "github.com/mikenno/modelgen/internal/ast"

// Module is a loaded script file: its parsed AST, its globals, and the
// identity used for import-cache lookups (§3.4, §4.12). A Function defined
// at module scope is reachable from Globals; Module itself does not retain
// back into the functions it defines beyond that ordinary ownership, so
// Function's own Module field stays a plain (non-owning) pointer to avoid
// the obvious two-node cycle.
type Module struct {
	Header
	Name     string // dotted import name, "" for the entry module
	Path     string // resolved filesystem path
	Node     *ast.Node
	Globals  *Locals
	Instance *Instance // owning instance; not retained
}

func NewModule(name, path string, node *ast.Node, inst *Instance) *Module {
	return &Module{Header: newHeader(), Name: name, Path: path, Node: node, Globals: NewLocals(), Instance: inst}
}

func (m *Module) Kind() Kind      { return KindModule }
func (m *Module) header() *Header { return &m.Header }
func (m *Module) Truthy() bool    { return true }

func (m *Module) Display() string {
	if m.Name == "" {
		return "<module>"
	}
	return "<module " + m.Name + ">"
}

func (m *Module) drop() {
	m.Globals.Release()
	m.Globals = nil
}
