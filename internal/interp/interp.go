package interp

import (
	"github.com/mikenno/modelgen/internal/ast"
	"github.com/mikenno/modelgen/internal/value"
)

// Interp drives evaluation of one entry module against a shared Instance.
// Loading further modules via import constructs additional Interp values
// over the same Instance, one per Module being interpreted.
type Interp struct {
	inst     *value.Instance
	module   *value.Module
	filename string
}

// New wires an evaluator for mod, running against inst. The first call over
// a given Instance also wires inst.Call, the hook built-ins (e.g.
// list.sort's comparator callback, §4.10) use to invoke a Value without the
// value package importing back into interp.
func New(inst *value.Instance, mod *value.Module) *Interp {
	it := &Interp{inst: inst, module: mod, filename: mod.Path}
	if inst.Call == nil {
		inst.Call = func(callee value.Value, args []value.Value) (value.Value, error) {
			cur := mod
			if inst.TopFrame != nil {
				cur = inst.TopFrame.Module
			}
			return New(inst, cur).invoke(callee, args, nil)
		}
	}
	return it
}

// Run executes the module's top-level statements as the base frame
// (§3.5: the outermost frame, caller_node/caller_name empty). The base
// frame's locals is the module's own globals map, not a fresh one: this is
// what makes a bare top-level assignment land in the module's globals
// under the §4.8 rule ("bind in locals unless already a global"), and it's
// why makeFunction only captures locals for genuine nested call frames —
// capturing the base frame's locals here would alias the very map a
// top-level function is stored into, a direct two-node reference cycle.
func (it *Interp) Run(root *ast.Node) error {
	frame := value.NewFrame(it.module, nil, "", nil)
	frame.Locals.Release()
	frame.Locals = it.module.Globals.Retain()
	it.inst.PushFrame(frame)
	defer it.inst.PopFrame()

	for _, stmt := range root.Children {
		if err := it.exec(stmt); err != nil {
			return err
		}
		if frame.State != value.Active {
			break
		}
	}
	return nil
}
