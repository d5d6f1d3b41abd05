package interp

import "github.com/mikenno/modelgen/internal/value"

// resolve implements the three-tier lookup of §4.8: current frame's
// locals, current module's globals, then the Instance's base module.
func (it *Interp) resolve(name string) (value.Value, bool) {
	frame := it.inst.TopFrame
	if v, ok := frame.Locals.Get(name); ok {
		return v, true
	}
	if v, ok := frame.Module.Globals.Get(name); ok {
		return v, true
	}
	if it.inst.BaseModule != nil {
		if v, ok := it.inst.BaseModule.Globals.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// assign implements bare-name assignment semantics (§4.8): if the name is
// already bound in locals, or unbound in globals, bind it in locals;
// otherwise update the existing module global.
func (it *Interp) assign(name string, v value.Value) {
	frame := it.inst.TopFrame
	if _, ok := frame.Locals.Get(name); ok {
		frame.Locals.Set(name, v)
		return
	}
	if _, ok := frame.Module.Globals.Get(name); ok {
		frame.Module.Globals.Set(name, v)
		return
	}
	frame.Locals.Set(name, v)
}

// deleteName removes name from the first scope (locals, then module
// globals, then base globals) in which it is found, reporting whether
// anything was removed.
func (it *Interp) deleteName(name string) bool {
	frame := it.inst.TopFrame
	if frame.Locals.Delete(name) {
		return true
	}
	if frame.Module.Globals.Delete(name) {
		return true
	}
	if it.inst.BaseModule != nil && it.inst.BaseModule.Globals.Delete(name) {
		return true
	}
	return false
}
