// Package baselib implements the built-in base module and the bound
// methods on List, Tuple, String, and Map (§1's "external collaborators",
// supplemented per SPEC_FULL.md with the subset of
// original_source/modules/{baselib,listlib,maplib,mathlib}.c that the
// end-to-end scenarios in spec.md §8 actually exercise). Every built-in is
// a CFunc registered either into a base Module's globals or into the
// value package's shared bound-method table via value.RegisterMethod.
package baselib

import "github.com/mikenno/modelgen/internal/value"

// Install builds the base module (print, range, len, type, ...) for inst
// and registers the List/Tuple/String/Map bound methods. It is called once
// per Instance, from cmd/modelgen before the entry module is interpreted.
func Install(inst *value.Instance) {
	inst.BaseModule = newBaseModule(inst)
	inst.StaticModules["list"] = newListModule(inst)
	inst.StaticModules["map"] = newMapModule(inst)
	inst.StaticModules["math"] = newMathModule(inst)
	registerMethodsOnce()
}

var methodsRegistered bool

// registerMethodsOnce wires List/Tuple/String/Map bound methods into the
// value package's shared table (§4.7). It only needs to run once per
// process since the table is keyed by Kind, not by Instance.
func registerMethodsOnce() {
	if methodsRegistered {
		return
	}
	methodsRegistered = true
	registerListMethods()
	registerTupleMethods()
	registerStringMethods()
	registerMapMethods()
}
