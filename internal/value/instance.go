package value

import "github.com/spf13/afero"

// VertexLayout records how many scalar components each emitted vertex
// carries per attribute group (§4.11, §6): a tuple passed to `emit` must
// have exactly Total() elements, packed position-then-uv-then-normal-then-
// color. The default layout is position plus normal (3 + 3 = 6 components).
type VertexLayout struct {
	Position int
	UV       int
	Normal   int
	Color    int
}

func DefaultVertexLayout() VertexLayout { return VertexLayout{Position: 3, Normal: 3} }

func (l VertexLayout) Total() int { return l.Position + l.UV + l.Normal + l.Color }

// Vertex is one emitted record, its components packed in layout order.
type Vertex struct {
	Components []float32
}

// Instance is the runtime root (§3.6): the frame stack, the module
// registry (both dynamically imported and statically preregistered base
// modules), and the accumulated vertex buffer that `export` later consumes.
type Instance struct {
	TopFrame      *Frame
	BaseModule    *Module
	ModulesByName map[string]*Module
	StaticModules map[string]*Module
	// ModulesByHash is a belt-and-suspenders secondary index keyed by a
	// HighwayHash of the module's resolved absolute path (§4.12), catching
	// the case where two distinct dotted import names resolve to the same
	// underlying file; ModulesByName keyed by the dotted name remains the
	// primary, spec-visible cache.
	ModulesByHash map[string]*Module
	SearchPaths   []string
	FS            afero.Fs

	VertexLayout VertexLayout
	Vertices     []Vertex

	Stdout StringWriter

	// Call lets a host-supplied CFunction invoke a callback Value (e.g. the
	// comparator argument to list.sort) without the value package importing
	// the evaluator. The interp package wires this in once, the first time
	// it constructs an evaluator over this Instance (§4.10's call dispatch,
	// reused here so a built-in's callback goes through the same frame/
	// traceback machinery as an ordinary call expression would).
	Call func(callee Value, args []Value) (Value, error)
}

// StringWriter is the minimal sink `print` writes to, satisfied by
// *bufio.Writer or any io.Writer wrapped to expose WriteString.
type StringWriter interface {
	WriteString(s string) (int, error)
}

func NewInstance(fs afero.Fs) *Instance {
	return &Instance{
		ModulesByName: map[string]*Module{},
		StaticModules: map[string]*Module{},
		ModulesByHash: map[string]*Module{},
		FS:            fs,
		VertexLayout:  DefaultVertexLayout(),
	}
}

// PushFrame makes f the new top of the call stack.
func (inst *Instance) PushFrame(f *Frame) {
	f.Prev = inst.TopFrame
	if inst.TopFrame != nil {
		inst.TopFrame.Next = f
	}
	inst.TopFrame = f
}

// PopFrame removes the current top frame, releasing its locals unless a
// closure still references them.
func (inst *Instance) PopFrame() {
	f := inst.TopFrame
	if f == nil {
		return
	}
	inst.TopFrame = f.Prev
	if inst.TopFrame != nil {
		inst.TopFrame.Next = nil
	}
	f.Locals.Release()
}

// Emit appends a validated vertex built from tuple components to the
// instance's vertex buffer (§4.11).
func (inst *Instance) Emit(components []float32) error {
	inst.Vertices = append(inst.Vertices, Vertex{Components: components})
	return nil
}
