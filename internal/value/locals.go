package value

import "sync/atomic"

// Locals is a frame's variable map. It is not itself a Value kind — scripts
// never see it directly — but it is reference-counted independently so a
// closure can share ownership of the frame that defined it (§3.4's closure
// design note): a Function's Captured field retains the same *Locals its
// defining frame used, so mutations after the closure is formed stay
// visible to it, and the map only drops its contents once both the frame
// and every closure over it have released their reference.
type Locals struct {
	refs int32
	vars map[string]Value
}

func NewLocals() *Locals {
	return &Locals{refs: 1, vars: map[string]Value{}}
}

func (l *Locals) Retain() *Locals {
	atomic.AddInt32(&l.refs, 1)
	return l
}

func (l *Locals) Release() {
	if atomic.AddInt32(&l.refs, -1) == 0 {
		for _, v := range l.vars {
			Release(v)
		}
		l.vars = nil
	}
}

func (l *Locals) Get(name string) (Value, bool) {
	v, ok := l.vars[name]
	return v, ok
}

func (l *Locals) Set(name string, v Value) {
	if old, ok := l.vars[name]; ok {
		Release(old)
	}
	l.vars[name] = Retain(v)
}

// Keys returns the bound variable names, in no particular order (locals
// have no ordering guarantee, unlike Map).
func (l *Locals) Keys() []string {
	keys := make([]string, 0, len(l.vars))
	for k := range l.vars {
		keys = append(keys, k)
	}
	return keys
}

func (l *Locals) Delete(name string) bool {
	if v, ok := l.vars[name]; ok {
		Release(v)
		delete(l.vars, name)
		return true
	}
	return false
}
