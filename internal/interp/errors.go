// Package interp is the tree-walking evaluator: it turns an ast.Module into
// executed behavior over the value package's runtime model, coordinating
// control-flow state, name resolution, closures, and module import the way
// the teacher's own package (yaegi's interp package, now the namesake)
// coordinates its own evaluation loop around Go's AST.
package interp

import (
	"fmt"
	"strings"

	"github.com/mikenno/modelgen/internal/token"
)

// FrameInfo is a traceback-printing snapshot of one call-stack entry,
// captured at the moment a RuntimeError is first raised so the trace
// reflects the stack as it stood at the failure, not after it unwound
// (§4.13, §7).
type FrameInfo struct {
	CallerName string
	CallerPos  token.Position
}

// RuntimeError is every fatal error the evaluator raises (§7): lexical and
// syntactic errors are reported separately by lex/parse, but everything
// semantic — undefined names, bad operands, failed assertions, non-callable
// callees — surfaces as one of these, fatal by construction since the
// language has no try/except.
type RuntimeError struct {
	Filename string
	Pos      token.Position
	Message  string
	Trace    []FrameInfo
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d: %s", e.Filename, e.Pos.Line, e.Pos.Column, e.Message)
	for _, f := range e.Trace {
		name := f.CallerName
		if name == "" {
			name = "<module>"
		}
		fmt.Fprintf(&b, "\n  at %s (%s:%d:%d)", name, e.Filename, f.CallerPos.Line, f.CallerPos.Column)
	}
	return b.String()
}

// newError builds a RuntimeError positioned at pos, snapshotting the
// evaluator's current call stack as the traceback.
func (it *Interp) newError(pos token.Position, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{
		Filename: it.filename,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
		Trace:    it.trace(),
	}
}

// trace walks the live frame stack from innermost to outermost, recording
// each frame's call site.
func (it *Interp) trace() []FrameInfo {
	var frames []FrameInfo
	for f := it.inst.TopFrame; f != nil; f = f.Prev {
		pos := token.Position{}
		if f.CallerNode != nil {
			pos = f.CallerNode.First.Begin
		}
		frames = append(frames, FrameInfo{CallerName: f.CallerName, CallerPos: pos})
	}
	return frames
}

// wrap passes a RuntimeError through unchanged; any other error
// (e.g. from an operator table, or a filesystem error surfaced via afero)
// is wrapped once, at the point it first crosses into the evaluator, with
// the position of the node that triggered it.
func (it *Interp) wrap(pos token.Position, err error) error {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RuntimeError); ok {
		return re
	}
	return it.newError(pos, "%s", err.Error())
}
