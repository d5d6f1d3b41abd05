// Package value implements the ModelGen value model: a reference-counted,
// tagged variant over twelve kinds, the operators defined on them, and the
// module/instance registry that owns them at runtime.
package value

// Kind is the closed set of value kinds (§3.4).
type Kind int

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindString
	KindTuple
	KindList
	KindMap
	KindCFunction
	KindBoundCFunction
	KindFunction
	KindProcedure
	KindModule
)

var kindNames = [...]string{
	"null", "integer", "float", "string", "tuple", "list", "map",
	"cfunction", "bound-cfunction", "function", "procedure", "module",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsCallable reports whether values of kind k can appear as the callee of a
// Call expression (§4.10).
func (k Kind) IsCallable() bool {
	switch k {
	case KindCFunction, KindBoundCFunction, KindFunction, KindProcedure:
		return true
	default:
		return false
	}
}
