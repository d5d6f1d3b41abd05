package value

// CFunc is the Go signature every built-in (base-library, list-method,
// map-method) implements (§4.10).
type CFunc func(inst *Instance, args []Value) (Value, error)

// CFunction wraps a built-in implemented in Go (§3.4). Built-ins are
// process-wide statics created once at base-library init, so their Fn
// closure owns nothing and drop() has no work beyond the embedded Header.
type CFunction struct {
	Header
	Name string
	Fn   CFunc
}

func NewCFunction(name string, fn CFunc) *CFunction {
	return &CFunction{Header: newHeader(), Name: name, Fn: fn}
}

func (c *CFunction) Kind() Kind      { return KindCFunction }
func (c *CFunction) header() *Header { return &c.Header }
func (c *CFunction) Truthy() bool    { return true }
func (c *CFunction) Display() string { return "<built-in " + c.Name + ">" }

// BoundCFunction pairs a CFunction with a receiver (§3.4, §4.7's bound
// method table: list.add, map.keys, and so on). It owns a reference to
// the receiver so the receiver outlives the bound method.
type BoundCFunction struct {
	Header
	Fn       *CFunction
	Receiver Value
}

func NewBoundCFunction(fn *CFunction, receiver Value) *BoundCFunction {
	return &BoundCFunction{Header: newHeader(), Fn: fn, Receiver: Retain(receiver)}
}

func (b *BoundCFunction) Kind() Kind      { return KindBoundCFunction }
func (b *BoundCFunction) header() *Header { return &b.Header }
func (b *BoundCFunction) Truthy() bool    { return true }
func (b *BoundCFunction) Display() string { return "<bound method " + b.Fn.Name + ">" }

func (b *BoundCFunction) drop() { Release(b.Receiver) }
