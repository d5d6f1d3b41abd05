package value

// Null is the single process-wide null value. It is immortal: Retain and
// Release treat it specially and never touch its Header, so every null in
// the system is the same pointer and comparable with ==.
type nullValue struct{ Header }

func (n *nullValue) Kind() Kind        { return KindNull }
func (n *nullValue) header() *Header   { return &n.Header }
func (n *nullValue) Truthy() bool      { return false }
func (n *nullValue) Display() string   { return "null" }

// Null is the shared singleton; compare against it directly rather than
// constructing a new null value.
var Null Value = &nullValue{}
