package value

// String wraps an immutable UTF-8 string (§3.4). Strings are immutable once
// constructed; "mutation" methods surfaced on the base library (e.g.
// nothing — strings have none) never apply, only List/Map mutate in place.
type String struct {
	Header
	V string
}

func NewString(v string) *String { return &String{Header: newHeader(), V: v} }

func (s *String) Kind() Kind      { return KindString }
func (s *String) header() *Header { return &s.Header }
func (s *String) Truthy() bool    { return len(s.V) > 0 }
func (s *String) Display() string { return s.V }
