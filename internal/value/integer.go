package value

import "strconv"

// Integer wraps a 32-bit signed integer (§3.4: Integer(i32)).
type Integer struct {
	Header
	V int32
}

func NewInteger(v int32) *Integer { return &Integer{Header: newHeader(), V: v} }

func (i *Integer) Kind() Kind      { return KindInteger }
func (i *Integer) header() *Header { return &i.Header }
func (i *Integer) Truthy() bool    { return i.V != 0 }
func (i *Integer) Display() string { return strconv.FormatInt(int64(i.V), 10) }

// Float wraps a 32-bit float (§3.4: Float(f32)).
type Float struct {
	Header
	V float32
}

func NewFloat(v float32) *Float { return &Float{Header: newHeader(), V: v} }

func (f *Float) Kind() Kind      { return KindFloat }
func (f *Float) header() *Header { return &f.Header }
func (f *Float) Truthy() bool    { return f.V != 0 }
func (f *Float) Display() string { return formatFloat(f.V) }

func formatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	for _, r := range s {
		switch r {
		case '.', 'e', 'n', 'N', 'i': // NaN, Inf already read fine as-is
			return s
		}
	}
	return s + ".0"
}
