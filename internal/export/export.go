// Package export writes an Instance's accumulated vertex buffer out in the
// two geometry formats spec.md §6 names: OBJ text and a packed binary
// "triangles" stream. Both writers are pure encoding over bufio.Writer,
// grounded on the teacher's own preference for buffered stdlib I/O rather
// than a third-party serialization library — there is no natural home in
// this pack for a compression/codec dependency on a one-shot, uncompressed
// geometry dump (see DESIGN.md).
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mikenno/modelgen/internal/value"
)

// Format names the two export encodings §6 defines.
type Format string

const (
	OBJ       Format = "obj"
	Triangles Format = "triangles"
)

// Write encodes inst's vertex buffer to w in the named format.
func Write(w io.Writer, inst *value.Instance, format Format) error {
	switch format {
	case OBJ:
		return writeOBJ(w, inst)
	case Triangles:
		return writeTriangles(w, inst)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

// writeOBJ implements §6's OBJ layout: one `v x y z` per position, one
// `vn nx ny nz` per normal (when the layout carries one), one
// `f a//a b//b c//c` per three consecutive vertices.
func writeOBJ(w io.Writer, inst *value.Instance) error {
	layout := inst.VertexLayout
	bw := bufio.NewWriter(w)

	posOff := 0
	uvOff := posOff + layout.Position
	normOff := uvOff + layout.UV

	for _, v := range inst.Vertices {
		if layout.Position >= 3 {
			fmt.Fprintf(bw, "v %s %s %s\n",
				formatFloat(v.Components[posOff]),
				formatFloat(v.Components[posOff+1]),
				formatFloat(v.Components[posOff+2]))
		}
	}
	if layout.Normal >= 3 {
		for _, v := range inst.Vertices {
			fmt.Fprintf(bw, "vn %s %s %s\n",
				formatFloat(v.Components[normOff]),
				formatFloat(v.Components[normOff+1]),
				formatFloat(v.Components[normOff+2]))
		}
	}
	for i := 0; i+2 < len(inst.Vertices); i += 3 {
		a, b, c := i+1, i+2, i+3
		fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	return bw.Flush()
}

func formatFloat(f float32) string {
	return fmt.Sprintf("%g", f)
}

// writeTriangles implements §6's packed binary format: little-endian
// float32 (position[3], normal[3]) per vertex, no header, via
// encoding/binary the way the teacher reaches for stdlib binary encoding
// over a third-party serialization format for a format this small.
func writeTriangles(w io.Writer, inst *value.Instance) error {
	layout := inst.VertexLayout
	bw := bufio.NewWriter(w)

	posOff := 0
	uvOff := posOff + layout.Position
	normOff := uvOff + layout.UV
	hasNormal := layout.Normal >= 3

	for _, v := range inst.Vertices {
		var px, py, pz float32
		if layout.Position >= 3 {
			px, py, pz = v.Components[posOff], v.Components[posOff+1], v.Components[posOff+2]
		}
		var nx, ny, nz float32
		if hasNormal {
			nx, ny, nz = v.Components[normOff], v.Components[normOff+1], v.Components[normOff+2]
		}
		if err := binary.Write(bw, binary.LittleEndian, [6]float32{px, py, pz, nx, ny, nz}); err != nil {
			return err
		}
	}
	return bw.Flush()
}
