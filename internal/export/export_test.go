package export

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/mikenno/modelgen/internal/value"
)

func triangle(inst *value.Instance) {
	inst.Vertices = append(inst.Vertices,
		value.Vertex{Components: []float32{0, 0, 0, 0, 0, 1}},
		value.Vertex{Components: []float32{1, 0, 0, 0, 0, 1}},
		value.Vertex{Components: []float32{0, 1, 0, 0, 0, 1}},
	)
}

// §8 scenario 6: OBJ export shape for three emitted vertices.
func TestWriteOBJTriangle(t *testing.T) {
	inst := value.NewInstance(nil)
	inst.VertexLayout = value.DefaultVertexLayout()
	triangle(inst)

	var buf bytes.Buffer
	if err := Write(&buf, inst, OBJ); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	vCount, vnCount, fCount := 0, 0, 0
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "v "):
			vCount++
		case strings.HasPrefix(l, "vn "):
			vnCount++
		case strings.HasPrefix(l, "f "):
			fCount++
			if l != "f 1//1 2//2 3//3" {
				t.Fatalf("face line = %q, want %q", l, "f 1//1 2//2 3//3")
			}
		}
	}
	if vCount != 3 || vnCount != 3 || fCount != 1 {
		t.Fatalf("got v=%d vn=%d f=%d, want v=3 vn=3 f=1", vCount, vnCount, fCount)
	}
}

func TestWriteOBJNoNormalsWhenLayoutOmitsThem(t *testing.T) {
	inst := value.NewInstance(nil)
	inst.VertexLayout = value.VertexLayout{Position: 3}
	inst.Vertices = append(inst.Vertices, value.Vertex{Components: []float32{1, 2, 3}})

	var buf bytes.Buffer
	if err := Write(&buf, inst, OBJ); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "vn ") {
		t.Fatalf("expected no vn lines when layout has no normal component, got %q", buf.String())
	}
}

// §6: triangles format is packed little-endian float32, (position[3],
// normal[3]) per vertex, no header.
func TestWriteTrianglesPackedBinary(t *testing.T) {
	inst := value.NewInstance(nil)
	inst.VertexLayout = value.DefaultVertexLayout()
	triangle(inst)

	var buf bytes.Buffer
	if err := Write(&buf, inst, Triangles); err != nil {
		t.Fatal(err)
	}
	want := 3 * 6 * 4 // 3 vertices * 6 float32 components * 4 bytes
	if buf.Len() != want {
		t.Fatalf("byte length = %d, want %d", buf.Len(), want)
	}

	var first [6]float32
	if err := binary.Read(bytes.NewReader(buf.Bytes()[:24]), binary.LittleEndian, &first); err != nil {
		t.Fatal(err)
	}
	want6 := [6]float32{0, 0, 0, 0, 0, 1}
	if first != want6 {
		t.Fatalf("first vertex = %v, want %v", first, want6)
	}
}

func TestWriteUnknownFormatFails(t *testing.T) {
	inst := value.NewInstance(nil)
	var buf bytes.Buffer
	if err := Write(&buf, inst, Format("bogus")); err == nil {
		t.Fatal("expected an error for an unknown export format")
	}
}
