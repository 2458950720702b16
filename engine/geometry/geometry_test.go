package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGridShadesAlternate(t *testing.T) {
	m := Grid(8, 8)
	if len(m.Vertices) != 256 || len(m.Indices) != 384 {
		t.Fatalf("grid has %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
	shadeAt := func(col, row int) float32 {
		return m.Vertices[(row*8+col)*4].Shade
	}
	tests := []struct {
		col, row int
		want     float32
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 1},
		{7, 7, 0},
	}
	for _, tt := range tests {
		if got := shadeAt(tt.col, tt.row); got != tt.want {
			t.Errorf("shade(%d,%d) = %v, want %v", tt.col, tt.row, got, tt.want)
		}
	}
	first, last := m.Vertices[0].Position, m.Vertices[len(m.Vertices)-2].Position
	if first != [3]float32{-0.5, -0.5, 0} || last != [3]float32{0.5, 0.5, 0} {
		t.Fatalf("grid spans %v..%v", first, last)
	}
}

func TestCubeFacesPointOutward(t *testing.T) {
	m := Cube(2)
	if len(m.Vertices) != 24 || len(m.Indices) != 36 {
		t.Fatalf("cube has %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
	for i := 0; i < len(m.Indices); i += 3 {
		a := mgl32.Vec3(m.Vertices[m.Indices[i]].Position)
		b := mgl32.Vec3(m.Vertices[m.Indices[i+1]].Position)
		c := mgl32.Vec3(m.Vertices[m.Indices[i+2]].Position)
		normal := b.Sub(a).Cross(c.Sub(a))
		center := a.Add(b).Add(c).Mul(1.0 / 3)
		if normal.Dot(center) <= 0 {
			t.Fatalf("triangle %d winds inward", i/3)
		}
	}
	for _, v := range m.Vertices {
		for _, p := range v.Position {
			if p != 1 && p != -1 {
				t.Fatalf("vertex %v is not on the cube corners", v.Position)
			}
		}
	}
}

func TestMeshBytes(t *testing.T) {
	m := Square()
	if got := len(m.IndexBytes()); got != 24 {
		t.Fatalf("index bytes = %d", got)
	}
	if got := len(m.VertexBytes()); uint64(got) != 4*VertexStride {
		t.Fatalf("vertex bytes = %d", got)
	}
	if VertexStride != 24 {
		t.Fatalf("stride = %d", VertexStride)
	}
}

func TestFlatMeshesFacePositiveZ(t *testing.T) {
	tests := []struct {
		name string
		mesh Mesh
	}{
		{"grid", Grid(8, 8)},
		{"square", Square()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.mesh
			for i := 0; i < len(m.Indices); i += 3 {
				a := mgl32.Vec3(m.Vertices[m.Indices[i]].Position)
				b := mgl32.Vec3(m.Vertices[m.Indices[i+1]].Position)
				c := mgl32.Vec3(m.Vertices[m.Indices[i+2]].Position)
				if n := b.Sub(a).Cross(c.Sub(a)); n.Z() <= 0 {
					t.Fatalf("triangle %d has normal %v, back faces are culled", i/3, n)
				}
			}
		})
	}
}
