// Package geometry builds the static meshes: the checkered board grid, the selector square and the piece cube.
package geometry

import (
	"unsafe"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
)

// Vertex is the interleaved vertex layout shared by every mesh.
// Size: 24 bytes.
type Vertex struct {
	Position [3]float32 // offset  0
	UV       [2]float32 // offset 12
	Shade    float32    // offset 20: 1 for light board squares and non-board meshes, 0 for dark squares
}

// VertexStride is the size of one Vertex in bytes.
const VertexStride = uint64(unsafe.Sizeof(Vertex{}))

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// VertexBytes returns the vertex data for upload.
func (m Mesh) VertexBytes() []byte {
	return common.SliceToBytes(m.Vertices)
}

// IndexBytes returns the index data for upload.
func (m Mesh) IndexBytes() []byte {
	return common.SliceToBytes(m.Indices)
}

// Grid builds a width x height board in the XY plane spanning [-0.5, 0.5] on both axes.
// Each cell has its own four vertices so Shade is flat per cell; cell (0,0) is dark.
// UVs run 0..1 across the whole board.
//
// Parameters:
//   - width, height: board size in cells
//
// Returns:
//   - Mesh: 4*width*height vertices, 6*width*height indices
func Grid(width, height int) Mesh {
	m := Mesh{
		Vertices: make([]Vertex, 0, width*height*4),
		Indices:  make([]uint32, 0, width*height*6),
	}
	w, h := float32(width), float32(height)
	for row := range height {
		for col := range width {
			shade := float32(0)
			if (col+row)%2 == 1 {
				shade = 1
			}
			x0, x1 := float32(col)/w, float32(col+1)/w
			y0, y1 := float32(row)/h, float32(row+1)/h
			base := uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices,
				Vertex{Position: [3]float32{x0 - 0.5, y0 - 0.5, 0}, UV: [2]float32{x0, 1 - y0}, Shade: shade},
				Vertex{Position: [3]float32{x1 - 0.5, y0 - 0.5, 0}, UV: [2]float32{x1, 1 - y0}, Shade: shade},
				Vertex{Position: [3]float32{x1 - 0.5, y1 - 0.5, 0}, UV: [2]float32{x1, 1 - y1}, Shade: shade},
				Vertex{Position: [3]float32{x0 - 0.5, y1 - 0.5, 0}, UV: [2]float32{x0, 1 - y1}, Shade: shade},
			)
			m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
		}
	}
	return m
}

// Square builds a unit quad in the XY plane centered on the origin.
func Square() Mesh {
	return Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{-0.5, -0.5, 0}, UV: [2]float32{0, 1}, Shade: 1},
			{Position: [3]float32{0.5, -0.5, 0}, UV: [2]float32{1, 1}, Shade: 1},
			{Position: [3]float32{0.5, 0.5, 0}, UV: [2]float32{1, 0}, Shade: 1},
			{Position: [3]float32{-0.5, 0.5, 0}, UV: [2]float32{0, 0}, Shade: 1},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Cube builds a cube with edge length size centered on the origin, four vertices per face
// so each face carries its own UVs. Faces wind counter-clockwise seen from outside.
//
// Parameters:
//   - size: edge length
//
// Returns:
//   - Mesh: 24 vertices, 36 indices
func Cube(size float32) Mesh {
	s := size / 2
	// Each face: origin corner, then the two edge directions (u, v) whose cross product points outward.
	faces := [6][3][3]float32{
		{{-s, -s, s}, {1, 0, 0}, {0, 1, 0}},   // +Z
		{{s, -s, -s}, {-1, 0, 0}, {0, 1, 0}},  // -Z
		{{s, -s, s}, {0, 0, -1}, {0, 1, 0}},   // +X
		{{-s, -s, -s}, {0, 0, 1}, {0, 1, 0}},  // -X
		{{-s, s, s}, {1, 0, 0}, {0, 0, -1}},   // +Y
		{{-s, -s, -s}, {1, 0, 0}, {0, 0, 1}},  // -Y
	}
	m := Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	corners := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range corners {
			var p [3]float32
			for i := range 3 {
				p[i] = f[0][i] + (f[1][i]*c[0]+f[2][i]*c[1])*size
			}
			m.Vertices = append(m.Vertices, Vertex{Position: p, UV: [2]float32{c[0], 1 - c[1]}, Shade: 1})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}
