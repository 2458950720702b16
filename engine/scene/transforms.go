package scene

import (
	"github.com/Carmen-Shannon/oxy-chessboard/engine/board"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	boardScale     float32 = 4
	boardTiltDeg   float32 = -89
	pieceLift      float32 = 0.07
	selectorLift   float32 = 0.002
	pieceSizeRatio float32 = 1.0 / 11
)

// DefaultClearColor is the gray behind the board.
var DefaultClearColor = mgl32.Vec4{161.0 / 255, 161.0 / 255, 161.0 / 255, 1}

var (
	lightSquare    = mgl32.Vec4{1, 1, 1, 1}
	darkSquare     = mgl32.Vec4{0, 0, 0, 1}
	highlightColor = mgl32.Vec4{0, 0.7, 0, 1}
	selectorColor  = mgl32.Vec4{0, 0.7, 0, 0.45}
	armedColor     = mgl32.Vec4{1, 1, 0, 1}
)

// PieceSize returns the edge length of the piece cube in board-local units.
func PieceSize() float32 {
	return pieceSizeRatio
}

// BoardModel lays the XY-plane board almost flat in world space and scales it up.
func BoardModel() mgl32.Mat4 {
	return mgl32.Scale3D(boardScale, boardScale, boardScale).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(boardTiltDeg)))
}

// PieceModel places a piece cube above the cell center at offset, in board-local units.
//
// Parameters:
//   - offset: the cell center relative to the board center (see board.GridCell.Offset)
//
// Returns:
//   - mgl32.Mat4: the model matrix
func PieceModel(offset mgl32.Vec2) mgl32.Mat4 {
	return BoardModel().Mul4(mgl32.Translate3D(offset.X(), offset.Y(), pieceLift))
}

// SelectorModel sizes the unit selector square to one cell and lifts it just off the board.
//
// Parameters:
//   - cell: the selector cell
//   - width, height: board dimensions in cells
//
// Returns:
//   - mgl32.Mat4: the model matrix
func SelectorModel(cell board.GridCell, width, height int) mgl32.Mat4 {
	o := cell.Offset(width, height)
	return BoardModel().
		Mul4(mgl32.Translate3D(o.X(), o.Y(), selectorLift)).
		Mul4(mgl32.Scale3D(1/float32(width), 1/float32(height), 1))
}
