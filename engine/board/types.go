package board

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/notnil/chess"
)

// GridCell is an integer (column, row) position on the board. Column grows to the right
// and row grows away from the blue side.
type GridCell struct {
	Col int
	Row int
}

// Add returns the cell displaced by (dc, dr).
func (c GridCell) Add(dc, dr int) GridCell {
	return GridCell{Col: c.Col + dc, Row: c.Row + dr}
}

// Offset returns the cell center relative to the board center, in board-normalized units
// where the whole board spans [-0.5, 0.5] on each axis and one cell is 1/width by 1/height.
//
// Parameters:
//   - width, height: board dimensions in cells
//
// Returns:
//   - mgl32.Vec2: the continuous render-space offset of the cell center
func (c GridCell) Offset(width, height int) mgl32.Vec2 {
	return mgl32.Vec2{
		(float32(c.Col)+0.5)/float32(width) - 0.5,
		(float32(c.Row)+0.5)/float32(height) - 0.5,
	}
}

// Square returns the algebraic name of the cell ("a1" through "h8") when it lies on a standard
// 8x8 board, and a "(col,row)" pair otherwise.
func (c GridCell) Square() string {
	if c.Col < 0 || c.Col > 7 || c.Row < 0 || c.Row > 7 {
		return c.String()
	}
	return chess.NewSquare(chess.File(c.Col), chess.Rank(c.Row)).String()
}

func (c GridCell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Team is the fixed side a piece belongs to.
type Team int

const (
	TeamBlue Team = iota
	TeamRed
)

func (t Team) String() string {
	if t == TeamRed {
		return "red"
	}
	return "blue"
}

// Color returns the team's RGBA draw color.
func (t Team) Color() mgl32.Vec4 {
	if t == TeamRed {
		return mgl32.Vec4{1, 0, 0, 1}
	}
	return mgl32.Vec4{0, 0, 1, 1}
}

// PieceCount is the number of pieces on the board.
const PieceCount = 32

// TeamOf returns the team for a piece index: blue for 0-15, red for 16-31.
func TeamOf(index int) Team {
	if index >= PieceCount/2 {
		return TeamRed
	}
	return TeamBlue
}

// Piece is a snapshot of one piece.
type Piece struct {
	Index int
	Team  Team
	Cell  GridCell
}

// Layout assigns an initial cell to each of the PieceCount pieces, by index.
type Layout [PieceCount]GridCell

// StandardLayout places pieces 0-7 on row 0, 8-15 on row 1, 16-23 on row height-2 and
// 24-31 on row height-1. Requires width >= 8 and height >= 4.
//
// Parameters:
//   - height: board height in rows
//
// Returns:
//   - Layout: the initial cells
func StandardLayout(height int) Layout {
	var l Layout
	rows := [4]int{0, 1, height - 2, height - 1}
	for i := range PieceCount {
		l[i] = GridCell{Col: i % 8, Row: rows[i/8]}
	}
	return l
}
