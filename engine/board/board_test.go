package board

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestStandardLayout(t *testing.T) {
	b, err := NewBoard()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		index int
		cell  GridCell
		team  Team
	}{
		{0, GridCell{0, 0}, TeamBlue},
		{7, GridCell{7, 0}, TeamBlue},
		{8, GridCell{0, 1}, TeamBlue},
		{15, GridCell{7, 1}, TeamBlue},
		{16, GridCell{0, 6}, TeamRed},
		{31, GridCell{7, 7}, TeamRed},
	}
	for _, tt := range tests {
		p, ok := b.Piece(tt.index)
		if !ok || p.Cell != tt.cell || p.Team != tt.team {
			t.Errorf("piece %d = %+v, want cell %v team %v", tt.index, p, tt.cell, tt.team)
		}
	}
	if got := len(b.TakeDirty()); got != PieceCount {
		t.Fatalf("new board should mark every piece dirty, got %d", got)
	}
	if got := b.TakeDirty(); len(got) != 0 {
		t.Fatalf("dirty set should be cleared, got %v", got)
	}
}

func TestMove(t *testing.T) {
	b, err := NewBoard()
	if err != nil {
		t.Fatal(err)
	}
	b.TakeDirty()

	tests := []struct {
		name  string
		index int
		to    GridCell
		err   error
	}{
		{"empty cell", 0, GridCell{0, 3}, nil},
		{"occupied", 1, GridCell{2, 0}, ErrOccupied},
		{"off the board", 2, GridCell{2, 8}, ErrOutOfBounds},
		{"negative", 2, GridCell{-1, 0}, ErrOutOfBounds},
		{"unknown piece", 32, GridCell{4, 4}, ErrUnknownPiece},
		{"own cell", 3, GridCell{3, 0}, nil},
	}
	for _, tt := range tests {
		before := b.Pieces()
		err := b.Move(tt.index, tt.to)
		if !errors.Is(err, tt.err) {
			t.Fatalf("%s: err = %v, want %v", tt.name, err, tt.err)
		}
		if err != nil {
			after := b.Pieces()
			for i := range before {
				if before[i] != after[i] {
					t.Fatalf("%s: rejected move changed piece %d", tt.name, i)
				}
			}
		}
	}

	if dirty := b.TakeDirty(); len(dirty) != 1 || dirty[0] != 0 {
		t.Fatalf("dirty = %v, want [0]", dirty)
	}
	if idx, ok := b.PieceAt(GridCell{0, 3}); !ok || idx != 0 {
		t.Fatalf("PieceAt = %d, %v", idx, ok)
	}
	if b.Occupied(GridCell{0, 0}, -1) {
		t.Fatal("vacated cell still occupied")
	}
	if b.Occupied(GridCell{0, 3}, 0) {
		t.Fatal("Occupied should skip the excepted piece")
	}
}

func TestNoSharedCells(t *testing.T) {
	b, err := NewBoard()
	if err != nil {
		t.Fatal(err)
	}
	for i := range PieceCount {
		for c := range 8 {
			for r := range 8 {
				_ = b.Move(i, GridCell{c, r})
				seen := map[GridCell]int{}
				for _, p := range b.Pieces() {
					if j, dup := seen[p.Cell]; dup {
						t.Fatalf("pieces %d and %d share %v", j, p.Index, p.Cell)
					}
					seen[p.Cell] = p.Index
				}
			}
		}
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		cell GridCell
		want mgl32.Vec2
	}{
		{GridCell{0, 0}, mgl32.Vec2{-0.4375, -0.4375}},
		{GridCell{7, 7}, mgl32.Vec2{0.4375, 0.4375}},
		{GridCell{1, 0}, mgl32.Vec2{-0.3125, -0.4375}},
		{GridCell{4, 3}, mgl32.Vec2{0.0625, -0.0625}},
	}
	for _, tt := range tests {
		if got := tt.cell.Offset(8, 8); !got.ApproxEqual(tt.want) {
			t.Errorf("Offset(%v) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestSquareNames(t *testing.T) {
	tests := []struct {
		cell GridCell
		want string
	}{
		{GridCell{0, 0}, "a1"},
		{GridCell{7, 0}, "h1"},
		{GridCell{4, 6}, "e7"},
		{GridCell{7, 7}, "h8"},
		{GridCell{9, 2}, "(9,2)"},
	}
	for _, tt := range tests {
		if got := tt.cell.Square(); got != tt.want {
			t.Errorf("Square(%v) = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestCustomLayoutAndValidation(t *testing.T) {
	var layout Layout
	for i := range PieceCount {
		layout[i] = GridCell{Col: i % 4, Row: i / 4}
	}
	b, err := NewBoard(WithSize(4, 10), WithLayout(layout))
	if err != nil {
		t.Fatal(err)
	}
	if b.Width() != 4 || b.Height() != 10 {
		t.Fatalf("size = %dx%d", b.Width(), b.Height())
	}

	layout[5] = layout[4]
	if _, err := NewBoard(WithSize(4, 10), WithLayout(layout)); !errors.Is(err, ErrOccupied) {
		t.Fatalf("duplicate layout: err = %v", err)
	}
	if _, err := NewBoard(WithSize(4, 4)); err == nil {
		t.Fatal("standard layout on a 4x4 board should fail")
	}
	if _, err := NewBoard(WithSize(0, 8)); err == nil {
		t.Fatal("zero width should fail")
	}
}

func TestReset(t *testing.T) {
	b, _ := NewBoard()
	if err := b.Move(0, GridCell{3, 3}); err != nil {
		t.Fatal(err)
	}
	b.TakeDirty()
	b.Reset()
	if p, _ := b.Piece(0); p.Cell != (GridCell{0, 0}) {
		t.Fatalf("piece 0 at %v after reset", p.Cell)
	}
	if len(b.TakeDirty()) != PieceCount {
		t.Fatal("reset should mark every piece dirty")
	}
}
