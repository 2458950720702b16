// Package board holds the discrete occupancy model: 32 pieces on an integer grid with the rule
// that no two pieces ever share a cell.
package board

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrOutOfBounds  = errors.New("board: cell is off the board")
	ErrOccupied     = errors.New("board: cell is occupied")
	ErrUnknownPiece = errors.New("board: unknown piece index")
)

type boardImpl struct {
	mu *sync.Mutex

	width  int
	height int
	layout Layout

	cells [PieceCount]GridCell
	dirty map[int]struct{}
}

// Board is the occupancy model. Piece cells are canonical; render offsets are derived from them.
type Board interface {
	// Width returns the number of columns.
	Width() int

	// Height returns the number of rows.
	Height() int

	// Pieces returns a snapshot of every piece ordered by index.
	//
	// Returns:
	//   - []Piece: PieceCount pieces
	Pieces() []Piece

	// Piece returns the piece with the given index.
	//
	// Parameters:
	//   - index: piece index in [0, PieceCount)
	//
	// Returns:
	//   - Piece: the piece snapshot
	//   - bool: false if index is out of range
	Piece(index int) (Piece, bool)

	// PieceAt returns the piece standing on cell, if any.
	//
	// Parameters:
	//   - cell: the cell to query
	//
	// Returns:
	//   - int: the piece index, -1 when empty
	//   - bool: true if the cell is occupied
	PieceAt(cell GridCell) (int, bool)

	// Occupied reports whether any piece other than except stands on cell.
	// Pass -1 to consider every piece.
	Occupied(cell GridCell, except int) bool

	// InBounds reports whether cell lies on the board.
	InBounds(cell GridCell) bool

	// Move relocates piece index to cell. The board is unchanged when an error is returned.
	//
	// Parameters:
	//   - index: the piece to move
	//   - to: destination cell
	//
	// Returns:
	//   - error: ErrUnknownPiece, ErrOutOfBounds or ErrOccupied (wrapped with the cell)
	Move(index int, to GridCell) error

	// Offset returns the render-space offset of a piece's cell center from the board center.
	Offset(index int) mgl32.Vec2

	// TakeDirty returns the indices of pieces whose cell changed since the last call and clears the set.
	TakeDirty() []int

	// Reset puts every piece back on its layout cell and marks all of them dirty.
	Reset()
}

var _ Board = &boardImpl{}

// NewBoard creates an 8x8 board with the standard layout unless options say otherwise.
//
// Parameters:
//   - options: functional options to configure the board
//
// Returns:
//   - Board: the new board, every piece marked dirty
//   - error: if the dimensions or layout are invalid
func NewBoard(options ...BoardBuilderOption) (Board, error) {
	b := &boardImpl{
		mu:     &sync.Mutex{},
		width:  8,
		height: 8,
		dirty:  make(map[int]struct{}, PieceCount),
	}
	custom := false
	for _, option := range options {
		if option(b) {
			custom = true
		}
	}

	if b.width < 1 || b.height < 1 {
		return nil, fmt.Errorf("board: invalid size %dx%d", b.width, b.height)
	}
	if !custom {
		if b.width < 8 || b.height < 4 {
			return nil, fmt.Errorf("board: standard layout needs at least 8x4, got %dx%d", b.width, b.height)
		}
		b.layout = StandardLayout(b.height)
	}

	seen := make(map[GridCell]int, PieceCount)
	for i, cell := range b.layout {
		if !b.InBounds(cell) {
			return nil, fmt.Errorf("board: piece %d at %v: %w", i, cell, ErrOutOfBounds)
		}
		if j, dup := seen[cell]; dup {
			return nil, fmt.Errorf("board: pieces %d and %d both at %v: %w", j, i, cell, ErrOccupied)
		}
		seen[cell] = i
	}

	b.reset()
	return b, nil
}

func (b *boardImpl) Width() int {
	return b.width
}

func (b *boardImpl) Height() int {
	return b.height
}

func (b *boardImpl) Pieces() []Piece {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Piece, PieceCount)
	for i, cell := range b.cells {
		out[i] = Piece{Index: i, Team: TeamOf(i), Cell: cell}
	}
	return out
}

func (b *boardImpl) Piece(index int) (Piece, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= PieceCount {
		return Piece{}, false
	}
	return Piece{Index: index, Team: TeamOf(index), Cell: b.cells[index]}, true
}

func (b *boardImpl) PieceAt(cell GridCell) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pieceAt(cell, -1)
}

func (b *boardImpl) Occupied(cell GridCell, except int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.pieceAt(cell, except)
	return ok
}

// InBounds does not lock: width and height never change after construction.
func (b *boardImpl) InBounds(cell GridCell) bool {
	return cell.Col >= 0 && cell.Col < b.width && cell.Row >= 0 && cell.Row < b.height
}

func (b *boardImpl) Move(index int, to GridCell) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= PieceCount {
		return fmt.Errorf("move piece %d: %w", index, ErrUnknownPiece)
	}
	if !b.InBounds(to) {
		return fmt.Errorf("move piece %d to %v: %w", index, to, ErrOutOfBounds)
	}
	if other, ok := b.pieceAt(to, index); ok {
		return fmt.Errorf("move piece %d to %v held by piece %d: %w", index, to, other, ErrOccupied)
	}
	if b.cells[index] == to {
		return nil
	}
	b.cells[index] = to
	b.dirty[index] = struct{}{}
	return nil
}

func (b *boardImpl) Offset(index int) mgl32.Vec2 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= PieceCount {
		return mgl32.Vec2{}
	}
	return b.cells[index].Offset(b.width, b.height)
}

func (b *boardImpl) TakeDirty() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]int, 0, len(b.dirty))
	for i := range PieceCount {
		if _, ok := b.dirty[i]; ok {
			out = append(out, i)
		}
	}
	clear(b.dirty)
	return out
}

func (b *boardImpl) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

// reset copies the layout into the live cells and marks every piece dirty.
// Caller must hold the mutex.
func (b *boardImpl) reset() {
	b.cells = b.layout
	for i := range PieceCount {
		b.dirty[i] = struct{}{}
	}
}

// pieceAt scans for a piece on cell, skipping except.
// Caller must hold the mutex.
func (b *boardImpl) pieceAt(cell GridCell, except int) (int, bool) {
	for i, c := range b.cells {
		if i != except && c == cell {
			return i, true
		}
	}
	return -1, false
}
