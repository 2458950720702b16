package selection

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/board"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

func newBoard(t *testing.T, options ...board.BoardBuilderOption) board.Board {
	t.Helper()
	b, err := board.NewBoard(options...)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// sparseLayout puts the listed pieces on the given cells and parks the rest on rows 4-7.
func sparseLayout(cells map[int]board.GridCell) board.Layout {
	var l board.Layout
	for i := range board.PieceCount {
		if i < 16 {
			l[i] = board.GridCell{Col: i % 8, Row: 6 + i/8}
		} else {
			l[i] = board.GridCell{Col: i % 8, Row: 4 + (i-16)/8}
		}
	}
	for i, c := range cells {
		l[i] = c
	}
	return l
}

func TestArmRightCommitMovesOneEighth(t *testing.T) {
	b := newBoard(t, board.WithLayout(sparseLayout(map[int]board.GridCell{0: {Col: 0, Row: 0}})))
	ic := NewInputContext(b)
	before := b.Offset(0)

	if ev := ic.PressArm(); ev.Kind != EventArmed || ev.Piece != 0 {
		t.Fatalf("arm: %v", ev)
	}
	ic.MoveSelector(DirRight)
	if p, _ := b.Piece(0); p.Cell != (board.GridCell{Col: 0, Row: 0}) {
		t.Fatal("piece moved before commit")
	}
	if ev := ic.PressArm(); ev.Kind != EventCommitted {
		t.Fatalf("commit: %v", ev)
	}

	after := b.Offset(0)
	if !after.Sub(before).ApproxEqual(mgl32.Vec2{1.0 / 8, 0}) {
		t.Fatalf("offset moved by %v, want (1/8, 0)", after.Sub(before))
	}
	if ic.State() != StateIdle {
		t.Fatal("commit should return to idle")
	}
}

func TestCollisionRejectsWithRollback(t *testing.T) {
	b := newBoard(t, board.WithLayout(sparseLayout(map[int]board.GridCell{
		0: {Col: 1, Row: 0},
		1: {Col: 2, Row: 0},
	})))
	ic := NewInputContext(b, WithSelector(board.GridCell{Col: 1, Row: 0}))
	b.TakeDirty()
	before := b.Pieces()

	ic.PressArm()
	ic.MoveSelector(DirRight)
	ev := ic.PressArm()
	if ev.Kind != EventRejected || !errors.Is(ev.Err, board.ErrOccupied) {
		t.Fatalf("commit: %v", ev)
	}
	after := b.Pieces()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("piece %d changed: %v -> %v", i, before[i], after[i])
		}
	}
	if len(b.TakeDirty()) != 0 {
		t.Fatal("rejected move should not dirty any piece")
	}
	if ic.State() != StateIdle {
		t.Fatal("reject should return to idle")
	}
	if ic.Selector() != (board.GridCell{Col: 2, Row: 0}) {
		t.Fatalf("selector = %v, want it left on the rejected destination", ic.Selector())
	}
}

func TestZeroNetDisplacementLeavesPiece(t *testing.T) {
	b := newBoard(t)
	ic := NewInputContext(b, WithSelector(board.GridCell{Col: 3, Row: 1}))
	ic.PressArm()
	ic.MoveSelector(DirUp)
	ic.MoveSelector(DirLeft)
	ic.MoveSelector(DirDown)
	ic.MoveSelector(DirRight)
	if got := ic.Pending(); got != (PendingDelta{Up: 1, Down: 1, Left: 1, Right: 1}) {
		t.Fatalf("pending = %+v", got)
	}
	ev := ic.PressArm()
	if ev.Kind != EventCommitted || ev.From != ev.To {
		t.Fatalf("commit: %v", ev)
	}
	if p, _ := b.Piece(11); p.Cell != (board.GridCell{Col: 3, Row: 1}) {
		t.Fatalf("piece 11 at %v", p.Cell)
	}
}

func TestArmOnEmptyCellIsIgnored(t *testing.T) {
	b := newBoard(t)
	ic := NewInputContext(b, WithSelector(board.GridCell{Col: 4, Row: 4}))
	if ev := ic.PressArm(); ev.Kind != EventArmIgnored {
		t.Fatalf("arm: %v", ev)
	}
	if _, armed := ic.ArmedPiece(); armed || ic.State() != StateIdle {
		t.Fatal("should stay idle")
	}
}

func TestSelectorClampsAtEdges(t *testing.T) {
	b := newBoard(t)
	ic := NewInputContext(b)

	tests := []struct {
		dir  Direction
		kind EventKind
		want board.GridCell
	}{
		{DirLeft, EventSelectorBlocked, board.GridCell{Col: 0, Row: 0}},
		{DirDown, EventSelectorBlocked, board.GridCell{Col: 0, Row: 0}},
		{DirUp, EventSelectorMoved, board.GridCell{Col: 0, Row: 1}},
		{DirRight, EventSelectorMoved, board.GridCell{Col: 1, Row: 1}},
	}
	for i, tt := range tests {
		ev := ic.MoveSelector(tt.dir)
		if ev.Kind != tt.kind || ic.Selector() != tt.want {
			t.Fatalf("step %d: %v, selector %v, want %v at %v", i, ev.Kind, ic.Selector(), tt.kind, tt.want)
		}
	}
}

func TestBlockedMovesAreNotCounted(t *testing.T) {
	b := newBoard(t)
	ic := NewInputContext(b)
	ic.PressArm()
	ic.MoveSelector(DirLeft)
	ic.MoveSelector(DirDown)
	if got := ic.Pending(); got != (PendingDelta{}) {
		t.Fatalf("pending = %+v, want zero", got)
	}
}

func TestCommitOffBoardIsRejected(t *testing.T) {
	// Seven steps up from row 3 lands on row 10.
	b := newBoard(t, board.WithLayout(sparseLayout(map[int]board.GridCell{0: {Col: 0, Row: 3}})))
	ic := NewInputContext(b, WithSelector(board.GridCell{Col: 0, Row: 3}))
	ic.PressArm()
	ic.selector = board.GridCell{Col: 0, Row: 0}
	for range 7 {
		ic.MoveSelector(DirUp)
	}
	ev := ic.PressArm()
	if ev.Kind != EventRejected || !errors.Is(ev.Err, board.ErrOutOfBounds) {
		t.Fatalf("commit: %v", ev)
	}
	if p, _ := b.Piece(0); p.Cell != (board.GridCell{Col: 0, Row: 3}) {
		t.Fatalf("piece 0 at %v", p.Cell)
	}
}

func TestProcessUsesPerKeyLatches(t *testing.T) {
	b := newBoard(t)
	ic := NewInputContext(b)
	keys := input.NewKeyState()

	keys.Press(common.KeyUp)
	if evs := ic.Process(keys); len(evs) != 1 || evs[0].Kind != EventSelectorMoved {
		t.Fatalf("first frame: %v", evs)
	}
	if evs := ic.Process(keys); len(evs) != 0 {
		t.Fatalf("held key fired again: %v", evs)
	}

	keys.Press(common.KeyRight)
	if evs := ic.Process(keys); len(evs) != 1 || evs[0].To != (board.GridCell{Col: 1, Row: 1}) {
		t.Fatalf("second key while first held: %v", evs)
	}

	keys.ReleaseAll()
	ic.Process(keys)
	keys.Press(common.KeyUp)
	ic.Process(keys)
	if ic.Selector() != (board.GridCell{Col: 1, Row: 2}) {
		t.Fatalf("selector = %v", ic.Selector())
	}
}

func TestProcessTexturesAndQuit(t *testing.T) {
	ic := NewInputContext(newBoard(t))
	keys := input.NewKeyState()

	keys.Press(common.KeyT)
	evs := ic.Process(keys)
	if len(evs) != 1 || evs[0].Kind != EventTexturesToggled || !ic.TexturesEnabled() {
		t.Fatalf("textures: %v", evs)
	}
	keys.Release(common.KeyT)
	ic.Process(keys)
	keys.Press(common.KeyT)
	ic.Process(keys)
	if ic.TexturesEnabled() {
		t.Fatal("second press should turn textures off")
	}

	keys.Press(common.KeyEsc)
	evs = ic.Process(keys)
	if len(evs) != 1 || evs[0].Kind != EventQuit || !ic.QuitRequested() {
		t.Fatalf("quit: %v", evs)
	}
}

func TestReset(t *testing.T) {
	ic := NewInputContext(newBoard(t), WithSelector(board.GridCell{Col: 2, Row: 1}))
	ic.PressArm()
	ic.MoveSelector(DirUp)
	ic.Reset()
	if ic.State() != StateIdle || ic.Selector() != (board.GridCell{}) || ic.Pending() != (PendingDelta{}) {
		t.Fatal("reset should clear selection state")
	}
}

func TestKeyBindingsReplaceDefaults(t *testing.T) {
	ic := NewInputContext(newBoard(t), WithKeyBindings(KeyBindings{
		Up:       common.KeyO,
		Down:     common.KeyP,
		Left:     common.KeyH,
		Right:    common.KeyL,
		Arm:      common.KeyT,
		Textures: common.KeySpace,
		Quit:     []common.Key{common.KeyQ},
	}))
	keys := input.NewKeyState()

	steps := []struct {
		key    common.Key
		events int
	}{
		{common.KeyRight, 0},
		{common.KeyEsc, 0},
		{common.KeyL, 1},
		{common.KeyO, 1},
		{common.KeySpace, 1},
	}
	for _, s := range steps {
		keys.ReleaseAll()
		ic.Process(keys)
		keys.Press(s.key)
		if evs := ic.Process(keys); len(evs) != s.events {
			t.Fatalf("key %v: events = %v, want %d", s.key, evs, s.events)
		}
	}
	if ic.Selector() != (board.GridCell{Col: 1, Row: 1}) {
		t.Fatalf("selector = %v", ic.Selector())
	}
	if ic.QuitRequested() {
		t.Fatal("unbound Esc should not quit")
	}
	if !ic.TexturesEnabled() {
		t.Fatal("rebound textures key should toggle textures")
	}
}
