// Package selection implements the selector and the Idle/Armed state machine that relocates pieces.
//
// Idle: direction keys move the selector one cell, clamped at the edges. Arming on a cell that
// holds a piece enters Armed.
// Armed: direction keys move the selector and count the steps; the piece stays put. Arming again
// commits the piece to its cell plus the net step count. A destination that is off the board or
// held by another piece rejects the move and leaves every piece where it was. Either way the
// state returns to Idle.
package selection

import (
	"github.com/Carmen-Shannon/oxy-chessboard/common"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/board"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/input"
)

// InputContext holds all selection state that persists between frames: the selector cell,
// the armed piece with its pending steps, the per-key edge latches and the texture/quit flags.
// It is driven from the frame loop and is not safe for concurrent use.
type InputContext struct {
	board board.Board
	keys  KeyBindings
	latch *input.Latch

	selector board.GridCell
	state    State
	armed    int
	pending  PendingDelta

	textures bool
	quit     bool
}

// NewInputContext creates an Idle context with the selector on (0,0).
//
// Parameters:
//   - b: the board the selection operates on
//   - options: functional options to configure the context
//
// Returns:
//   - *InputContext: the new context
func NewInputContext(b board.Board, options ...InputContextOption) *InputContext {
	ic := &InputContext{
		board: b,
		keys:  DefaultKeyBindings,
		latch: input.NewLatch(),
		armed: -1,
	}
	for _, option := range options {
		option(ic)
	}
	return ic
}

func (ic *InputContext) Board() board.Board {
	return ic.board
}

// Selector returns the selector cell.
func (ic *InputContext) Selector() board.GridCell {
	return ic.selector
}

func (ic *InputContext) State() State {
	return ic.state
}

// ArmedPiece returns the armed piece index; the bool is false while Idle.
func (ic *InputContext) ArmedPiece() (int, bool) {
	return ic.armed, ic.state == StateArmed
}

// Pending returns the steps counted since arming. Zero while Idle.
func (ic *InputContext) Pending() PendingDelta {
	return ic.pending
}

func (ic *InputContext) TexturesEnabled() bool {
	return ic.textures
}

func (ic *InputContext) QuitRequested() bool {
	return ic.quit
}

// Process samples src once and applies every action whose key went down this frame.
// Each key fires once per physical press regardless of how many frames it is held.
//
// Parameters:
//   - src: the polled input source
//
// Returns:
//   - []Event: the outcomes in the order the actions were applied
func (ic *InputContext) Process(src input.Source) []Event {
	var events []Event
	for _, m := range []struct {
		key common.Key
		dir Direction
	}{
		{ic.keys.Up, DirUp},
		{ic.keys.Down, DirDown},
		{ic.keys.Left, DirLeft},
		{ic.keys.Right, DirRight},
	} {
		if ic.latch.Pressed(src, m.key) {
			events = append(events, ic.MoveSelector(m.dir))
		}
	}
	if ic.latch.Pressed(src, ic.keys.Arm) {
		events = append(events, ic.PressArm())
	}
	if ic.latch.Pressed(src, ic.keys.Textures) {
		events = append(events, ic.ToggleTextures())
	}
	for _, key := range ic.keys.Quit {
		if ic.latch.Pressed(src, key) {
			events = append(events, ic.RequestQuit())
			break
		}
	}
	return events
}

// MoveSelector moves the selector one cell in dir. A move off the board is clamped and
// reported as EventSelectorBlocked. While Armed, a move that happened is counted.
//
// Parameters:
//   - dir: the direction to move
//
// Returns:
//   - Event: EventSelectorMoved or EventSelectorBlocked
func (ic *InputContext) MoveSelector(dir Direction) Event {
	from := ic.selector
	to := from.Add(dir.delta())
	ev := Event{Kind: EventSelectorBlocked, Piece: -1, From: from, To: from}
	if !ic.board.InBounds(to) {
		return ev
	}
	ic.selector = to
	if ic.state == StateArmed {
		ic.pending.add(dir)
		ev.Piece = ic.armed
	}
	ev.Kind = EventSelectorMoved
	ev.To = to
	return ev
}

// PressArm handles the arm/commit action.
//
// Idle: arms the piece under the selector, or does nothing on an empty cell.
// Armed: commits the armed piece by its net pending displacement; a collision or off-board
// destination is rejected with no piece moved. Always returns to Idle.
//
// Returns:
//   - Event: EventArmed, EventArmIgnored, EventCommitted or EventRejected
func (ic *InputContext) PressArm() Event {
	if ic.state == StateIdle {
		idx, ok := ic.board.PieceAt(ic.selector)
		if !ok {
			return Event{Kind: EventArmIgnored, Piece: -1, From: ic.selector, To: ic.selector}
		}
		ic.state = StateArmed
		ic.armed = idx
		ic.pending = PendingDelta{}
		return Event{Kind: EventArmed, Piece: idx, From: ic.selector, To: ic.selector}
	}

	idx := ic.armed
	piece, _ := ic.board.Piece(idx)
	dc, dr := ic.pending.Net()
	dest := piece.Cell.Add(dc, dr)

	ic.state = StateIdle
	ic.armed = -1
	ic.pending = PendingDelta{}

	if err := ic.board.Move(idx, dest); err != nil {
		return Event{Kind: EventRejected, Piece: idx, From: piece.Cell, To: dest, Err: err}
	}
	return Event{Kind: EventCommitted, Piece: idx, From: piece.Cell, To: dest}
}

// ToggleTextures flips texture blending.
func (ic *InputContext) ToggleTextures() Event {
	ic.textures = !ic.textures
	return Event{Kind: EventTexturesToggled, Piece: -1, Textures: ic.textures}
}

// RequestQuit marks the context as wanting to exit.
func (ic *InputContext) RequestQuit() Event {
	ic.quit = true
	return Event{Kind: EventQuit, Piece: -1}
}

// Reset returns to Idle with the selector on (0,0) and every latch released.
// The board itself is not touched.
func (ic *InputContext) Reset() {
	ic.selector = board.GridCell{}
	ic.state = StateIdle
	ic.armed = -1
	ic.pending = PendingDelta{}
	ic.latch.Reset()
}
