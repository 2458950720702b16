package selection

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/board"
)

// State is the selection state: Idle or Armed.
type State int

const (
	StateIdle State = iota
	StateArmed
)

func (s State) String() string {
	if s == StateArmed {
		return "armed"
	}
	return "idle"
}

// Direction is one of the four selector moves.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	return [...]string{"up", "down", "left", "right"}[d]
}

// delta returns the cell displacement for d. Up moves toward higher rows.
func (d Direction) delta() (dc, dr int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirDown:
		return 0, -1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// PendingDelta counts the selector steps taken in each direction since a piece was armed.
type PendingDelta struct {
	Up, Down, Left, Right int
}

// Net returns the displacement the counters add up to: (Right-Left, Up-Down).
func (p PendingDelta) Net() (dc, dr int) {
	return p.Right - p.Left, p.Up - p.Down
}

func (p *PendingDelta) add(d Direction) {
	switch d {
	case DirUp:
		p.Up++
	case DirDown:
		p.Down++
	case DirLeft:
		p.Left++
	case DirRight:
		p.Right++
	}
}

// EventKind classifies the outcome of one input action.
type EventKind int

const (
	EventSelectorMoved EventKind = iota
	EventSelectorBlocked
	EventArmed
	EventArmIgnored
	EventCommitted
	EventRejected
	EventTexturesToggled
	EventQuit
)

func (k EventKind) String() string {
	return [...]string{
		"selector-moved",
		"selector-blocked",
		"armed",
		"arm-ignored",
		"committed",
		"rejected",
		"textures-toggled",
		"quit",
	}[k]
}

// Event reports what an input action did.
type Event struct {
	Kind EventKind

	// Piece is the piece involved, -1 when none.
	Piece int

	// From and To are the selector cells for selector events and the piece cells for
	// commit and reject events.
	From, To board.GridCell

	// Textures holds the new texture flag for EventTexturesToggled.
	Textures bool

	// Err explains a rejected commit.
	Err error
}

func (e Event) String() string {
	switch e.Kind {
	case EventSelectorMoved, EventSelectorBlocked:
		return fmt.Sprintf("%s %s -> %s", e.Kind, e.From.Square(), e.To.Square())
	case EventArmed:
		return fmt.Sprintf("armed piece %d on %s", e.Piece, e.From.Square())
	case EventCommitted:
		return fmt.Sprintf("piece %d %s -> %s", e.Piece, e.From.Square(), e.To.Square())
	case EventRejected:
		return fmt.Sprintf("piece %d %s -> %s rejected: %v", e.Piece, e.From.Square(), e.To.Square(), e.Err)
	case EventTexturesToggled:
		return fmt.Sprintf("textures %v", e.Textures)
	default:
		return e.Kind.String()
	}
}

// KeyBindings maps the selection actions to keys.
type KeyBindings struct {
	Up, Down, Left, Right common.Key
	Arm                   common.Key
	Textures              common.Key
	Quit                  []common.Key
}

// DefaultKeyBindings uses the arrow keys, Space to arm and commit, T for textures and Q or Esc to quit.
var DefaultKeyBindings = KeyBindings{
	Up:       common.KeyUp,
	Down:     common.KeyDown,
	Left:     common.KeyLeft,
	Right:    common.KeyRight,
	Arm:      common.KeySpace,
	Textures: common.KeyT,
	Quit:     []common.Key{common.KeyQ, common.KeyEsc},
}
