package selection

import "github.com/Carmen-Shannon/oxy-chessboard/engine/board"

// InputContextOption is a functional option for configuring an InputContext.
type InputContextOption func(*InputContext)

// WithSelector sets the starting selector cell. Ignored if the cell is off the board.
//
// Parameters:
//   - cell: the starting cell
//
// Returns:
//   - InputContextOption: a function that places the selector
func WithSelector(cell board.GridCell) InputContextOption {
	return func(ic *InputContext) {
		if ic.board.InBounds(cell) {
			ic.selector = cell
		}
	}
}

// WithKeyBindings overrides the selection key bindings.
func WithKeyBindings(keys KeyBindings) InputContextOption {
	return func(ic *InputContext) {
		ic.keys = keys
	}
}

// WithTextures sets the initial texture blending flag.
func WithTextures(enabled bool) InputContextOption {
	return func(ic *InputContext) {
		ic.textures = enabled
	}
}
