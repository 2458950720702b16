package terminal

// TerminalOption is a functional option applied during NewTerminal.
type TerminalOption func(*terminal)

// WithTitle sets the heading drawn above the board.
func WithTitle(title string) TerminalOption {
	return func(t *terminal) {
		t.title = title
	}
}
