package common

// Key is a virtual key code for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key int

const (
	KeyH     Key = 72 // H key (ASCII)
	KeyL     Key = 76 // L key (ASCII)
	KeyO     Key = 79 // O key (ASCII)
	KeyP     Key = 80 // P key (ASCII)
	KeyQ     Key = 81 // Q key (ASCII)
	KeyT     Key = 84 // T key (ASCII)
	KeySpace Key = 32 // Spacebar (ASCII)
)

// Non-printable keys
const (
	KeyEsc   Key = 256 // Escape key (GLFW)
	KeyRight Key = 262 // Right arrow (GLFW)
	KeyLeft  Key = 263 // Left arrow (GLFW)
	KeyDown  Key = 264 // Down arrow (GLFW)
	KeyUp    Key = 265 // Up arrow (GLFW)
)
