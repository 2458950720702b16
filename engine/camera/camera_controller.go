package camera

import (
	"github.com/Carmen-Shannon/oxy-chessboard/common"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/input"
)

// Gesture identifies one of the mutually exclusive camera gestures.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureOrbitLeft
	GestureOrbitRight
	GestureZoomOut
	GestureZoomIn
)

func (g Gesture) String() string {
	switch g {
	case GestureOrbitLeft:
		return "orbit-left"
	case GestureOrbitRight:
		return "orbit-right"
	case GestureZoomOut:
		return "zoom-out"
	case GestureZoomIn:
		return "zoom-in"
	default:
		return "none"
	}
}

// GestureKeys binds each gesture to a key.
type GestureKeys struct {
	OrbitLeft  common.Key
	OrbitRight common.Key
	ZoomOut    common.Key
	ZoomIn     common.Key
}

// DefaultGestureKeys binds H/L to orbit, O to zoom out and P to zoom in.
var DefaultGestureKeys = GestureKeys{
	OrbitLeft:  common.KeyH,
	OrbitRight: common.KeyL,
	ZoomOut:    common.KeyO,
	ZoomIn:     common.KeyP,
}

// CameraController drives a Camera's position from keyboard gestures.
// Orbit gestures rotate the position about the world Y axis through the origin; zoom gestures
// scale the position toward or away from the origin and keep its height inside [MinHeight, MaxHeight].
// Only one gesture applies per frame: the first gesture observed keeps the lock until its key is released.
type CameraController interface {
	// Camera returns the camera this controller moves.
	//
	// Returns:
	//   - Camera: the controlled camera
	Camera() Camera

	// Update samples src and applies at most one gesture for a frame lasting dt seconds.
	//
	// Parameters:
	//   - src: the polled input source
	//   - dt: frame duration in seconds
	//
	// Returns:
	//   - Gesture: the gesture that held the lock this frame, GestureNone if no gesture key was down
	Update(src input.Source, dt float32) Gesture

	// ActiveGesture returns the gesture currently holding the lock.
	//
	// Returns:
	//   - Gesture: the locked gesture or GestureNone
	ActiveGesture() Gesture

	// OrbitLeft rotates the camera position counter-clockwise (seen from above) by AngularSpeed*dt degrees.
	//
	// Parameters:
	//   - dt: elapsed seconds
	OrbitLeft(dt float32)

	// OrbitRight rotates the camera position clockwise (seen from above) by AngularSpeed*dt degrees.
	//
	// Parameters:
	//   - dt: elapsed seconds
	OrbitRight(dt float32)

	// ZoomOut scales the position away from the origin by the zoom-out factor, clamped to MaxHeight.
	//
	// Returns:
	//   - bool: false when the camera already sat at the ceiling
	ZoomOut() bool

	// ZoomIn scales the position toward the origin by the zoom-in factor, clamped to MinHeight.
	//
	// Returns:
	//   - bool: false when the camera already sat at the floor
	ZoomIn() bool

	// AngularSpeed returns the orbit speed in degrees per second.
	AngularSpeed() float32

	// MinHeight returns the lowest camera height zooming can reach.
	MinHeight() float32

	// MaxHeight returns the highest camera height zooming can reach.
	MaxHeight() float32

	// Keys returns the current gesture key bindings.
	Keys() GestureKeys
}
