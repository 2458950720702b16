package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/input"
)

const (
	defaultAngularSpeed  float32 = 50
	defaultZoomInFactor  float32 = 0.995
	defaultZoomOutFactor float32 = 1.005
	defaultMinHeight     float32 = 1.1
	defaultMaxHeight     float32 = 10
)

// cameraControllerImpl is the single implementation of CameraController.
// It owns no positional state of its own: every gesture reads the camera position,
// transforms it and writes it back through Camera.SetPosition.
type cameraControllerImpl struct {
	mu  *sync.Mutex
	cam Camera

	angularSpeed  float32
	zoomInFactor  float32
	zoomOutFactor float32
	minHeight     float32
	maxHeight     float32
	keys          GestureKeys

	active Gesture
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller for cam with the default speeds and bounds:
// 50 degrees per second orbit, 0.995/1.005 zoom factors and a [1.1, 10] height band.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cam Camera, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:            &sync.Mutex{},
		cam:           cam,
		angularSpeed:  defaultAngularSpeed,
		zoomInFactor:  defaultZoomInFactor,
		zoomOutFactor: defaultZoomOutFactor,
		minHeight:     defaultMinHeight,
		maxHeight:     defaultMaxHeight,
		keys:          DefaultGestureKeys,
	}

	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.cam
}

func (cc *cameraControllerImpl) Update(src input.Source, dt float32) Gesture {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.active != GestureNone && !src.IsKeyDown(cc.keyFor(cc.active)) {
		cc.active = GestureNone
	}
	if cc.active == GestureNone {
		for _, g := range []Gesture{GestureOrbitLeft, GestureOrbitRight, GestureZoomOut, GestureZoomIn} {
			if src.IsKeyDown(cc.keyFor(g)) {
				cc.active = g
				break
			}
		}
	}

	switch cc.active {
	case GestureOrbitLeft:
		cc.orbit(cc.angularSpeed * dt)
	case GestureOrbitRight:
		cc.orbit(-cc.angularSpeed * dt)
	case GestureZoomOut:
		cc.zoomOut()
	case GestureZoomIn:
		cc.zoomIn()
	}
	return cc.active
}

func (cc *cameraControllerImpl) ActiveGesture() Gesture {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.active
}

func (cc *cameraControllerImpl) OrbitLeft(dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbit(cc.angularSpeed * dt)
}

func (cc *cameraControllerImpl) OrbitRight(dt float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbit(-cc.angularSpeed * dt)
}

func (cc *cameraControllerImpl) ZoomOut() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomOut()
}

func (cc *cameraControllerImpl) ZoomIn() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomIn()
}

func (cc *cameraControllerImpl) AngularSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.angularSpeed
}

func (cc *cameraControllerImpl) MinHeight() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minHeight
}

func (cc *cameraControllerImpl) MaxHeight() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxHeight
}

func (cc *cameraControllerImpl) Keys() GestureKeys {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.keys
}

// --- internal helpers ---

// keyFor returns the key bound to g.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) keyFor(g Gesture) common.Key {
	switch g {
	case GestureOrbitLeft:
		return cc.keys.OrbitLeft
	case GestureOrbitRight:
		return cc.keys.OrbitRight
	case GestureZoomOut:
		return cc.keys.ZoomOut
	case GestureZoomIn:
		return cc.keys.ZoomIn
	default:
		return -1
	}
}

// orbit rotates the camera position about +Y by degrees.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) orbit(degrees float32) {
	cc.cam.SetPosition(common.RotateAboutY(cc.cam.Position(), degrees))
}

// zoomOut scales away from the origin, pinning the height to maxHeight if it overshoots.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) zoomOut() bool {
	pos := cc.cam.Position()
	if pos.Y() >= cc.maxHeight {
		return false
	}
	pos = pos.Mul(cc.zoomOutFactor)
	if y := pos.Y(); y > cc.maxHeight {
		pos = pos.Mul(cc.maxHeight / y)
	}
	cc.cam.SetPosition(pos)
	return true
}

// zoomIn scales toward the origin, pinning the height to minHeight if it undershoots.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) zoomIn() bool {
	pos := cc.cam.Position()
	if pos.Y() <= cc.minHeight {
		return false
	}
	pos = pos.Mul(cc.zoomInFactor)
	if y := pos.Y(); y < cc.minHeight {
		pos = pos.Mul(cc.minHeight / y)
	}
	cc.cam.SetPosition(pos)
	return true
}
