package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithAngularSpeed sets the orbit speed in degrees per second.
//
// Parameters:
//   - degreesPerSecond: orbit speed
//
// Returns:
//   - CameraControllerOption: functional option to set the orbit speed
func WithAngularSpeed(degreesPerSecond float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.angularSpeed = degreesPerSecond
	}
}

// WithZoomFactors sets the per-frame position multipliers for zooming in and out.
// Non-positive factors are ignored.
//
// Parameters:
//   - in: multiplier applied while zooming in, expected below 1
//   - out: multiplier applied while zooming out, expected above 1
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom factors
func WithZoomFactors(in, out float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if in > 0 {
			cc.zoomInFactor = in
		}
		if out > 0 {
			cc.zoomOutFactor = out
		}
	}
}

// WithHeightBounds sets the band the camera height is held in while zooming.
// Ignored unless 0 < min < max.
//
// Parameters:
//   - min: lowest reachable height
//   - max: highest reachable height
//
// Returns:
//   - CameraControllerOption: functional option to set the height band
func WithHeightBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if min > 0 && min < max {
			cc.minHeight = min
			cc.maxHeight = max
		}
	}
}

// WithGestureKeys overrides the gesture key bindings.
func WithGestureKeys(keys GestureKeys) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.keys = keys
	}
}
