package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial eye position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithPerspectiveFrustum sets the frustum of a perspective camera. Ignored for orthographic cameras.
//
// Parameters:
//   - f: the perspective frustum
//
// Returns:
//   - CameraBuilderOption: a function that sets the frustum
func WithPerspectiveFrustum(f PerspectiveFrustum) CameraBuilderOption {
	return func(c *cameraImpl) {
		if p, ok := c.projection.(Perspective); ok {
			p.Frustum = f
			c.projection = p
		}
	}
}

// WithOrthographicFrustum sets the clipping box of an orthographic camera. Ignored for perspective cameras.
//
// Parameters:
//   - f: the orthographic clipping planes
//
// Returns:
//   - CameraBuilderOption: a function that sets the clipping box
func WithOrthographicFrustum(f OrthographicFrustum) CameraBuilderOption {
	return func(c *cameraImpl) {
		if o, ok := c.projection.(Orthographic); ok {
			o.Frustum = f
			c.projection = o
		}
	}
}

// WithLookAt sets the target point of a perspective camera.
//
// Parameters:
//   - x, y, z: world-space target
//
// Returns:
//   - CameraBuilderOption: a function that sets the target
func WithLookAt(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if p, ok := c.projection.(Perspective); ok {
			p.LookAt = mgl32.Vec3{x, y, z}
			c.projection = p
		}
	}
}

// WithUp sets the up vector of a perspective camera.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if p, ok := c.projection.(Perspective); ok {
			p.Up = mgl32.Vec3{x, y, z}
			c.projection = p
		}
	}
}
