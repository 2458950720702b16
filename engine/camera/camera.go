package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position   mgl32.Vec3
	projection Projection

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera defines the interface for the camera system.
// A camera holds a position and one projection variant and keeps its projection, view and
// view-projection matrices consistent with them: every setter recomputes before it returns,
// so a read never observes stale matrices.
type Camera interface {
	// Position returns the camera's world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// SetPosition moves the eye and recomputes the view and view-projection matrices.
	// The projection matrix depends only on the frustum and is left as is.
	//
	// Parameters:
	//   - position: the new eye position
	SetPosition(position mgl32.Vec3)

	// Projection returns a copy of the active projection variant (Orthographic or Perspective).
	//
	// Returns:
	//   - Projection: the active variant
	Projection() Projection

	// SetProjection replaces the projection variant and recomputes every matrix.
	//
	// Parameters:
	//   - p: the new projection variant
	SetProjection(p Projection)

	// ProjectionMatrix returns the current projection matrix (OpenGL clip conventions).
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// Recalculate recomputes every matrix from the current position and projection.
	Recalculate()

	// Rotation returns the orthographic rotation about the board normal in degrees.
	//
	// Returns:
	//   - float32: rotation in degrees
	//   - error: ErrProjectionMismatch for a perspective camera
	Rotation() (float32, error)

	// SetRotation stores the orthographic rotation in degrees and recomputes.
	// The rotation is kept on the camera but does not enter the view matrix yet.
	//
	// Parameters:
	//   - degrees: rotation about the board normal
	//
	// Returns:
	//   - error: ErrProjectionMismatch for a perspective camera
	SetRotation(degrees float32) error

	// SetOrthographicFrustum replaces the orthographic clipping box and recomputes.
	//
	// Parameters:
	//   - f: the new clipping planes
	//
	// Returns:
	//   - error: ErrProjectionMismatch for a perspective camera
	SetOrthographicFrustum(f OrthographicFrustum) error

	// SetPerspectiveFrustum replaces the perspective frustum and recomputes.
	//
	// Parameters:
	//   - f: the new frustum
	//
	// Returns:
	//   - error: ErrProjectionMismatch for an orthographic camera
	SetPerspectiveFrustum(f PerspectiveFrustum) error

	// SetLookAt changes the perspective target point and recomputes.
	//
	// Parameters:
	//   - target: the world-space point the camera looks at
	//
	// Returns:
	//   - error: ErrProjectionMismatch for an orthographic camera
	SetLookAt(target mgl32.Vec3) error

	// SetUpVector changes the perspective up vector and recomputes.
	//
	// Parameters:
	//   - up: the world-space up direction
	//
	// Returns:
	//   - error: ErrProjectionMismatch for an orthographic camera
	SetUpVector(up mgl32.Vec3) error

	// SetViewport updates the perspective width/height (and so the aspect ratio).
	// Zero or negative dimensions, as reported for minimized windows, are ignored.
	//
	// Parameters:
	//   - width, height: viewport dimensions in pixels
	//
	// Returns:
	//   - error: ErrProjectionMismatch for an orthographic camera
	SetViewport(width, height float32) error

	// Clone returns an independent camera holding the same position, projection and matrices.
	// The matrices are copied verbatim, not recomputed.
	//
	// Returns:
	//   - Camera: the copy
	Clone() Camera
}

var _ Camera = &cameraImpl{}

// NewPerspectiveCamera creates a perspective camera looking from (0,5,7) at the origin.
// The viewport dimensions override the frustum's width and height.
//
// Parameters:
//   - width, height: initial viewport dimensions in pixels
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewPerspectiveCamera(width, height int, options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: DefaultPerspectivePosition,
		projection: Perspective{
			Frustum: DefaultPerspectiveFrustum,
			LookAt:  mgl32.Vec3{0, 0, 0},
			Up:      worldUp,
		},
	}
	for _, option := range options {
		option(c)
	}
	if p, ok := c.projection.(Perspective); ok && width > 0 && height > 0 {
		p.Frustum.Width = float32(width)
		p.Frustum.Height = float32(height)
		c.projection = p
	}
	c.updateMatrices()
	return c
}

// NewOrthographicCamera creates an orthographic camera with the unit clipping box, looking from (0,0,1) at the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewOrthographicCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		position:   DefaultOrthographicPosition,
		projection: Orthographic{Frustum: DefaultOrthographicFrustum},
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.updateView()
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) SetProjection(p Projection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p == nil {
		return
	}
	c.projection = p
	c.updateMatrices()
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Recalculate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) Rotation() (float32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.projection.(Orthographic)
	if !ok {
		return 0, ErrProjectionMismatch
	}
	return o.Rotation, nil
}

func (c *cameraImpl) SetRotation(degrees float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.projection.(Orthographic)
	if !ok {
		return ErrProjectionMismatch
	}
	o.Rotation = degrees
	c.projection = o
	c.updateMatrices()
	return nil
}

func (c *cameraImpl) SetOrthographicFrustum(f OrthographicFrustum) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.projection.(Orthographic)
	if !ok {
		return ErrProjectionMismatch
	}
	o.Frustum = f
	c.projection = o
	c.updateMatrices()
	return nil
}

func (c *cameraImpl) SetPerspectiveFrustum(f PerspectiveFrustum) error {
	return c.updatePerspective(func(p *Perspective) { p.Frustum = f })
}

func (c *cameraImpl) SetLookAt(target mgl32.Vec3) error {
	return c.updatePerspective(func(p *Perspective) { p.LookAt = target })
}

func (c *cameraImpl) SetUpVector(up mgl32.Vec3) error {
	return c.updatePerspective(func(p *Perspective) { p.Up = up })
}

func (c *cameraImpl) SetViewport(width, height float32) error {
	return c.updatePerspective(func(p *Perspective) {
		if width <= 0 || height <= 0 {
			return
		}
		p.Frustum.Width = width
		p.Frustum.Height = height
	})
}

func (c *cameraImpl) Clone() Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return &cameraImpl{
		mu:                   &sync.Mutex{},
		position:             c.position,
		projection:           c.projection,
		viewMatrix:           c.viewMatrix,
		projectionMatrix:     c.projectionMatrix,
		viewProjectionMatrix: c.viewProjectionMatrix,
	}
}

// updatePerspective applies fn to the perspective variant and recomputes.
// Returns ErrProjectionMismatch without touching state when the camera is orthographic.
func (c *cameraImpl) updatePerspective(fn func(p *Perspective)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.projection.(Perspective)
	if !ok {
		return ErrProjectionMismatch
	}
	fn(&p)
	c.projection = p
	c.updateMatrices()
	return nil
}

// updateMatrices recalculates the projection, view and view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.projectionMatrix = projectionMatrix(c.projection)
	c.updateView()
}

// updateView recalculates the view and view-projection matrices from the current position.
// Caller must hold the mutex.
func (c *cameraImpl) updateView() {
	c.viewMatrix = viewMatrix(c.projection, c.position)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
