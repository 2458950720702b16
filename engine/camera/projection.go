package camera

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrProjectionMismatch is returned when a variant-specific setter is called on a camera
// holding the other projection variant. The camera is left unchanged.
var ErrProjectionMismatch = errors.New("camera: setter does not apply to the active projection")

// Projection is the closed set of projection variants a Camera can hold: Orthographic or Perspective.
// The unexported marker keeps the set closed so recalculation can switch over it exhaustively.
type Projection interface {
	isProjection()
}

// OrthographicFrustum holds the six clipping planes of an orthographic box.
type OrthographicFrustum struct {
	Left, Right, Bottom, Top, Near, Far float32
}

// PerspectiveFrustum holds a vertical field of view in degrees, the viewport dimensions used for
// the aspect ratio, and the near/far clipping distances.
type PerspectiveFrustum struct {
	FovDegrees    float32
	Width, Height float32
	Near, Far     float32
}

// Aspect returns Width / Height.
func (f PerspectiveFrustum) Aspect() float32 {
	return f.Width / f.Height
}

// Orthographic projects through an axis-aligned box and looks from the camera position at the origin with +Y up.
//
// Rotation is degrees about the board-normal axis. It is stored and returned but is not folded
// into the view matrix; see SetRotation.
type Orthographic struct {
	Frustum  OrthographicFrustum
	Rotation float32
}

// Perspective projects through a symmetric view frustum and looks from the camera position at LookAt.
type Perspective struct {
	Frustum PerspectiveFrustum
	LookAt  mgl32.Vec3
	Up      mgl32.Vec3
}

func (Orthographic) isProjection() {}
func (Perspective) isProjection()  {}

var (
	// DefaultOrthographicFrustum is the unit box with near=1 and far=-1.
	DefaultOrthographicFrustum = OrthographicFrustum{Left: -1, Right: 1, Bottom: -1, Top: 1, Near: 1, Far: -1}

	// DefaultPerspectiveFrustum is a 45 degree square frustum with a positive far plane.
	DefaultPerspectiveFrustum = PerspectiveFrustum{FovDegrees: 45, Width: 800, Height: 800, Near: 0.1, Far: 100}

	// LegacyPerspectiveFrustum reproduces the historical far=-10 frustum. Only useful when
	// output must match old captures bit for bit; the far plane sits behind the eye.
	LegacyPerspectiveFrustum = PerspectiveFrustum{FovDegrees: 45, Width: 800, Height: 800, Near: 0.1, Far: -10}

	// DefaultPerspectivePosition is the initial eye position of a perspective camera.
	DefaultPerspectivePosition = mgl32.Vec3{0, 5, 7}

	// DefaultOrthographicPosition is the initial eye position of an orthographic camera.
	DefaultOrthographicPosition = mgl32.Vec3{0, 0, 1}

	worldUp = mgl32.Vec3{0, 1, 0}
)

// projectionMatrix builds the projection matrix for a variant.
func projectionMatrix(p Projection) mgl32.Mat4 {
	switch v := p.(type) {
	case Orthographic:
		f := v.Frustum
		return mgl32.Ortho(f.Left, f.Right, f.Bottom, f.Top, f.Near, f.Far)
	case Perspective:
		f := v.Frustum
		return mgl32.Perspective(mgl32.DegToRad(f.FovDegrees), f.Aspect(), f.Near, f.Far)
	default:
		return mgl32.Ident4()
	}
}

// viewMatrix builds the view matrix for a variant seen from position.
func viewMatrix(p Projection, position mgl32.Vec3) mgl32.Mat4 {
	switch v := p.(type) {
	case Orthographic:
		return lookAt(position, mgl32.Vec3{}, worldUp)
	case Perspective:
		return lookAt(position, v.LookAt, v.Up)
	default:
		return mgl32.Ident4()
	}
}

// DegenerateView reports whether eye, target and up fail to define a view basis: the eye sits on
// the target, up is zero, or the view direction is parallel to up.
//
// Parameters:
//   - eye: the camera position
//   - target: the point looked at
//   - up: the requested up vector
//
// Returns:
//   - bool: true when mgl32.LookAtV would produce NaNs
func DegenerateView(eye, target, up mgl32.Vec3) bool {
	dir := target.Sub(eye)
	if dir.Len() < degenerateEpsilon || up.Len() < degenerateEpsilon {
		return true
	}
	return dir.Normalize().Cross(up.Normalize()).Len() < degenerateEpsilon
}

const degenerateEpsilon = 1e-5

// lookAt is mgl32.LookAtV with a finite result for every input. An eye on the target looks down
// -Z. When up is unusable the world +Y is tried, and a view straight along Y uses -Z as up, which
// keeps the far edge of the board at the top of the screen.
func lookAt(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	if target.Sub(eye).Len() < degenerateEpsilon {
		target = eye.Sub(mgl32.Vec3{0, 0, 1})
	}
	for _, u := range []mgl32.Vec3{up, worldUp} {
		if !DegenerateView(eye, target, u) {
			return mgl32.LookAtV(eye, target, u)
		}
	}
	return mgl32.LookAtV(eye, target, mgl32.Vec3{0, 0, -1})
}
