package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// WebGPUClipCorrection remaps OpenGL clip-space depth [-1, 1] into the WebGPU depth range [0, 1].
// mgl32 produces OpenGL-convention projections; the renderer multiplies this on the left before upload.
var WebGPUClipCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// ToWebGPUClip converts an OpenGL-convention view-projection matrix into WebGPU clip space.
//
// Parameters:
//   - m: the view-projection matrix produced by mgl32
//
// Returns:
//   - mgl32.Mat4: the matrix with depth remapped to [0, 1]
func ToWebGPUClip(m mgl32.Mat4) mgl32.Mat4 {
	return WebGPUClipCorrection.Mul4(m)
}

// RotateAboutY rotates a point around the world Y axis through the origin.
// Positive angles rotate counter-clockwise when looking down the Y axis.
//
// Parameters:
//   - p: the point to rotate
//   - degrees: rotation angle in degrees
//
// Returns:
//   - mgl32.Vec3: the rotated point
func RotateAboutY(p mgl32.Vec3, degrees float32) mgl32.Vec3 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(degrees)).Mul4x1(p.Vec4(1)).Vec3()
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}
