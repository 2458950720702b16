package draw

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUDrawUniformSource is the WGSL definition of the DrawUniform struct.
// Matches GPUDrawUniform layout exactly (112 bytes).
//
//go:embed assets/draw_uniform.wgsl
var GPUDrawUniformSource string

// GPUDrawUniform is the per-drawable uniform block.
// Size: 112 bytes (WGSL aligned).
type GPUDrawUniform struct {
	Model    [16]float32 // offset  0: model matrix (mat4x4<f32>)
	Color    [4]float32  // offset 64: base color
	AltColor [4]float32  // offset 80: dark-square color
	Params   [4]float32  // offset 96: texture blend, translucent flag, unused, unused
}

// NewGPUDrawUniform packs a Command for upload.
//
// Parameters:
//   - cmd: the drawable
//
// Returns:
//   - GPUDrawUniform: the packed uniform
func NewGPUDrawUniform(cmd Command) GPUDrawUniform {
	u := GPUDrawUniform{
		Model:    cmd.Model,
		Color:    cmd.Color,
		AltColor: cmd.AltColor,
	}
	if cmd.Texture != TextureNone {
		u.Params[0] = max(0, min(cmd.TextureBlend, 1))
	}
	if cmd.Translucent {
		u.Params[1] = 1
	}
	return u
}

// Size returns the size of the GPUDrawUniform struct in bytes.
func (g *GPUDrawUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform little-endian for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUDrawUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(off int, vals []float32) {
		for i, v := range vals {
			binary.LittleEndian.PutUint32(buf[off+i*4:], math.Float32bits(v))
		}
	}
	put(0, g.Model[:])
	put(64, g.Color[:])
	put(80, g.AltColor[:])
	put(96, g.Params[:])
	return buf
}
