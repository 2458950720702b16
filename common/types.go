// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Valid reports whether the pixel buffer matches the declared dimensions.
func (t TextureStagingData) Valid() bool {
	return t.Width > 0 && t.Height > 0 && len(t.Pixels) == int(t.Width*t.Height*4)
}

// TextureSource describes where an image comes from: raw encoded bytes or a path on disk.
type TextureSource struct {
	// Name is an identifier for this texture (e.g., "board", "piece").
	Name string

	// Path is the file path of the encoded image (empty when Data is set).
	Path string

	// Data contains raw encoded image bytes (PNG/JPEG).
	Data []byte
}

// Decode decodes the texture to raw RGBA pixel data.
// Uses either the Data bytes or loads from Path on disk.
// Supports PNG and JPEG formats.
// Reference: https://pkg.go.dev/image
//
// Returns:
//   - TextureStagingData: the decoded RGBA pixels and dimensions
//   - error: error if decoding fails
func (t TextureSource) Decode() (TextureStagingData, error) {
	var img image.Image
	var err error

	switch {
	case len(t.Data) > 0:
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode embedded image %q: %w", t.Name, err)
		}
	case t.Path != "":
		file, fileErr := os.Open(t.Path)
		if fileErr != nil {
			return TextureStagingData{}, fmt.Errorf("failed to open texture file %s: %w", t.Path, fileErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return TextureStagingData{}, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
	default:
		return TextureStagingData{}, fmt.Errorf("texture %q has neither data nor path", t.Name)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}

// CheckerTexture generates a two-tone checker pattern used when a texture file is unavailable.
//
// Parameters:
//   - size: width and height of the texture in pixels
//   - cells: number of checker cells along each edge
//   - light, dark: RGBA colors of the alternating cells
//
// Returns:
//   - TextureStagingData: the generated pixels
func CheckerTexture(size, cells int, light, dark [4]uint8) TextureStagingData {
	if size <= 0 {
		size = 1
	}
	if cells <= 0 {
		cells = 1
	}
	pixels := make([]byte, size*size*4)
	cell := max(size/cells, 1)
	for y := range size {
		for x := range size {
			c := dark
			if ((x/cell)+(y/cell))%2 == 0 {
				c = light
			}
			copy(pixels[(y*size+x)*4:], c[:])
		}
	}
	return TextureStagingData{Pixels: pixels, Width: uint32(size), Height: uint32(size)}
}
