package renderer

import (
	"github.com/Carmen-Shannon/oxy-chessboard/common"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/draw"
)

// ChessboardPassOption is a functional option applied during NewChessboardPass.
type ChessboardPassOption func(*chessboardPass)

// WithTexture supplies the pixels sampled by commands that reference kind.
// Textures left unset, or with malformed data, sample as plain white.
//
// Parameters:
//   - kind: the texture slot
//   - data: decoded RGBA pixels
//
// Returns:
//   - ChessboardPassOption: option function to apply
func WithTexture(kind draw.Texture, data common.TextureStagingData) ChessboardPassOption {
	return func(p *chessboardPass) {
		p.textureData[kind] = data
	}
}
