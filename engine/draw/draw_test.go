package draw

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRecorderKeepsLastFrame(t *testing.T) {
	r := &Recorder{}
	for frame := range 2 {
		if err := r.BeginFrame(Frame{Status: "frame"}); err != nil {
			t.Fatal(err)
		}
		for i := 0; i <= frame; i++ {
			_ = r.Draw(Command{Label: "piece", Piece: i})
		}
		if err := r.EndFrame(); err != nil {
			t.Fatal(err)
		}
	}
	if r.Frames != 2 || len(r.Commands) != 2 {
		t.Fatalf("frames=%d commands=%d", r.Frames, len(r.Commands))
	}
	if _, ok := r.Find("missing"); ok {
		t.Fatal("found a command that was never drawn")
	}
}

func TestGPUDrawUniform(t *testing.T) {
	tests := []struct {
		name      string
		cmd       Command
		wantBlend float32
		wantFlag  float32
	}{
		{"untextured ignores blend", Command{Texture: TextureNone, TextureBlend: 0.7}, 0, 0},
		{"textured", Command{Texture: TextureBoard, TextureBlend: 0.7}, 0.7, 0},
		{"blend clamped", Command{Texture: TexturePiece, TextureBlend: 3}, 1, 0},
		{"translucent", Command{Translucent: true}, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewGPUDrawUniform(tt.cmd)
			if u.Params[0] != tt.wantBlend || u.Params[1] != tt.wantFlag {
				t.Fatalf("params = %v", u.Params)
			}
		})
	}

	u := NewGPUDrawUniform(Command{
		Model: mgl32.Translate3D(1, 2, 3),
		Color: mgl32.Vec4{0.25, 0.5, 0.75, 1},
	})
	if u.Size() != 112 {
		t.Fatalf("size = %d", u.Size())
	}
	buf := u.Marshal()
	at := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	if at(48) != 1 || at(52) != 2 || at(56) != 3 {
		t.Fatal("translation not in the fourth column")
	}
	if at(64) != 0.25 || at(76) != 1 {
		t.Fatal("color misplaced")
	}
	if !strings.Contains(GPUDrawUniformSource, "struct DrawUniform") {
		t.Fatal("WGSL source not embedded")
	}
}
