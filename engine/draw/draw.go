// Package draw is the boundary between the scene and a renderer. The scene describes each frame
// as a list of Commands; a Sink turns them into GPU work, terminal cells, or a recording in tests.
package draw

import "github.com/go-gl/mathgl/mgl32"

// Mesh identifies one of the meshes a renderer keeps resident.
type Mesh int

const (
	MeshBoard Mesh = iota
	MeshSelector
	MeshPiece
)

func (m Mesh) String() string {
	switch m {
	case MeshBoard:
		return "board"
	case MeshSelector:
		return "selector"
	case MeshPiece:
		return "piece"
	default:
		return "unknown"
	}
}

// Texture identifies a texture a command samples from.
type Texture int

const (
	TextureNone Texture = iota
	TextureBoard
	TexturePiece
)

// Command is one drawable for the current frame.
type Command struct {
	// Label names the drawable for logs and debugging, e.g. "piece-12".
	Label string

	Mesh  Mesh
	Model mgl32.Mat4

	// Color is the base color. For the board it colors the light squares.
	Color mgl32.Vec4

	// AltColor colors the dark squares of the board. Unused for other meshes.
	AltColor mgl32.Vec4

	// Texture is sampled and mixed into Color by TextureBlend, 0 disabling it.
	Texture      Texture
	TextureBlend float32

	// Translucent commands are drawn after opaque ones with alpha blending.
	Translucent bool

	// Piece and Cell let non-GPU sinks place the drawable without inverting Model.
	// Piece is -1 for non-piece drawables.
	Piece    int
	Col, Row int
}

// Frame carries the per-frame state shared by every command.
type Frame struct {
	ViewProjection mgl32.Mat4
	CameraPosition mgl32.Vec3
	ClearColor     mgl32.Vec4

	// Status is a one-line human readable summary of the selection state.
	Status string
}

// Sink consumes frames. BeginFrame is followed by zero or more Draw calls and one EndFrame.
type Sink interface {
	BeginFrame(frame Frame) error
	Draw(cmd Command) error
	EndFrame() error
}

// Recorder is a Sink that keeps the last completed frame in memory.
type Recorder struct {
	Frame    Frame
	Commands []Command
	Frames   int

	pending []Command
}

var _ Sink = &Recorder{}

func (r *Recorder) BeginFrame(frame Frame) error {
	r.Frame = frame
	r.pending = r.pending[:0]
	return nil
}

func (r *Recorder) Draw(cmd Command) error {
	r.pending = append(r.pending, cmd)
	return nil
}

func (r *Recorder) EndFrame() error {
	r.Commands = append(r.Commands[:0], r.pending...)
	r.Frames++
	return nil
}

// Find returns the first recorded command with the given label.
func (r *Recorder) Find(label string) (Command, bool) {
	for _, c := range r.Commands {
		if c.Label == label {
			return c, true
		}
	}
	return Command{}, false
}
