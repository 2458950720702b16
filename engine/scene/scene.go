package scene

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-chessboard/engine/board"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/camera"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/draw"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/input"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/selection"
	"github.com/go-gl/mathgl/mgl32"
)

// Feedback receives every selection event after the scene has applied it.
// The audio cue player implements it.
type Feedback interface {
	Handle(ev selection.Event)
}

// Scene owns one chessboard: the board occupancy model, the selection state machine, the camera
// and its gesture controller. Each frame Update applies input and Draw describes the result to a
// draw.Sink. Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for updates and rendering.
	Active() bool

	// SetActive sets whether this scene is active.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Controller returns the camera gesture controller.
	Controller() camera.CameraController

	// Board returns the occupancy model.
	Board() board.Board

	// Selection returns the selection state machine.
	Selection() *selection.InputContext

	// Update applies one frame of input: selection actions first, then at most one camera gesture.
	// Model matrices of pieces that moved are rebuilt before it returns.
	//
	// Parameters:
	//   - dt: frame duration in seconds
	//   - src: the polled input source
	//
	// Returns:
	//   - []selection.Event: the selection outcomes this frame
	Update(dt float32, src input.Source) []selection.Event

	// Frame returns the per-frame state shared by every draw command.
	//
	// Returns:
	//   - draw.Frame: view-projection, eye position, clear color and status line
	Frame() draw.Frame

	// DrawCommands returns the frame's drawables: the board, every piece, then the translucent selector.
	//
	// Returns:
	//   - []draw.Command: board.PieceCount + 2 commands
	DrawCommands() []draw.Command

	// Draw sends the current frame to sink.
	//
	// Parameters:
	//   - sink: the renderer or recorder to draw into
	//
	// Returns:
	//   - error: the first error reported by sink
	Draw(sink draw.Sink) error

	// Resize propagates new framebuffer dimensions to a perspective camera.
	//
	// Parameters:
	//   - width, height: framebuffer size in pixels
	Resize(width, height int)

	// QuitRequested reports whether the quit key was pressed.
	QuitRequested() bool
}

type scene struct {
	mu *sync.Mutex

	name   string
	active bool
	logger *log.Logger

	board      board.Board
	selection  *selection.InputContext
	camera     camera.Camera
	controller camera.CameraController
	feedback   Feedback

	selectionOptions  []selection.InputContextOption
	controllerOptions []camera.CameraControllerOption

	boardModel  mgl32.Mat4
	pieceModels [board.PieceCount]mgl32.Mat4
	clearColor  mgl32.Vec4
	blend       float32
}

var _ Scene = &scene{}

// NewScene creates a scene for b viewed through cam. The scene starts active.
//
// Parameters:
//   - name: the scene's identifier
//   - b: the board to play on
//   - cam: the camera to view it through
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, b board.Board, cam camera.Camera, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.Mutex{},
		name:       name,
		active:     true,
		logger:     log.Default(),
		board:      b,
		camera:     cam,
		boardModel: BoardModel(),
		clearColor: DefaultClearColor,
		blend:      0.7,
	}
	for _, option := range options {
		option(s)
	}
	s.selection = selection.NewInputContext(b, s.selectionOptions...)
	s.controller = camera.NewCameraController(cam, s.controllerOptions...)
	s.refreshModels()
	return s
}

func (s *scene) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) Controller() camera.CameraController {
	return s.controller
}

func (s *scene) Board() board.Board {
	return s.board
}

func (s *scene) Selection() *selection.InputContext {
	return s.selection
}

func (s *scene) Update(dt float32, src input.Source) []selection.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.selection.Process(src)
	for _, ev := range events {
		switch ev.Kind {
		case selection.EventSelectorMoved, selection.EventSelectorBlocked:
		default:
			s.logger.Printf("[Board] %s: %s", s.name, ev)
		}
		if s.feedback != nil {
			s.feedback.Handle(ev)
		}
	}

	s.controller.Update(src, dt)
	s.refreshModels()
	return events
}

func (s *scene) Frame() draw.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame()
}

func (s *scene) DrawCommands() []draw.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commands()
}

func (s *scene) Draw(sink draw.Sink) error {
	s.mu.Lock()
	name := s.name
	frame := s.frame()
	cmds := s.commands()
	s.mu.Unlock()

	if err := sink.BeginFrame(frame); err != nil {
		return fmt.Errorf("scene %s: begin frame: %w", name, err)
	}
	for _, cmd := range cmds {
		if err := sink.Draw(cmd); err != nil {
			return fmt.Errorf("scene %s: draw %s: %w", name, cmd.Label, err)
		}
	}
	if err := sink.EndFrame(); err != nil {
		return fmt.Errorf("scene %s: end frame: %w", name, err)
	}
	return nil
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	// Orthographic cameras keep their clipping box on resize.
	_ = s.camera.SetViewport(float32(width), float32(height))
}

func (s *scene) QuitRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.QuitRequested()
}

// refreshModels rebuilds the model matrices of pieces whose cell changed.
// Caller must hold the mutex.
func (s *scene) refreshModels() {
	for _, i := range s.board.TakeDirty() {
		s.pieceModels[i] = PieceModel(s.board.Offset(i))
	}
}

// frame builds the shared frame state.
// Caller must hold the mutex.
func (s *scene) frame() draw.Frame {
	return draw.Frame{
		ViewProjection: s.camera.ViewProjectionMatrix(),
		CameraPosition: s.camera.Position(),
		ClearColor:     s.clearColor,
		Status:         s.status(),
	}
}

// status summarizes the selection state in one line.
// Caller must hold the mutex.
func (s *scene) status() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "selector %s", s.selection.Selector().Square())
	if idx, armed := s.selection.ArmedPiece(); armed {
		dc, dr := s.selection.Pending().Net()
		fmt.Fprintf(&sb, " | armed piece %d (%+d,%+d)", idx, dc, dr)
	}
	if s.selection.TexturesEnabled() {
		sb.WriteString(" | textures on")
	}
	if g := s.controller.ActiveGesture(); g != camera.GestureNone {
		fmt.Fprintf(&sb, " | %s", g)
	}
	return sb.String()
}

// commands builds the frame's draw list.
// Caller must hold the mutex.
func (s *scene) commands() []draw.Command {
	blend := float32(0)
	if s.selection.TexturesEnabled() {
		blend = s.blend
	}
	w, h := s.board.Width(), s.board.Height()
	sel := s.selection.Selector()
	armed, isArmed := s.selection.ArmedPiece()

	cmds := make([]draw.Command, 0, board.PieceCount+2)
	cmds = append(cmds, draw.Command{
		Label:        "board",
		Mesh:         draw.MeshBoard,
		Model:        s.boardModel,
		Color:        lightSquare,
		AltColor:     darkSquare,
		Texture:      draw.TextureBoard,
		TextureBlend: blend,
		Piece:        -1,
	})

	for _, p := range s.board.Pieces() {
		color := p.Team.Color()
		if p.Cell == sel {
			color = highlightColor
		}
		if isArmed && p.Index == armed {
			color = armedColor
		}
		cmds = append(cmds, draw.Command{
			Label:        fmt.Sprintf("piece-%d", p.Index),
			Mesh:         draw.MeshPiece,
			Model:        s.pieceModels[p.Index],
			Color:        color,
			Texture:      draw.TexturePiece,
			TextureBlend: blend,
			Piece:        p.Index,
			Col:          p.Cell.Col,
			Row:          p.Cell.Row,
		})
	}

	cmds = append(cmds, draw.Command{
		Label:       "selector",
		Mesh:        draw.MeshSelector,
		Model:       SelectorModel(sel, w, h),
		Color:       selectorColor,
		Translucent: true,
		Piece:       -1,
		Col:         sel.Col,
		Row:         sel.Row,
	})
	return cmds
}
