// Package config holds the application settings shared by both chessboard frontends.
// Settings are read from an optional JSON file over built-in defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/Carmen-Shannon/oxy-chessboard/engine/camera"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Projection names accepted in CameraConfig.Projection.
const (
	ProjectionPerspective  = "perspective"
	ProjectionOrthographic = "orthographic"
)

// Config is the full set of application settings.
type Config struct {
	Window   WindowConfig  `json:"window"`
	Board    BoardConfig   `json:"board"`
	Camera   CameraConfig  `json:"camera"`
	Textures TextureConfig `json:"textures"`
	Audio    AudioConfig   `json:"audio"`
	Render   RenderConfig  `json:"render"`
}

// WindowConfig sizes the desktop window. The Min and Max pairs bound user resizing.
type WindowConfig struct {
	Title     string `json:"title"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	MinWidth  int    `json:"min_width"`
	MinHeight int    `json:"min_height"`
	MaxWidth  int    `json:"max_width"`
	MaxHeight int    `json:"max_height"`
}

type BoardConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CameraConfig configures the camera variant and the gesture controller.
// LookAt, Up and the planes of the perspective frustum apply to the perspective camera; the
// orthographic camera always looks at the origin with +Y up through the Ortho box.
type CameraConfig struct {
	Projection string     `json:"projection"`
	Position   [3]float32 `json:"position"`
	LookAt     [3]float32 `json:"look_at"`
	Up         [3]float32 `json:"up"`
	Fov        float32    `json:"fov"`
	Near       float32    `json:"near"`
	Far        float32    `json:"far"`
	Ortho      OrthoBox   `json:"ortho"`

	// LegacyFar restores the historical far plane of -10.
	LegacyFar bool `json:"legacy_far"`

	OrbitSpeed float32 `json:"orbit_speed"`
	ZoomIn     float32 `json:"zoom_in"`
	ZoomOut    float32 `json:"zoom_out"`
	MinHeight  float32 `json:"min_height"`
	MaxHeight  float32 `json:"max_height"`
}

// OrthoBox holds the clipping planes of the orthographic camera in view space. Near and Far are
// distances in front of the eye.
type OrthoBox struct {
	Left   float32 `json:"left"`
	Right  float32 `json:"right"`
	Bottom float32 `json:"bottom"`
	Top    float32 `json:"top"`
	Near   float32 `json:"near"`
	Far    float32 `json:"far"`
}

// TextureConfig names the image files sampled when textures are toggled on.
// Missing files fall back to a generated checker.
type TextureConfig struct {
	Board   string  `json:"board"`
	Piece   string  `json:"piece"`
	Blend   float32 `json:"blend"`
	Enabled bool    `json:"enabled"`
	Workers int     `json:"workers"`
}

type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	Muted      bool    `json:"muted"`
	Volume     float64 `json:"volume"`
	SampleRate int     `json:"sample_rate"`
	BufferMs   int     `json:"buffer_ms"`
}

type RenderConfig struct {
	VSync            bool       `json:"vsync"`
	MSAA             int        `json:"msaa"`
	FrameLimit       float64    `json:"frame_limit"`
	Profiling        bool       `json:"profiling"`
	SoftwareRenderer bool       `json:"software_renderer"`
	ClearColor       [4]float32 `json:"clear_color"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "Chessboard",
			Width:     800,
			Height:    800,
			MinWidth:  320,
			MinHeight: 240,
			MaxWidth:  3840,
			MaxHeight: 2160,
		},
		Board: BoardConfig{Width: 8, Height: 8},
		Camera: CameraConfig{
			Projection: ProjectionPerspective,
			Position:   [3]float32{0, 5, 7},
			Up:         [3]float32{0, 1, 0},
			Fov:        45,
			Near:       0.1,
			Far:        100,
			// The board spans 4 units once scaled; a 6 unit box keeps it in view while orbiting.
			Ortho:      OrthoBox{Left: -3, Right: 3, Bottom: -3, Top: 3, Near: 0.1, Far: 20},
			OrbitSpeed: 50,
			ZoomIn:     0.995,
			ZoomOut:    1.005,
			MinHeight:  1.1,
			MaxHeight:  10,
		},
		Textures: TextureConfig{
			Board:   "floor_texture.png",
			Piece:   "cube_texture.png",
			Blend:   0.7,
			Workers: 2,
		},
		Audio:  AudioConfig{Enabled: true, Volume: 0.8, SampleRate: 48000, BufferMs: 50},
		Render: RenderConfig{VSync: true, MSAA: 4, ClearColor: scene.DefaultClearColor},
	}
}

// Load reads path over the defaults and validates the result. Fields absent from the file keep
// their default values.
//
// Parameters:
//   - path: the JSON file to read
//
// Returns:
//   - Config: the merged settings
//   - error: a read, parse or validation error
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as indented JSON.
func (c Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	w := c.Window
	check(w.Width > 0 && w.Height > 0, "window size %dx%d must be positive", w.Width, w.Height)
	check(w.MinWidth > 0 && w.MinHeight > 0 && w.MinWidth <= w.MaxWidth && w.MinHeight <= w.MaxHeight,
		"window limits %dx%d..%dx%d are invalid", w.MinWidth, w.MinHeight, w.MaxWidth, w.MaxHeight)
	check(w.Width >= w.MinWidth && w.Width <= w.MaxWidth && w.Height >= w.MinHeight && w.Height <= w.MaxHeight,
		"window size %dx%d is outside its limits", w.Width, w.Height)
	check(c.Board.Width > 0 && c.Board.Height >= 4, "board %dx%d needs a positive width and at least 4 rows", c.Board.Width, c.Board.Height)
	check(c.Board.Width*4 >= 32, "board width %d cannot hold 32 pieces on 4 rows", c.Board.Width)

	cam := c.Camera
	check(cam.Projection == ProjectionPerspective || cam.Projection == ProjectionOrthographic,
		"unknown projection %q", cam.Projection)
	check(cam.Fov > 0 && cam.Fov < 180, "fov %v must be in (0, 180)", cam.Fov)
	check(cam.Near > 0, "near plane %v must be positive", cam.Near)
	check(cam.LegacyFar || cam.Far > cam.Near, "far plane %v must be beyond near plane %v", cam.Far, cam.Near)
	check(cam.OrbitSpeed >= 0, "orbit speed %v must not be negative", cam.OrbitSpeed)
	check(cam.ZoomIn > 0 && cam.ZoomIn < 1, "zoom in factor %v must be in (0, 1)", cam.ZoomIn)
	check(cam.ZoomOut > 1, "zoom out factor %v must exceed 1", cam.ZoomOut)
	check(cam.MinHeight > 0 && cam.MinHeight < cam.MaxHeight, "height bounds [%v, %v] are invalid", cam.MinHeight, cam.MaxHeight)

	eye := mgl32.Vec3(cam.Position)
	target, up := mgl32.Vec3(cam.LookAt), mgl32.Vec3(cam.Up)
	if cam.Projection == ProjectionOrthographic {
		target, up = mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}
	}
	check(!camera.DegenerateView(eye, target, up),
		"camera at %v cannot look at %v with up %v", cam.Position, target, up)

	o := cam.Ortho
	check(o.Left < o.Right && o.Bottom < o.Top, "ortho box [%v, %v]x[%v, %v] is empty", o.Left, o.Right, o.Bottom, o.Top)
	check(o.Near >= 0 && o.Near < o.Far, "ortho near %v and far %v must satisfy 0 <= near < far", o.Near, o.Far)
	if cam.Projection == ProjectionOrthographic {
		d := eye.Len()
		check(d >= o.Near && d <= o.Far, "ortho depth range [%v, %v] must contain the board at distance %v", o.Near, o.Far, d)
	}

	check(c.Textures.Blend >= 0 && c.Textures.Blend <= 1, "texture blend %v must be in [0, 1]", c.Textures.Blend)
	check(c.Textures.Workers >= 0, "texture workers %d must not be negative", c.Textures.Workers)

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio volume %v must be in [0, 1]", c.Audio.Volume)
	check(!c.Audio.Enabled || c.Audio.SampleRate > 0, "audio sample rate %d must be positive", c.Audio.SampleRate)
	check(!c.Audio.Enabled || c.Audio.BufferMs > 0, "audio buffer %dms must be positive", c.Audio.BufferMs)

	check(c.Render.MSAA == 1 || c.Render.MSAA == 4, "msaa %d must be 1 or 4", c.Render.MSAA)
	check(c.Render.FrameLimit >= 0, "frame limit %v must not be negative", c.Render.FrameLimit)
	cc := c.Render.ClearColor
	check(!slices.ContainsFunc(cc[:], func(v float32) bool { return v < 0 || v > 1 }),
		"clear color %v must have channels in [0, 1]", cc)

	return errors.Join(errs...)
}
