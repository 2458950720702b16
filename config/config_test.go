package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-chessboard/engine/camera"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chessboard.json")
	body := `{"camera": {"projection": "orthographic", "orbit_speed": 90}, "audio": {"enabled": false, "muted": true}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Camera.Projection != ProjectionOrthographic || cfg.Camera.OrbitSpeed != 90 {
		t.Fatalf("camera = %+v", cfg.Camera)
	}
	if cfg.Camera.ZoomIn != 0.995 || cfg.Board.Width != 8 {
		t.Fatal("unset fields should keep defaults")
	}
	if cfg.Audio.Enabled || !cfg.Audio.Muted {
		t.Fatalf("audio = %+v", cfg.Audio)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	want := Default()
	want.Window.Title = "saved"
	if err := want.Save(path); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %+v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Fatalf("err = %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Fatalf("err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"projection", func(c *Config) { c.Camera.Projection = "fisheye" }, "unknown projection"},
		{"far behind near", func(c *Config) { c.Camera.Far = -10 }, "far plane"},
		{"zoom in", func(c *Config) { c.Camera.ZoomIn = 1.2 }, "zoom in factor"},
		{"heights", func(c *Config) { c.Camera.MinHeight = 20 }, "height bounds"},
		{"small board", func(c *Config) { c.Board.Width = 4 }, "cannot hold 32 pieces"},
		{"blend", func(c *Config) { c.Textures.Blend = 2 }, "texture blend"},
		{"msaa", func(c *Config) { c.Render.MSAA = 8 }, "msaa"},
		{"volume", func(c *Config) { c.Audio.Volume = -1 }, "audio volume"},
		{"overhead eye", func(c *Config) { c.Camera.Position = [3]float32{0, 5, 0} }, "cannot look at"},
		{"eye on target", func(c *Config) { c.Camera.LookAt = c.Camera.Position }, "cannot look at"},
		{"up along view", func(c *Config) { c.Camera.Up = [3]float32{0, -5, -7} }, "cannot look at"},
		{"zero up", func(c *Config) { c.Camera.Up = [3]float32{} }, "cannot look at"},
		{"ortho overhead eye", func(c *Config) {
			c.Camera.Projection = ProjectionOrthographic
			c.Camera.Position = [3]float32{0, 4, 0}
		}, "cannot look at"},
		{"empty ortho box", func(c *Config) { c.Camera.Ortho.Left = 3 }, "ortho box"},
		{"ortho planes", func(c *Config) { c.Camera.Ortho.Near = 30 }, "ortho near"},
		{"ortho depth", func(c *Config) {
			c.Camera.Projection = ProjectionOrthographic
			c.Camera.Ortho.Far = 5
		}, "must contain the board"},
		{"window limits", func(c *Config) { c.Window.MinWidth = 0 }, "window limits"},
		{"window too big", func(c *Config) { c.Window.Width = 5000 }, "outside its limits"},
		{"clear color", func(c *Config) { c.Render.ClearColor[0] = 2 }, "clear color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}

	c := Default()
	c.Camera.Far = -10
	c.Camera.LegacyFar = true
	if err := c.Validate(); err != nil {
		t.Fatalf("legacy far should validate: %v", err)
	}
}

func TestNewScene(t *testing.T) {
	c := Default()
	c.Textures.Enabled = true
	s, err := c.NewScene("main", 1024, 768, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := s.Camera().Projection().(camera.Perspective)
	if !ok || p.Frustum.Width != 1024 || p.Frustum.Far != 100 {
		t.Fatalf("projection = %+v", s.Camera().Projection())
	}
	if !s.Selection().TexturesEnabled() {
		t.Fatal("textures should start enabled")
	}
	if s.Board().Width() != 8 || len(s.Board().Pieces()) != 32 {
		t.Fatal("unexpected board")
	}

	c.Camera.Projection = ProjectionOrthographic
	s, err = c.NewScene("ortho", 1024, 768, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Camera().Projection().(camera.Orthographic); !ok {
		t.Fatalf("projection = %T", s.Camera().Projection())
	}

	c = Default()
	c.Camera.LegacyFar = true
	if got := c.NewCamera(800, 800).Projection().(camera.Perspective).Frustum.Far; got != -10 {
		t.Fatalf("far = %v", got)
	}

	c = Default()
	c.Camera.LookAt = [3]float32{0, 0, -1}
	c.Render.ClearColor = [4]float32{0, 0, 0.2, 1}
	s, err = c.NewScene("aimed", 800, 800, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p := s.Camera().Projection().(camera.Perspective); p.LookAt != (mgl32.Vec3{0, 0, -1}) || p.Up != (mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("look-at = %v, up = %v", p.LookAt, p.Up)
	}
	if got := s.Frame().ClearColor; got != (mgl32.Vec4{0, 0, 0.2, 1}) {
		t.Fatalf("clear color = %v", got)
	}
}

func TestConfiguredCameraFramesBoard(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"perspective", func(*Config) {}},
		{"orthographic", func(c *Config) { c.Camera.Projection = ProjectionOrthographic }},
		{"orthographic zoomed out", func(c *Config) {
			c.Camera.Projection = ProjectionOrthographic
			c.Camera.Position = [3]float32{0, 10, 14}
		}},
		{"perspective from the side", func(c *Config) { c.Camera.Position = [3]float32{7, 3, 0} }},
	}
	// Centre and corners of the board mesh, before the board model is applied.
	points := []mgl32.Vec4{{0, 0, 0, 1}, {-0.5, -0.5, 0, 1}, {0.5, -0.5, 0, 1}, {0.5, 0.5, 0, 1}, {-0.5, 0.5, 0, 1}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			if err := c.Validate(); err != nil {
				t.Fatal(err)
			}
			mvp := c.NewCamera(800, 800).ViewProjectionMatrix().Mul4(scene.BoardModel())
			for _, p := range points {
				clip := mvp.Mul4x1(p)
				w := clip.W()
				for i := range 3 {
					if w <= 0 || math.Abs(float64(clip[i])) > float64(w) {
						t.Fatalf("board point %v lands at clip %v, outside -w..w", p, clip)
					}
				}
			}
		})
	}
}
