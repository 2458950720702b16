// Command chessboard opens a window and renders the interactive 3D chessboard with WebGPU.
//
// Keys: arrows move the selector, Space arms and commits, T toggles textures, H/L orbit,
// O/P zoom, Q or Esc quits.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
	"github.com/Carmen-Shannon/oxy-chessboard/config"
	"github.com/Carmen-Shannon/oxy-chessboard/engine"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/audio"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/audio/device"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/draw"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/loader"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/renderer"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/scene"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/selection"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/window"
	"github.com/gopxl/beep"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON settings file")
	profile := flag.Bool("profile", false, "log frame rate and memory statistics every second")
	software := flag.Bool("software", false, "force the software (fallback) GPU adapter")
	flag.Parse()

	if err := run(*configPath, *profile, *software); err != nil {
		log.Printf("[Engine] %v", err)
		os.Exit(1)
	}
}

func run(configPath string, profile, software bool) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	cfg.Render.Profiling = cfg.Render.Profiling || profile
	cfg.Render.SoftwareRenderer = cfg.Render.SoftwareRenderer || software

	// ── Textures ────────────────────────────────────────────────────────
	// Decoded on the worker pool before the window exists.
	ld := loader.NewLoader(loader.WithWorkers(cfg.Textures.Workers))
	textures, err := ld.Load(
		common.TextureSource{Name: "board", Path: cfg.Textures.Board},
		common.TextureSource{Name: "piece", Path: cfg.Textures.Piece},
	)
	ld.Close()
	if err != nil {
		log.Printf("[Loader] using generated textures: %v", err)
	}

	// ── Audio ───────────────────────────────────────────────────────────
	var out audio.Output
	if cfg.Audio.Enabled {
		rate := beep.SampleRate(cfg.Audio.SampleRate)
		spk, err := device.Open(rate, time.Duration(cfg.Audio.BufferMs)*time.Millisecond)
		if err != nil {
			log.Printf("[Audio] %v, running silent", err)
		} else {
			defer spk.Close()
			out = spk
		}
	}
	cues := audio.NewPlayer(out,
		audio.WithSampleRate(beep.SampleRate(cfg.Audio.SampleRate)),
		audio.WithVolume(cfg.Audio.Volume),
		audio.WithMuted(cfg.Audio.Muted),
	)

	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithSizeLimits(cfg.Window.MinWidth, cfg.Window.MinHeight, cfg.Window.MaxWidth, cfg.Window.MaxHeight),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeVSync
	if !cfg.Render.VSync {
		presentMode = renderer.PresentModeUncapped
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Render.MSAA)),
		renderer.WithForceSoftwareRenderer(cfg.Render.SoftwareRenderer),
	)
	if err != nil {
		return err
	}

	pass, err := renderer.NewChessboardPass(r, cfg.Board.Width, cfg.Board.Height, scene.PieceSize(),
		renderer.WithTexture(draw.TextureBoard, textures["board"]),
		renderer.WithTexture(draw.TexturePiece, textures["piece"]),
	)
	if err != nil {
		r.Release()
		return err
	}
	defer pass.Release()

	// ── Scene ───────────────────────────────────────────────────────────
	sc, err := cfg.NewScene("board", win.Width(), win.Height(), nil, cues)
	if err != nil {
		return err
	}

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithSink(pass),
		engine.WithScene(0, sc),
		engine.WithProfiling(cfg.Render.Profiling),
		engine.WithRenderFrameLimit(cfg.Render.FrameLimit),
	)

	status := ""
	eng.SetTickCallback(func(_ float32, _ []selection.Event) {
		if s := sc.Frame().Status; s != status {
			status = s
			win.SetTitle(cfg.Window.Title + " | " + s)
		}
	})

	return eng.Run()
}
