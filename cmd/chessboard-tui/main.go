// Command chessboard-tui runs the chessboard in a terminal, drawn top-down with tcell.
// It shares the scene, selection rules and key bindings with the windowed build.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-chessboard/config"
	"github.com/Carmen-Shannon/oxy-chessboard/engine"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/audio"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/audio/device"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/terminal"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON settings file")
	logPath := flag.String("log", "", "append log lines to this file instead of discarding them")
	flag.Parse()

	// The terminal owns stdout, so logs go to a file or nowhere.
	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("[Engine] open log: %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	if err := run(*configPath, logger); err != nil {
		log.Printf("[Engine] %v", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *log.Logger) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}

	// ── Audio ───────────────────────────────────────────────────────────
	var out audio.Output
	if cfg.Audio.Enabled {
		rate := beep.SampleRate(cfg.Audio.SampleRate)
		spk, err := device.Open(rate, time.Duration(cfg.Audio.BufferMs)*time.Millisecond)
		if err != nil {
			logger.Printf("[Audio] %v, running silent", err)
		} else {
			defer spk.Close()
			out = spk
		}
	}
	cues := audio.NewPlayer(out,
		audio.WithSampleRate(beep.SampleRate(cfg.Audio.SampleRate)),
		audio.WithVolume(cfg.Audio.Volume),
		audio.WithLogger(logger),
	)

	// ── Terminal ────────────────────────────────────────────────────────
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	term, err := terminal.NewTerminal(screen, cfg.Board.Width, cfg.Board.Height, terminal.WithTitle(cfg.Window.Title))
	if err != nil {
		return err
	}
	defer term.Close()
	term.Start()

	// ── Scene ───────────────────────────────────────────────────────────
	// The terminal view is top-down, so the camera only matters for the status line.
	sc, err := cfg.NewScene("terminal", cfg.Window.Width, cfg.Window.Height, logger, cues)
	if err != nil {
		return err
	}

	// ── Engine ──────────────────────────────────────────────────────────
	// Terminal redraws are cheap but not free; 30 frames per second is plenty for key-driven input.
	limit := cfg.Render.FrameLimit
	if limit <= 0 {
		limit = 30
	}
	eng := engine.NewEngine(
		engine.WithWindow(term),
		engine.WithSink(term),
		engine.WithScene(0, sc),
		engine.WithLogger(logger),
		engine.WithProfiling(cfg.Render.Profiling),
		engine.WithRenderFrameLimit(limit),
	)
	return eng.Run()
}
