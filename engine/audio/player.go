package audio

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-chessboard/engine/scene"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/selection"
	"github.com/gopxl/beep"
)

// DefaultSampleRate matches the rate the speaker device is opened with.
const DefaultSampleRate = beep.SampleRate(48000)

// Output plays finished streamers. device.Speaker is the hardware implementation.
type Output interface {
	Play(s beep.Streamer)
}

// Player turns selection events into audio cues. Implements scene.Feedback.
type Player interface {
	// Handle plays the cue for ev, if any.
	Handle(ev selection.Event)

	// Play synthesizes and plays c unless muted.
	//
	// Parameters:
	//   - c: the cue to play
	//
	// Returns:
	//   - bool: true if a streamer was sent to the output
	Play(c Cue) bool

	// SetMuted silences or restores every cue.
	SetMuted(muted bool)

	// Muted reports whether cues are silenced.
	Muted() bool

	// SetVolume sets the master gain, clamped to [0, 1].
	SetVolume(volume float64)

	// Volume returns the master gain.
	Volume() float64
}

type player struct {
	mu *sync.Mutex

	out    Output
	rate   beep.SampleRate
	volume float64
	muted  bool
	quiet  map[Cue]bool
	logger *log.Logger
}

var _ Player = &player{}
var _ scene.Feedback = &player{}

// NewPlayer creates a Player writing to out. A nil out yields a silent player,
// which is how the visualizer runs when no audio device could be opened.
//
// Parameters:
//   - out: the audio output, or nil
//   - options: functional options
//
// Returns:
//   - Player: the cue player
func NewPlayer(out Output, options ...PlayerOption) Player {
	p := &player{
		mu:     &sync.Mutex{},
		out:    out,
		rate:   DefaultSampleRate,
		volume: 0.8,
		quiet:  map[Cue]bool{CueMove: true},
		logger: log.Default(),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.out == nil {
		p.logger.Printf("[Audio] no output device, cues disabled")
	}
	return p
}

func (p *player) Handle(ev selection.Event) {
	p.Play(CueFor(ev.Kind))
}

func (p *player) Play(c Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.out == nil || p.muted || p.quiet[c] {
		return false
	}
	s := NewCueStreamer(c, p.rate, p.volume)
	if s == nil {
		return false
	}
	p.out.Play(s)
	return true
}

func (p *player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

func (p *player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = min(max(volume, 0), 1)
}

func (p *player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}
