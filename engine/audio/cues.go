package audio

import (
	"math"
	"time"

	"github.com/Carmen-Shannon/oxy-chessboard/engine/selection"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Cue is a short synthesized sound tied to a selection outcome.
type Cue int

const (
	CueNone Cue = iota
	CueMove
	CueBlocked
	CueArm
	CueCommit
	CueReject
	CueToggle
)

func (c Cue) String() string {
	return [...]string{"none", "move", "blocked", "arm", "commit", "reject", "toggle"}[c]
}

// CueFor maps a selection event kind to its cue. Ignored arms and quit are silent.
func CueFor(kind selection.EventKind) Cue {
	switch kind {
	case selection.EventSelectorMoved:
		return CueMove
	case selection.EventSelectorBlocked:
		return CueBlocked
	case selection.EventArmed:
		return CueArm
	case selection.EventCommitted:
		return CueCommit
	case selection.EventRejected:
		return CueReject
	case selection.EventTexturesToggled:
		return CueToggle
	default:
		return CueNone
	}
}

// Waveform selects the oscillator shape of a tone.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveTriangle
)

// tone is a fixed-length oscillator with a linear attack and release.
type tone struct {
	rate    beep.SampleRate
	freq    float64
	wave    Waveform
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// NewTone creates a finite tone streamer.
//
// Parameters:
//   - rate: output sample rate
//   - freq: frequency in Hz
//   - wave: oscillator shape
//   - duration: total length, including attack and release
//   - attack, release: fade in and fade out lengths
//
// Returns:
//   - beep.Streamer: a streamer that drains after duration
func NewTone(rate beep.SampleRate, freq float64, wave Waveform, duration, attack, release time.Duration) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	rel := min(rate.N(release), total-att)
	return &tone{
		rate:    rate,
		freq:    freq,
		wave:    wave,
		total:   total,
		attack:  att,
		release: rel,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveTriangle:
			v = 4*math.Abs(t.phase-0.5) - 1
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= t.gain()

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) gain() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if remaining := t.total - t.pos; t.release > 0 && remaining < t.release {
		return float64(remaining) / float64(t.release)
	}
	return 1
}

// scale wraps s in a volume effect. Zero or negative volume is silent.
func scale(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// NewCueStreamer synthesizes c at the given rate and volume.
//
// Parameters:
//   - c: the cue to render
//   - rate: output sample rate
//   - volume: linear gain in [0, 1]
//
// Returns:
//   - beep.Streamer: the cue, or nil for CueNone
func NewCueStreamer(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	ms := time.Millisecond
	var s beep.Streamer
	switch c {
	case CueMove:
		s = scale(NewTone(rate, 660, WaveSine, 35*ms, 3*ms, 20*ms), 0.3)
	case CueBlocked:
		s = scale(NewTone(rate, 160, WaveTriangle, 70*ms, 5*ms, 40*ms), 0.5)
	case CueArm:
		s = beep.Seq(
			NewTone(rate, 523.25, WaveSine, 60*ms, 5*ms, 20*ms),
			NewTone(rate, 783.99, WaveSine, 90*ms, 5*ms, 60*ms),
		)
	case CueCommit:
		// Fundamental plus octave for a bell-like confirm.
		s = beep.Mix(
			scale(NewTone(rate, 880, WaveSine, 160*ms, 2*ms, 140*ms), 0.7),
			scale(NewTone(rate, 1760, WaveSine, 160*ms, 2*ms, 80*ms), 0.3),
		)
	case CueReject:
		s = scale(beep.Seq(
			NewTone(rate, 220, WaveSquare, 90*ms, 5*ms, 30*ms),
			beep.Silence(rate.N(20*ms)),
			NewTone(rate, 165, WaveSquare, 140*ms, 5*ms, 90*ms),
		), 0.35)
	case CueToggle:
		s = scale(NewTone(rate, 1046.5, WaveTriangle, 25*ms, 2*ms, 15*ms), 0.4)
	default:
		return nil
	}
	return scale(s, volume)
}
