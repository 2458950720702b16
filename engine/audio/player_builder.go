package audio

import (
	"log"

	"github.com/gopxl/beep"
)

// PlayerOption is a functional option applied during NewPlayer.
type PlayerOption func(*player)

// WithSampleRate sets the rate cues are synthesized at. Must match the output device.
func WithSampleRate(rate beep.SampleRate) PlayerOption {
	return func(p *player) {
		if rate > 0 {
			p.rate = rate
		}
	}
}

// WithVolume sets the initial master gain, clamped to [0, 1].
func WithVolume(volume float64) PlayerOption {
	return func(p *player) {
		p.volume = min(max(volume, 0), 1)
	}
}

// WithMuted starts the player muted.
func WithMuted(muted bool) PlayerOption {
	return func(p *player) {
		p.muted = muted
	}
}

// WithQuietCues replaces the set of cues that never play. Selector moves are quiet by default.
//
// Parameters:
//   - cues: the cues to suppress
//
// Returns:
//   - PlayerOption: option function to apply
func WithQuietCues(cues ...Cue) PlayerOption {
	return func(p *player) {
		p.quiet = make(map[Cue]bool, len(cues))
		for _, c := range cues {
			p.quiet[c] = true
		}
	}
}

// WithLogger routes "[Audio]" log lines to logger.
func WithLogger(logger *log.Logger) PlayerOption {
	return func(p *player) {
		if logger != nil {
			p.logger = logger
		}
	}
}
