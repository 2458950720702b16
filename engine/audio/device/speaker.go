// Package device opens the system audio output through beep's speaker.
package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-chessboard/engine/audio"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Speaker mixes cues into the process-wide speaker stream.
type Speaker struct {
	mu     *sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

var _ audio.Output = &Speaker{}

// Open initializes the speaker at rate with the given buffer latency and starts an empty mixer on it.
// The speaker can only be opened once per process.
//
// Parameters:
//   - rate: the device sample rate
//   - buffer: the playback buffer length; larger is steadier, smaller is more responsive
//
// Returns:
//   - *Speaker: the open output
//   - error: an error if the audio device could not be initialized
func Open(rate beep.SampleRate, buffer time.Duration) (*Speaker, error) {
	if err := speaker.Init(rate, rate.N(buffer)); err != nil {
		return nil, fmt.Errorf("open speaker: %w", err)
	}
	s := &Speaker{mu: &sync.Mutex{}, mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play adds st to the mixer. The mixer drops it once drained.
func (s *Speaker) Play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences every pending cue. Later Play calls are ignored.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
}
