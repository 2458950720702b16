package audio

import (
	"bytes"
	"log"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-chessboard/engine/selection"
	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(8000)

type recordingOutput struct {
	played []beep.Streamer
}

func (r *recordingOutput) Play(s beep.Streamer) {
	r.played = append(r.played, s)
}

// drain streams s to completion, giving up after limit samples.
func drain(s beep.Streamer, limit int) (count int, peak float64) {
	buf := make([][2]float64, 256)
	for count < limit {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = max(peak, math.Abs(smp[0]))
		}
		count += n
		if !ok {
			break
		}
	}
	return count, peak
}

func TestToneLengthAndRange(t *testing.T) {
	tests := []struct {
		name string
		wave Waveform
	}{
		{"sine", WaveSine},
		{"square", WaveSquare},
		{"triangle", WaveTriangle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTone(testRate, 440, tt.wave, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond)
			n, peak := drain(s, 10000)
			if n != testRate.N(100*time.Millisecond) {
				t.Fatalf("samples = %d, want %d", n, testRate.N(100*time.Millisecond))
			}
			if peak > 1 || peak < 0.5 {
				t.Fatalf("peak = %f", peak)
			}
			if s.Err() != nil {
				t.Fatal(s.Err())
			}
		})
	}
}

func TestToneEnvelopeStartsAndEndsQuiet(t *testing.T) {
	s := NewTone(testRate, 200, WaveSquare, 50*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond)
	buf := make([][2]float64, testRate.N(50*time.Millisecond))
	n, _ := s.Stream(buf)
	if buf[0][0] != 0 {
		t.Fatalf("first sample = %f, want 0", buf[0][0])
	}
	if last := math.Abs(buf[n-1][0]); last > 0.05 {
		t.Fatalf("last sample = %f", last)
	}
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		kind selection.EventKind
		want Cue
	}{
		{selection.EventSelectorMoved, CueMove},
		{selection.EventSelectorBlocked, CueBlocked},
		{selection.EventArmed, CueArm},
		{selection.EventArmIgnored, CueNone},
		{selection.EventCommitted, CueCommit},
		{selection.EventRejected, CueReject},
		{selection.EventTexturesToggled, CueToggle},
		{selection.EventQuit, CueNone},
	}
	for _, tt := range tests {
		if got := CueFor(tt.kind); got != tt.want {
			t.Errorf("CueFor(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

func TestSequencedCueLengths(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		cue  Cue
		want int
	}{
		{CueArm, testRate.N(60*ms) + testRate.N(90*ms)},
		{CueReject, testRate.N(90*ms) + testRate.N(20*ms) + testRate.N(140*ms)},
		{CueMove, testRate.N(35 * ms)},
	}
	for _, tt := range tests {
		n, peak := drain(NewCueStreamer(tt.cue, testRate, 1), 100000)
		if n != tt.want {
			t.Errorf("%s: samples = %d, want %d", tt.cue, n, tt.want)
		}
		if peak == 0 || peak > 1 {
			t.Errorf("%s: peak = %f", tt.cue, peak)
		}
	}
	if NewCueStreamer(CueNone, testRate, 1) != nil {
		t.Fatal("CueNone should have no streamer")
	}
}

func TestPlayerHandle(t *testing.T) {
	out := &recordingOutput{}
	p := NewPlayer(out, WithSampleRate(testRate))

	p.Handle(selection.Event{Kind: selection.EventSelectorMoved})
	p.Handle(selection.Event{Kind: selection.EventArmIgnored})
	if len(out.played) != 0 {
		t.Fatalf("played %d quiet cues", len(out.played))
	}

	p.Handle(selection.Event{Kind: selection.EventArmed})
	p.Handle(selection.Event{Kind: selection.EventRejected})
	if len(out.played) != 2 {
		t.Fatalf("played = %d, want 2", len(out.played))
	}

	p.SetMuted(true)
	if p.Play(CueCommit) || len(out.played) != 2 {
		t.Fatal("muted player should not play")
	}
	p.SetMuted(false)

	p = NewPlayer(out, WithSampleRate(testRate), WithMuted(true))
	if !p.Muted() || p.Play(CueCommit) {
		t.Fatal("player built muted should start silent")
	}

	p = NewPlayer(out, WithSampleRate(testRate), WithQuietCues())
	if !p.Play(CueMove) {
		t.Fatal("move cue should play once no cues are quiet")
	}
}

func TestPlayerVolumeClamp(t *testing.T) {
	p := NewPlayer(&recordingOutput{}, WithVolume(3))
	if p.Volume() != 1 {
		t.Fatalf("volume = %f", p.Volume())
	}
	p.SetVolume(-1)
	if p.Volume() != 0 {
		t.Fatalf("volume = %f", p.Volume())
	}
}

func TestSilentPlayer(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlayer(nil, WithLogger(log.New(&buf, "", 0)))
	if p.Play(CueCommit) {
		t.Fatal("nil output should not play")
	}
	if !strings.Contains(buf.String(), "[Audio] no output device") {
		t.Fatalf("log = %q", buf.String())
	}
}
