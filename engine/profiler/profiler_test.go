package profiler

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(log.New(&buf, "", 0), time.Second)
	clock := p.lastTime
	p.now = func() time.Time { return clock }

	for range 29 {
		clock = clock.Add(10 * time.Millisecond)
		if p.Tick() {
			t.Fatal("reported before the interval elapsed")
		}
	}
	clock = p.lastTime.Add(time.Second)
	if !p.Tick() {
		t.Fatal("expected a report after one second")
	}
	if p.FPS() != 30 {
		t.Fatalf("fps = %v, want 30", p.FPS())
	}
	if !strings.HasPrefix(buf.String(), "[Profiler] FPS: 30.00") {
		t.Fatalf("log = %q", buf.String())
	}
}

func TestNewProfilerDefaults(t *testing.T) {
	p := NewProfiler(nil, 0)
	if p.updateInterval != time.Second || p.logger == nil {
		t.Fatalf("interval = %v", p.updateInterval)
	}
}
