package engine

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/board"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/camera"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/draw"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/input"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/profiler"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/scene"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/selection"
)

// fakeWindow replays one set of held keys per PollEvents call.
type fakeWindow struct {
	*input.KeyState
	frames   [][]common.Key
	polls    int
	running  bool
	onResize func(width, height int)
	t        float64
}

func newFakeWindow(frames ...[]common.Key) *fakeWindow {
	return &fakeWindow{KeyState: input.NewKeyState(), frames: frames, running: true}
}

func (w *fakeWindow) PollEvents() {
	w.ReleaseAll()
	if w.polls < len(w.frames) {
		w.Press(w.frames[w.polls]...)
	}
	w.polls++
	w.t += 0.01
}

func (w *fakeWindow) IsRunning() bool                     { return w.running }
func (w *fakeWindow) SetResizeCallback(cb func(w, h int)) { w.onResize = cb }
func (w *fakeWindow) Width() int                          { return 800 }
func (w *fakeWindow) Height() int                         { return 800 }
func (w *fakeWindow) Time() float64                       { return w.t }

type resizingSink struct {
	draw.Recorder
	width, height int
}

func (r *resizingSink) Resize(width, height int) {
	r.width, r.height = width, height
}

type brokenSink struct{ draw.Recorder }

func (brokenSink) BeginFrame(draw.Frame) error { return errors.New("lost surface") }

func newTestScene(t *testing.T, name string, opts ...scene.SceneBuilderOption) scene.Scene {
	t.Helper()
	b, err := board.NewBoard()
	if err != nil {
		t.Fatal(err)
	}
	opts = append([]scene.SceneBuilderOption{scene.WithLogger(log.New(&bytes.Buffer{}, "", 0))}, opts...)
	return scene.NewScene(name, b, camera.NewPerspectiveCamera(800, 800), opts...)
}

type frozenClock float64

func (c frozenClock) Time() float64 { return float64(c) }

func TestTickUpdatesAndDrawsCurrentScene(t *testing.T) {
	win := newFakeWindow(nil, []common.Key{common.KeyRight})
	sink := &draw.Recorder{}
	s := newTestScene(t, "main")

	var gotEvents []selection.Event
	e := NewEngine(WithWindow(win), WithSink(sink), WithScene(0, s), WithLogger(log.New(&bytes.Buffer{}, "", 0)))
	e.SetTickCallback(func(_ float32, events []selection.Event) {
		gotEvents = append(gotEvents, events...)
	})

	for range 2 {
		ok, err := e.Tick(0.016)
		if err != nil || !ok {
			t.Fatalf("tick = %v, %v", ok, err)
		}
	}
	if sink.Frames != 2 {
		t.Fatalf("frames = %d, want 2", sink.Frames)
	}
	if len(gotEvents) != 1 || gotEvents[0].Kind != selection.EventSelectorMoved {
		t.Fatalf("events = %v", gotEvents)
	}
	if got := s.Selection().Selector(); got != (board.GridCell{Col: 1, Row: 0}) {
		t.Fatalf("selector = %v", got)
	}
}

func TestCurrentSceneIsLowestActiveKey(t *testing.T) {
	a, b := newTestScene(t, "a"), newTestScene(t, "b")
	hidden := newTestScene(t, "hidden", scene.WithActive(false))
	e := NewEngine(WithScene(5, a), WithScene(2, b), WithScene(0, hidden))
	if e.CurrentScene().Name() != "b" {
		t.Fatalf("current = %s", e.CurrentScene().Name())
	}
	b.SetActive(false)
	if e.CurrentScene().Name() != "a" {
		t.Fatalf("current = %s", e.CurrentScene().Name())
	}
	e.RemoveScene(5)
	if e.CurrentScene() != nil {
		t.Fatal("expected no current scene")
	}
	if len(e.Scenes()) != 2 || e.Scene(2) == nil || e.Scene(0) == nil {
		t.Fatalf("scenes = %v", e.Scenes())
	}
}

func TestRunStopsOnQuitKey(t *testing.T) {
	var buf bytes.Buffer
	win := newFakeWindow(nil, nil, []common.Key{common.KeyEsc})
	sink := &draw.Recorder{}
	e := NewEngine(WithWindow(win), WithSink(sink), WithScene(0, newTestScene(t, "main")), WithLogger(log.New(&buf, "", 0)))

	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if win.polls != 3 {
		t.Fatalf("polls = %d, want 3", win.polls)
	}
	// The quitting frame is not drawn.
	if sink.Frames != 2 {
		t.Fatalf("frames = %d, want 2", sink.Frames)
	}
	if !strings.Contains(buf.String(), "[Engine] quit requested by scene main") {
		t.Fatalf("log = %q", buf.String())
	}
	if ok, _ := e.Tick(0.016); ok {
		t.Fatal("tick after quit should report false")
	}
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	win := newFakeWindow()
	win.running = false
	e := NewEngine(WithWindow(win), WithLogger(log.New(&bytes.Buffer{}, "", 0)))
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	if win.polls != 1 {
		t.Fatalf("polls = %d", win.polls)
	}
}

func TestRunRequiresWindow(t *testing.T) {
	if err := NewEngine().Run(); !errors.Is(err, ErrNoWindow) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunReturnsDrawError(t *testing.T) {
	win := newFakeWindow()
	e := NewEngine(WithWindow(win), WithSink(&brokenSink{}), WithScene(0, newTestScene(t, "main")))
	err := e.Run()
	if err == nil || !strings.Contains(err.Error(), "lost surface") {
		t.Fatalf("err = %v", err)
	}
}

func TestResizeForwardsToScenesAndSink(t *testing.T) {
	win := newFakeWindow()
	sink := &resizingSink{}
	s := newTestScene(t, "main")
	NewEngine(WithWindow(win), WithSink(sink), WithScene(0, s))

	win.onResize(1600, 900)
	if sink.width != 1600 || sink.height != 900 {
		t.Fatalf("sink size = %dx%d", sink.width, sink.height)
	}
	if p := s.Camera().Projection().(camera.Perspective); p.Frustum.Width != 1600 {
		t.Fatalf("frustum = %+v", p.Frustum)
	}

	win.onResize(0, 0)
	if sink.width != 1600 {
		t.Fatal("minimized resize should be ignored")
	}
}

func TestFrameLimitSleepsRemainder(t *testing.T) {
	win := newFakeWindow(nil, []common.Key{common.KeyQ})
	e := NewEngine(WithWindow(win), WithScene(0, newTestScene(t, "main")), WithRenderFrameLimit(50)).(*engine)
	var slept []time.Duration
	e.sleep = func(d time.Duration) { slept = append(slept, d) }

	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	// One completed frame; the fake clock advances 10ms per poll, leaving 10ms of the 20ms budget.
	if len(slept) != 1 || slept[0] < 9*time.Millisecond || slept[0] > 11*time.Millisecond {
		t.Fatalf("slept = %v", slept)
	}
}

func TestClockOverridesWindowTime(t *testing.T) {
	win := newFakeWindow(nil, []common.Key{common.KeyQ})
	e := NewEngine(
		WithWindow(win),
		WithScene(0, newTestScene(t, "main")),
		WithRenderFrameLimit(50),
		WithClock(frozenClock(3)),
	).(*engine)
	var slept []time.Duration
	e.sleep = func(d time.Duration) { slept = append(slept, d) }

	if err := e.Run(); err != nil {
		t.Fatal(err)
	}
	// A frozen clock reports no work done, so the whole 20ms budget is slept.
	if len(slept) != 1 || slept[0] != 20*time.Millisecond {
		t.Fatalf("slept = %v", slept)
	}
}

func TestProfilerLogsOnlyWhenEnabled(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
	}{
		{"enabled", true},
		{"disabled", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			p := profiler.NewProfiler(log.New(&buf, "", 0), time.Nanosecond)
			e := NewEngine(
				WithWindow(newFakeWindow()),
				WithScene(0, newTestScene(t, "main")),
				WithProfiler(p),
				WithProfiling(tt.enabled),
			)
			for range 3 {
				time.Sleep(time.Millisecond)
				if _, err := e.Tick(0.016); err != nil {
					t.Fatal(err)
				}
			}
			if got := strings.Contains(buf.String(), "[Profiler] FPS"); got != tt.enabled {
				t.Fatalf("profiler logged = %v, log = %q", got, buf.String())
			}
		})
	}
}
