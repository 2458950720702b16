package terminal

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/board"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/camera"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/scene"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/selection"
	"github.com/gdamore/tcell/v2"
)

func newTestTerminal(t *testing.T) (Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminal(screen, 8, 8, WithTitle("test board"))
	if err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(func() { _ = term.Close() })
	return term, screen
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

// squareX returns the screen column of the glyph for board column col.
func squareX(col int) int {
	return 3 + col*cellWidth + 1
}

// squareY returns the screen row for board row row on an 8-row board.
func squareY(row int) int {
	return 1 + 8 - 1 - row
}

func TestKeyHeldForOnePoll(t *testing.T) {
	term, _ := newTestTerminal(t)

	term.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone))
	if term.IsKeyDown(common.KeyRight) {
		t.Fatal("key visible before PollEvents")
	}

	term.PollEvents()
	if !term.IsKeyDown(common.KeyRight) || !term.IsKeyDown(common.KeyH) {
		t.Fatal("keys not down after PollEvents")
	}

	term.PollEvents()
	if term.IsKeyDown(common.KeyRight) || term.IsKeyDown(common.KeyH) {
		t.Fatal("keys should release on the next poll")
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want common.Key
		ok   bool
	}{
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), common.KeyUp, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), common.KeyEsc, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), common.KeySpace, true},
		{"lower t", tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone), common.KeyT, true},
		{"upper Q", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), common.KeyQ, true},
		{"digit", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), 0, false},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateKey(tt.ev)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("translateKey = %d, %v; want %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCtrlCStops(t *testing.T) {
	term, _ := newTestTerminal(t)
	term.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if term.IsRunning() {
		t.Fatal("ctrl-c should stop the terminal")
	}
}

func TestResizeCallback(t *testing.T) {
	term, _ := newTestTerminal(t)
	var gotW, gotH int
	term.SetResizeCallback(func(w, h int) { gotW, gotH = w, h })
	term.HandleEvent(tcell.NewEventResize(100, 40))
	if gotW != 100 || gotH != 40 || term.Width() != 100 {
		t.Fatalf("resize = %dx%d", gotW, gotH)
	}
}

func TestDrawsSceneFrame(t *testing.T) {
	term, screen := newTestTerminal(t)

	b, err := board.NewBoard()
	if err != nil {
		t.Fatal(err)
	}
	s := scene.NewScene("tui", b, camera.NewOrthographicCamera())
	if err := s.Draw(term); err != nil {
		t.Fatal(err)
	}

	// Home rows hold pieces, the middle of the board is empty.
	for _, row := range []int{0, 1, 6, 7} {
		if r := runeAt(screen, squareX(3), squareY(row)); r != '●' {
			t.Fatalf("row %d: rune = %q, want piece", row, r)
		}
	}
	if r := runeAt(screen, squareX(3), squareY(4)); r != ' ' {
		t.Fatalf("empty square rune = %q", r)
	}

	// Selector starts on a1.
	if r := runeAt(screen, squareX(0)-1, squareY(0)); r != '[' {
		t.Fatalf("selector bracket = %q", r)
	}
	if r := runeAt(screen, squareX(0), 1+8); r != 'a' {
		t.Fatalf("file label = %q", r)
	}
	if r := runeAt(screen, 1, squareY(7)); r != '8' {
		t.Fatalf("rank label = %q", r)
	}
	if r := runeAt(screen, 0, 1+8+2); r != 's' {
		t.Fatalf("status starts with %q, want 's'", r)
	}
}

func TestEndFrameAfterClose(t *testing.T) {
	term, _ := newTestTerminal(t)
	if err := term.Close(); err != nil {
		t.Fatal(err)
	}
	if err := term.Close(); err != nil {
		t.Fatal("second close should be a no-op")
	}
	if err := term.EndFrame(); err == nil {
		t.Fatal("expected error drawing to a closed terminal")
	}
}

func TestInvalidBoardSize(t *testing.T) {
	if _, err := NewTerminal(tcell.NewSimulationScreen("UTF-8"), 0, 8); err == nil {
		t.Fatal("expected error")
	}
}

func TestEveryPressMovesSelector(t *testing.T) {
	tests := []struct {
		name   string
		frames []int // right-arrow presses arriving before each poll
	}{
		{"burst in one frame", []int{3}},
		{"one per frame", []int{1, 1, 1, 1}},
		{"mixed", []int{2, 0, 1, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, _ := newTestTerminal(t)
			b, err := board.NewBoard()
			if err != nil {
				t.Fatal(err)
			}
			ic := selection.NewInputContext(b)

			want := 0
			for _, n := range tt.frames {
				for range n {
					term.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
				}
				want += n
				term.PollEvents()
				ic.Process(term)
			}
			// Queued presses keep arriving on later frames with no new input.
			for range 2 * want {
				term.PollEvents()
				ic.Process(term)
			}

			if got := ic.Selector(); got != (board.GridCell{Col: want, Row: 0}) {
				t.Fatalf("selector = %v, want column %d", got, want)
			}
		})
	}
}

func TestRepeatedKeyReadsReleasedBetweenPresses(t *testing.T) {
	term, _ := newTestTerminal(t)
	term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	term.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	term.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))

	want := []bool{true, false, true, false}
	for i, w := range want {
		term.PollEvents()
		if got := term.IsKeyDown(common.KeySpace); got != w {
			t.Fatalf("poll %d: space down = %v, want %v", i, got, w)
		}
		if up := term.IsKeyDown(common.KeyUp); up != (i == 0) {
			t.Fatalf("poll %d: up down = %v", i, up)
		}
	}
}

func TestCloseStopsBlockedPump(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := NewTerminal(screen, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	impl := term.(*terminal)
	term.Start()

	// Nobody polls, so the pump fills its buffer and then waits to hand over one more.
	for range cap(impl.events) + 2 {
		screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	}
	deadline := time.Now().Add(2 * time.Second)
	for len(impl.events) < cap(impl.events) {
		if time.Now().After(deadline) {
			t.Fatalf("buffer holds %d events, want %d", len(impl.events), cap(impl.events))
		}
		time.Sleep(time.Millisecond)
	}
	time.Sleep(10 * time.Millisecond)

	if err := term.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case <-impl.pumpDone:
	case <-time.After(2 * time.Second):
		t.Fatal("event pump still running after Close")
	}
}
