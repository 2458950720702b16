// Package terminal renders the chessboard as a top-down grid of terminal cells with tcell and
// feeds terminal key events to the scene as a polled input source.
package terminal

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/draw"
	"github.com/Carmen-Shannon/oxy-chessboard/engine/input"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// cellWidth is the number of terminal columns per board square.
const cellWidth = 3

// Terminal is both the window and the draw sink of the terminal frontend.
// Terminals report key presses but not releases, so each press is held for exactly one
// PollEvents. A key delivered on one poll reads released on the next, and further presses of
// it queue behind that gap, so every press reaches a latch as its own rising edge.
type Terminal interface {
	draw.Sink
	input.Source

	// HandleEvent applies one tcell event. The pump started by Start calls it; tests call it directly.
	HandleEvent(ev tcell.Event)

	// Start pumps screen events in the background until Close.
	Start()

	// IsRunning reports false after Close or a Ctrl-C.
	IsRunning() bool

	// SetResizeCallback registers the handler called on terminal resize, in cells.
	SetResizeCallback(callback func(width, height int))

	Width() int
	Height() int

	// Close restores the terminal. Safe to call more than once.
	Close() error
}

type terminal struct {
	mu *sync.Mutex

	screen        tcell.Screen
	cols, rows    int
	width, height int

	events   chan tcell.Event
	done     chan struct{}
	pumpDone chan struct{}

	// queue holds presses in arrival order until PollEvents can deliver them.
	queue     []common.Key
	delivered map[common.Key]bool
	keys      *input.KeyState

	running  bool
	onResize func(width, height int)

	frame    draw.Frame
	commands []draw.Command
	title    string
}

var _ Terminal = &terminal{}

// NewTerminal initializes screen and returns a frontend for a cols x rows board.
//
// Parameters:
//   - screen: the tcell screen, real or simulated; it is initialized here
//   - cols, rows: the board dimensions in squares
//   - options: functional options
//
// Returns:
//   - Terminal: the frontend
//   - error: an error if the screen could not be initialized
func NewTerminal(screen tcell.Screen, cols, rows int, options ...TerminalOption) (Terminal, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("terminal: invalid board size %dx%d", cols, rows)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init screen: %w", err)
	}
	t := &terminal{
		mu:      &sync.Mutex{},
		screen:  screen,
		cols:    cols,
		rows:    rows,
		events:    make(chan tcell.Event, 100),
		done:      make(chan struct{}),
		pumpDone:  make(chan struct{}),
		delivered: make(map[common.Key]bool),
		keys:      input.NewKeyState(),
		running:   true,
		title:     "chessboard",
	}
	for _, opt := range options {
		opt(t)
	}
	t.width, t.height = screen.Size()
	screen.Clear()
	return t, nil
}

func (t *terminal) Start() {
	t.mu.Lock()
	screen := t.screen
	t.mu.Unlock()
	if screen == nil {
		return
	}
	go func() {
		defer close(t.pumpDone)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(t.events)
				return
			}
			select {
			case t.events <- ev:
			case <-t.done:
				return
			}
		}
	}()
}

// PollEvents applies every pending event, then holds down at most one queued press per key.
// Keys delivered by the previous poll are skipped this time so they read released once.
func (t *terminal) PollEvents() {
drain:
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				t.mu.Lock()
				t.running = false
				t.mu.Unlock()
				break drain
			}
			t.HandleEvent(ev)
		default:
			break drain
		}
	}

	t.mu.Lock()
	down := make(map[common.Key]bool)
	waiting := make([]common.Key, 0, len(t.queue))
	for _, k := range t.queue {
		if t.delivered[k] || down[k] {
			waiting = append(waiting, k)
			continue
		}
		down[k] = true
	}
	t.queue = waiting
	t.delivered = down
	t.mu.Unlock()

	t.keys.ReleaseAll()
	for k := range down {
		t.keys.Press(k)
	}
}

func (t *terminal) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			t.mu.Lock()
			t.running = false
			t.mu.Unlock()
			return
		}
		if k, ok := translateKey(ev); ok {
			t.mu.Lock()
			t.queue = append(t.queue, k)
			t.mu.Unlock()
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		t.mu.Lock()
		t.width, t.height = w, h
		cb := t.onResize
		if t.screen != nil {
			t.screen.Sync()
		}
		t.mu.Unlock()
		if cb != nil {
			cb(w, h)
		}
	}
}

func (t *terminal) IsKeyDown(key common.Key) bool {
	return t.keys.IsKeyDown(key)
}

func (t *terminal) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *terminal) SetResizeCallback(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResize = callback
}

func (t *terminal) Width() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width
}

func (t *terminal) Height() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.height
}

func (t *terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.screen == nil {
		return nil
	}
	t.running = false
	close(t.done)
	t.screen.Fini()
	t.screen = nil
	return nil
}

func (t *terminal) BeginFrame(frame draw.Frame) error {
	t.frame = frame
	t.commands = t.commands[:0]
	return nil
}

func (t *terminal) Draw(cmd draw.Command) error {
	t.commands = append(t.commands, cmd)
	return nil
}

// EndFrame paints the board with row 0 at the bottom, then the file letters and the status line.
func (t *terminal) EndFrame() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.screen == nil {
		return fmt.Errorf("terminal: closed")
	}

	bg := tcell.StyleDefault.Background(rgb(t.frame.ClearColor))
	t.screen.Fill(' ', bg)

	light, dark := tcell.ColorWhite, tcell.ColorBlack
	pieces := make(map[[2]int]draw.Command)
	selCol, selRow := -1, -1
	for _, c := range t.commands {
		switch c.Mesh {
		case draw.MeshBoard:
			light, dark = rgb(c.Color), rgb(c.AltColor)
		case draw.MeshPiece:
			pieces[[2]int{c.Col, c.Row}] = c
		case draw.MeshSelector:
			selCol, selRow = c.Col, c.Row
		}
	}

	const left, top = 3, 1
	label := bg.Foreground(tcell.ColorWhite)
	t.putString(left, 0, t.title, label.Bold(true))

	for row := range t.rows {
		y := top + t.rows - 1 - row
		t.putString(0, y, fmt.Sprintf("%2d", row+1), label)
		for col := range t.cols {
			square := dark
			if (col+row)%2 == 1 {
				square = light
			}
			style := tcell.StyleDefault.Background(square)
			glyph := ' '
			if p, ok := pieces[[2]int{col, row}]; ok {
				style = style.Foreground(rgb(p.Color)).Bold(true)
				glyph = '●'
			}
			x := left + col*cellWidth
			lb, rb := ' ', ' '
			if col == selCol && row == selRow {
				style = style.Reverse(true)
				lb, rb = '[', ']'
			}
			t.screen.SetContent(x, y, lb, nil, style)
			t.screen.SetContent(x+1, y, glyph, nil, style)
			t.screen.SetContent(x+2, y, rb, nil, style)
		}
	}

	for col := range t.cols {
		t.screen.SetContent(left+col*cellWidth+1, top+t.rows, rune('a'+col%26), nil, label)
	}
	t.putString(0, top+t.rows+2, t.frame.Status, label)

	t.screen.Show()
	return nil
}

func (t *terminal) putString(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

// translateKey maps terminal keys onto the GLFW-numbered key codes the scene binds.
func translateKey(ev *tcell.EventKey) (common.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return common.KeyUp, true
	case tcell.KeyDown:
		return common.KeyDown, true
	case tcell.KeyLeft:
		return common.KeyLeft, true
	case tcell.KeyRight:
		return common.KeyRight, true
	case tcell.KeyEscape:
		return common.KeyEsc, true
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return common.KeySpace, true
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r >= 'A' && r <= 'Z' {
			return common.Key(r), true
		}
	}
	return 0, false
}

func rgb(c mgl32.Vec4) tcell.Color {
	ch := func(v float32) int32 {
		return int32(common.Clamp(v, 0, 1)*255 + 0.5)
	}
	return tcell.NewRGBColor(ch(c[0]), ch(c[1]), ch(c[2]))
}
