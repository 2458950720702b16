// Package input defines the polled keyboard contract consumed by the scene and its controllers,
// plus the edge-detection latch that turns held keys into single presses.
package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
)

// Source is a polled keyboard. PollEvents is called once at frame start; IsKeyDown
// then reports the state observed by that poll.
type Source interface {
	// IsKeyDown reports whether the key is currently held.
	//
	// Parameters:
	//   - key: the virtual key code to query
	//
	// Returns:
	//   - bool: true while the key is down
	IsKeyDown(key common.Key) bool

	// PollEvents processes pending platform events and refreshes key state.
	PollEvents()
}

// Latch converts held keys into one-shot presses. A key fires once when first observed down
// and re-arms only after it has been observed released.
type Latch struct {
	held map[common.Key]bool
}

// NewLatch creates an empty Latch.
//
// Returns:
//   - *Latch: a latch with no keys held
func NewLatch() *Latch {
	return &Latch{held: make(map[common.Key]bool)}
}

// Pressed reports a rising edge for key on src.
//
// Parameters:
//   - src: the input source to sample
//   - key: the key to test
//
// Returns:
//   - bool: true only on the first frame the key is seen down since it was last released
func (l *Latch) Pressed(src Source, key common.Key) bool {
	if !src.IsKeyDown(key) {
		delete(l.held, key)
		return false
	}
	if l.held[key] {
		return false
	}
	l.held[key] = true
	return true
}

// Held reports whether the latch is currently holding key closed.
func (l *Latch) Held(key common.Key) bool {
	return l.held[key]
}

// Reset releases every latched key.
func (l *Latch) Reset() {
	clear(l.held)
}

// KeyState is an in-memory Source. Frontends that receive key events (rather than polling)
// record them here, and tests use it to script input.
type KeyState struct {
	mu   *sync.Mutex
	down map[common.Key]bool
}

var _ Source = &KeyState{}

// NewKeyState creates a KeyState with every key released.
//
// Returns:
//   - *KeyState: the new key state
func NewKeyState() *KeyState {
	return &KeyState{
		mu:   &sync.Mutex{},
		down: make(map[common.Key]bool),
	}
}

// Set marks key as held or released.
//
// Parameters:
//   - key: the key to update
//   - down: true to press, false to release
func (k *KeyState) Set(key common.Key, down bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if down {
		k.down[key] = true
		return
	}
	delete(k.down, key)
}

// Press marks each key as held.
func (k *KeyState) Press(keys ...common.Key) {
	for _, key := range keys {
		k.Set(key, true)
	}
}

// Release marks each key as released.
func (k *KeyState) Release(keys ...common.Key) {
	for _, key := range keys {
		k.Set(key, false)
	}
}

// ReleaseAll releases every key.
func (k *KeyState) ReleaseAll() {
	k.mu.Lock()
	defer k.mu.Unlock()
	clear(k.down)
}

func (k *KeyState) IsKeyDown(key common.Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.down[key]
}

func (k *KeyState) PollEvents() {}
