package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-chessboard/common"
)

func TestLatchFiresOncePerPhysicalPress(t *testing.T) {
	keys := NewKeyState()
	latch := NewLatch()

	steps := []struct {
		down bool
		want bool
	}{
		{false, false},
		{true, true},
		{true, false},
		{true, false},
		{false, false},
		{true, true},
	}
	for i, s := range steps {
		keys.Set(common.KeySpace, s.down)
		if got := latch.Pressed(keys, common.KeySpace); got != s.want {
			t.Fatalf("step %d: Pressed = %v, want %v", i, got, s.want)
		}
	}
}

func TestLatchKeysAreIndependent(t *testing.T) {
	keys := NewKeyState()
	latch := NewLatch()

	keys.Press(common.KeyUp)
	if !latch.Pressed(keys, common.KeyUp) {
		t.Fatal("up should fire")
	}
	keys.Press(common.KeyLeft)
	if !latch.Pressed(keys, common.KeyLeft) {
		t.Fatal("left should fire while up is still held")
	}
	if latch.Pressed(keys, common.KeyUp) {
		t.Fatal("up must not fire twice")
	}
	if !latch.Held(common.KeyUp) {
		t.Fatal("up should be latched")
	}

	latch.Reset()
	if !latch.Pressed(keys, common.KeyUp) {
		t.Fatal("reset should re-arm held keys")
	}
}

func TestKeyState(t *testing.T) {
	keys := NewKeyState()
	keys.Press(common.KeyH, common.KeyL)
	keys.PollEvents()
	if !keys.IsKeyDown(common.KeyH) || !keys.IsKeyDown(common.KeyL) {
		t.Fatal("pressed keys should be down")
	}
	keys.Release(common.KeyH)
	if keys.IsKeyDown(common.KeyH) {
		t.Fatal("released key should be up")
	}
	keys.ReleaseAll()
	if keys.IsKeyDown(common.KeyL) {
		t.Fatal("ReleaseAll should clear every key")
	}
}
