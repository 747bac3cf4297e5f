package heap

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		keys    []int
		wantMax int
	}{
		{name: "single", keys: []int{3}, wantMax: 3},
		{name: "ascending", keys: []int{1, 2, 3, 4, 5, 6, 7}, wantMax: 7},
		{name: "descending", keys: []int{9, 7, 5, 3}, wantMax: 9},
		{name: "duplicates", keys: []int{2, 2, 2, 2}, wantMax: 2},
		{name: "negative", keys: []int{-4, -1, -9}, wantMax: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Build(tt.keys)
			if err := h.Verify(); err != nil {
				t.Fatalf("Verify: %v", err)
			}
			top, ok := h.Peek()
			if !ok {
				t.Fatal("Peek() on non-empty heap returned false")
			}
			if top.Key != tt.wantMax {
				t.Errorf("Peek().Key = %d, want %d", top.Key, tt.wantMax)
			}
			if tt.keys[top.Slot] != top.Key {
				t.Errorf("slot %d holds key %d, want %d", top.Slot, top.Key, tt.keys[top.Slot])
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	h := Build(nil)
	if _, ok := h.Peek(); ok {
		t.Error("Peek() on empty heap should return false")
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
	if h.Contains(0) {
		t.Error("empty heap should not contain slot 0")
	}

	var zero MaxHeap
	if _, ok := zero.Peek(); ok {
		t.Error("zero-value heap should be empty")
	}
}

func TestIncreaseKeyRises(t *testing.T) {
	h := Build([]int{10, 5, 3, 1})
	h.IncreaseKey(3, 20)

	top, _ := h.Peek()
	if top.Slot != 3 || top.Key != 21 {
		t.Errorf("Peek() = %+v, want slot 3 key 21", top)
	}
	if err := h.Verify(); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestDecreaseKeySinks(t *testing.T) {
	h := Build([]int{10, 5, 3, 1})
	h.DecreaseKey(0, 8)

	top, _ := h.Peek()
	if top.Slot != 1 || top.Key != 5 {
		t.Errorf("Peek() = %+v, want slot 1 key 5", top)
	}
	if got := h.Key(0); got != 2 {
		t.Errorf("Key(0) = %d, want 2", got)
	}
	if err := h.Verify(); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestNegativeDeltaFlipsDirection(t *testing.T) {
	h := Build([]int{4, 8})
	h.IncreaseKey(1, -6)
	h.DecreaseKey(0, -1)

	if got := h.Key(1); got != 2 {
		t.Errorf("Key(1) = %d, want 2", got)
	}
	top, _ := h.Peek()
	if top.Slot != 0 || top.Key != 5 {
		t.Errorf("Peek() = %+v, want slot 0 key 5", top)
	}
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name   string
		keys   []int
		remove int
	}{
		{name: "root", keys: []int{9, 7, 8, 1, 2}, remove: 0},
		{name: "last", keys: []int{9, 7, 8, 1, 2}, remove: 4},
		{name: "middle needs up", keys: []int{100, 1, 90, 0, 0, 80, 85}, remove: 3},
		{name: "only element", keys: []int{5}, remove: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Build(tt.keys)
			got := h.Remove(tt.remove)

			if got.Slot != tt.remove || got.Key != tt.keys[tt.remove] {
				t.Errorf("Remove() = %+v, want slot %d key %d", got, tt.remove, tt.keys[tt.remove])
			}
			if h.Contains(tt.remove) {
				t.Error("removed slot still reported as live")
			}
			if h.Len() != len(tt.keys)-1 {
				t.Errorf("Len() = %d, want %d", h.Len(), len(tt.keys)-1)
			}
			if err := h.Verify(); err != nil {
				t.Errorf("Verify: %v", err)
			}
		})
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	h := Build([]int{5, 4, 3})
	h.items[0].Key = 0
	if err := h.Verify(); !errors.Is(err, ErrHeapOrder) {
		t.Errorf("Verify() = %v, want ErrHeapOrder", err)
	}

	h = Build([]int{5, 4, 3})
	h.pos[1] = 2
	if err := h.Verify(); !errors.Is(err, ErrPositionTable) {
		t.Errorf("Verify() = %v, want ErrPositionTable", err)
	}
}

func TestRandomOperationsMatchReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	const n = 200

	keys := make([]int, n)
	for i := range keys {
		keys[i] = rng.IntN(1000)
	}
	ref := make(map[int]int, n)
	for i, k := range keys {
		ref[i] = k
	}
	h := Build(keys)

	for step := 0; step < 2000 && len(ref) > 0; step++ {
		slot := rng.IntN(n)
		if _, live := ref[slot]; !live {
			continue
		}
		switch rng.IntN(3) {
		case 0:
			d := rng.IntN(50)
			h.IncreaseKey(slot, d)
			ref[slot] += d
		case 1:
			d := rng.IntN(50)
			h.DecreaseKey(slot, d)
			ref[slot] -= d
		case 2:
			h.Remove(slot)
			delete(ref, slot)
		}

		if err := h.Verify(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if h.Len() != len(ref) {
			t.Fatalf("step %d: Len() = %d, want %d", step, h.Len(), len(ref))
		}
		if top, ok := h.Peek(); ok {
			want := top.Key
			for _, k := range ref {
				want = max(want, k)
			}
			if top.Key != want {
				t.Fatalf("step %d: Peek().Key = %d, want %d", step, top.Key, want)
			}
		}
	}
}
