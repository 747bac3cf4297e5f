package heap

import (
	"errors"
	"fmt"
)

var (
	// ErrHeapOrder is returned by [MaxHeap.Verify] when a parent key is smaller
	// than one of its children.
	ErrHeapOrder = errors.New("heap order violated")

	// ErrPositionTable is returned by [MaxHeap.Verify] when an element's recorded
	// position does not match where it actually sits in the array.
	ErrPositionTable = errors.New("position table out of sync")
)

// absent marks a slot whose element has been removed.
const absent = -1

// Element is one entry of the heap: the current key of the vertex stored at
// the given fixed slot.
type Element struct {
	Key  int
	Slot int
}

// MaxHeap is a binary max-heap addressed by slot.
//
// Slots are assigned once by [Build] (slot i holds keys[i]) and act as stable
// handles: pos[slot] always holds the slot's current array position, so key
// changes and removals repair the heap without searching.
//
// The zero value is an empty heap. MaxHeap is not safe for concurrent use.
type MaxHeap struct {
	items []Element // live elements in heap order
	pos   []int     // slot -> index in items, or absent
}

// Build creates a heap over keys in O(n) by sifting down from the last
// parent to the root.
func Build(keys []int) *MaxHeap {
	h := &MaxHeap{
		items: make([]Element, len(keys)),
		pos:   make([]int, len(keys)),
	}
	for i, k := range keys {
		h.items[i] = Element{Key: k, Slot: i}
		h.pos[i] = i
	}
	for i := parent(len(h.items) - 1); i >= 0; i-- {
		h.down(i)
	}
	return h
}

func parent(i int) int { return (i+1)/2 - 1 }
func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }

// Len returns the number of live elements.
func (h *MaxHeap) Len() int { return len(h.items) }

// Peek returns the element with the largest key in O(1).
// It returns false when the heap is empty.
func (h *MaxHeap) Peek() (Element, bool) {
	if len(h.items) == 0 {
		return Element{}, false
	}
	return h.items[0], true
}

// Contains reports whether slot is still live.
func (h *MaxHeap) Contains(slot int) bool {
	return slot >= 0 && slot < len(h.pos) && h.pos[slot] != absent
}

// Key returns the current key of slot. The slot must be live.
func (h *MaxHeap) Key(slot int) int {
	return h.items[h.pos[slot]].Key
}

// IncreaseKey adds delta to the key of slot and sifts it up.
// A negative delta is treated as a decrease.
func (h *MaxHeap) IncreaseKey(slot, delta int) {
	if delta < 0 {
		h.DecreaseKey(slot, -delta)
		return
	}
	i := h.pos[slot]
	h.items[i].Key += delta
	h.up(i)
}

// DecreaseKey subtracts delta from the key of slot and sifts it down.
// A negative delta is treated as an increase.
func (h *MaxHeap) DecreaseKey(slot, delta int) {
	if delta < 0 {
		h.IncreaseKey(slot, -delta)
		return
	}
	i := h.pos[slot]
	h.items[i].Key -= delta
	h.down(i)
}

// Remove deletes slot from the heap in O(log n) and returns its last element.
// The last live element takes its place and is repaired in both directions;
// only one of the two passes can move it. The slot must not be used again.
func (h *MaxHeap) Remove(slot int) Element {
	i := h.pos[slot]
	last := len(h.items) - 1
	if i != last {
		h.swap(i, last)
	}
	removed := h.items[last]
	h.items = h.items[:last]
	h.pos[slot] = absent
	if i < last {
		h.up(i)
		h.down(i)
	}
	return removed
}

// Items returns a copy of the heap array in its current order.
func (h *MaxHeap) Items() []Element {
	out := make([]Element, len(h.items))
	copy(out, h.items)
	return out
}

// Verify walks the array and checks that every parent key is at least the
// key of each child and that the position table matches the array.
func (h *MaxHeap) Verify() error {
	for i, e := range h.items {
		if h.pos[e.Slot] != i {
			return fmt.Errorf("%w: slot %d recorded at %d, found at %d", ErrPositionTable, e.Slot, h.pos[e.Slot], i)
		}
		for _, c := range [2]int{left(i), right(i)} {
			if c < len(h.items) && h.items[c].Key > e.Key {
				return fmt.Errorf("%w: index %d (key %d) < child %d (key %d)", ErrHeapOrder, i, e.Key, c, h.items[c].Key)
			}
		}
	}
	return nil
}

func (h *MaxHeap) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.pos[h.items[i].Slot] = i
	h.pos[h.items[j].Slot] = j
}

func (h *MaxHeap) up(i int) {
	for i > 0 {
		p := parent(i)
		if h.items[i].Key <= h.items[p].Key {
			return
		}
		h.swap(i, p)
		i = p
	}
}

func (h *MaxHeap) down(i int) {
	n := len(h.items)
	for {
		largest := i
		if l := left(i); l < n && h.items[l].Key > h.items[largest].Key {
			largest = l
		}
		if r := right(i); r < n && h.items[r].Key > h.items[largest].Key {
			largest = r
		}
		if largest == i {
			return
		}
		h.swap(i, largest)
		i = largest
	}
}
