// Package adjacency implements the adjacency store: one neighbor list per
// fixed vertex slot, where every edge is represented by two twin records, one
// in each endpoint's list.
//
// A record holds a handle to its twin, so deleting a vertex unlinks the other
// half of each incident edge in O(1) without searching the neighbor's list.
package adjacency

import (
	"errors"
	"fmt"
	"iter"

	"github.com/matzehuels/heaviest/pkg/core/list"
)

var (
	// ErrBrokenTwin is returned by [Store.Verify] when a record's twin does not
	// point back at it or does not live in the neighbor's list.
	ErrBrokenTwin = errors.New("broken twin link")

	// ErrEdgeCount is returned by [Store.Verify] when the edge counter does not
	// match the number of stored records.
	ErrEdgeCount = errors.New("edge count mismatch")
)

// Endpoint identifies a vertex by its external id and its fixed slot.
type Endpoint struct {
	ID   int
	Slot int
}

// Neighbor is one half of an edge, stored in the list of the opposite
// endpoint. Endpoint is the neighbor the record points at.
type Neighbor struct {
	Endpoint

	twin *list.Element[Neighbor]
}

// Twin returns the record representing the same edge in the neighbor's list.
func (n Neighbor) Twin() *list.Element[Neighbor] { return n.twin }

// Store holds the neighbor lists of a fixed set of slots.
// It is not safe for concurrent use.
type Store struct {
	lists []*list.List[Neighbor]
	edges int
}

// New creates a store with n empty slots.
func New(n int) *Store {
	s := &Store{lists: make([]*list.List[Neighbor], n)}
	for i := range s.lists {
		s.lists[i] = list.New[Neighbor]()
	}
	return s
}

// Connect records an undirected edge between u and v and returns the record
// placed in u's list and the one placed in v's list. O(1).
//
// The caller guarantees u and v are distinct, occupied, and not yet adjacent;
// use [Store.Connected] first when that is not known.
func (s *Store) Connect(u, v Endpoint) (inU, inV *list.Element[Neighbor]) {
	inU = s.lists[u.Slot].PushFront(Neighbor{Endpoint: v})
	inV = s.lists[v.Slot].PushFront(Neighbor{Endpoint: u})
	inU.Value.twin = inV
	inV.Value.twin = inU
	s.edges++
	return inU, inV
}

// DisconnectAll removes every edge incident to slot and vacates the slot.
// For each neighbor the twin record is unlinked through its handle and fn,
// if non-nil, is called with that neighbor. It returns the number of edges
// removed. O(deg) plus the cost of fn.
func (s *Store) DisconnectAll(slot int, fn func(Endpoint)) int {
	own := s.lists[slot]
	if own == nil {
		return 0
	}
	removed := 0
	for e := own.Front(); e != nil; e = e.Next() {
		nb := e.Value
		s.lists[nb.Slot].Remove(nb.twin)
		s.edges--
		removed++
		if fn != nil {
			fn(nb.Endpoint)
		}
	}
	s.lists[slot] = nil
	return removed
}

// Vacant reports whether slot has been vacated by DisconnectAll.
func (s *Store) Vacant(slot int) bool { return s.lists[slot] == nil }

// Degree returns the number of neighbors of slot; 0 for a vacant slot.
func (s *Store) Degree(slot int) int {
	if l := s.lists[slot]; l != nil {
		return l.Len()
	}
	return 0
}

// Neighbors iterates over the neighbors of slot, most recent edge first.
func (s *Store) Neighbors(slot int) iter.Seq[Endpoint] {
	return func(yield func(Endpoint) bool) {
		l := s.lists[slot]
		if l == nil {
			return
		}
		for nb := range l.All() {
			if !yield(nb.Endpoint) {
				return
			}
		}
	}
}

// Connected reports whether u and v share an edge, scanning the shorter of
// the two lists. O(min(deg u, deg v)).
func (s *Store) Connected(u, v int) bool {
	a, b := s.lists[u], s.lists[v]
	if a == nil || b == nil {
		return false
	}
	target := v
	if b.Len() < a.Len() {
		a, target = b, u
	}
	return a.Find(func(n Neighbor) bool { return n.Slot == target }) != nil
}

// Edges returns the number of edges currently stored.
func (s *Store) Edges() int { return s.edges }

// Slots returns the number of slots the store was created with.
func (s *Store) Slots() int { return len(s.lists) }

// Verify checks that every record has a twin in its neighbor's list that
// points back at it, and that the edge counter equals half the record count.
func (s *Store) Verify() error {
	records := 0
	for slot, l := range s.lists {
		if l == nil {
			continue
		}
		for e := l.Front(); e != nil; e = e.Next() {
			records++
			twin := e.Value.twin
			if twin == nil || twin.Value.twin != e || twin.Value.Slot != slot {
				return fmt.Errorf("%w: slot %d -> %d", ErrBrokenTwin, slot, e.Value.Slot)
			}
			if owner := s.lists[e.Value.Slot]; owner == nil || twin.Owner() != owner {
				return fmt.Errorf("%w: slot %d -> %d (twin not in neighbor list)", ErrBrokenTwin, slot, e.Value.Slot)
			}
		}
	}
	if records != 2*s.edges {
		return fmt.Errorf("%w: %d records for %d edges", ErrEdgeCount, records, s.edges)
	}
	return nil
}
