package adjacency

import (
	"errors"
	"slices"
	"testing"
)

func ep(slot int) Endpoint { return Endpoint{ID: slot * 10, Slot: slot} }

func neighborSlots(s *Store, slot int) []int {
	var out []int
	for nb := range s.Neighbors(slot) {
		out = append(out, nb.Slot)
	}
	slices.Sort(out)
	return out
}

func TestConnectLinksTwins(t *testing.T) {
	s := New(2)
	inU, inV := s.Connect(ep(0), ep(1))

	if inU.Value.Slot != 1 || inV.Value.Slot != 0 {
		t.Errorf("records point at %d and %d, want 1 and 0", inU.Value.Slot, inV.Value.Slot)
	}
	if inU.Value.Twin() != inV || inV.Value.Twin() != inU {
		t.Error("records are not each other's twin")
	}
	if s.Edges() != 1 {
		t.Errorf("Edges() = %d, want 1", s.Edges())
	}
	if s.Degree(0) != 1 || s.Degree(1) != 1 {
		t.Errorf("degrees = %d, %d, want 1, 1", s.Degree(0), s.Degree(1))
	}
}

func TestDisconnectAll(t *testing.T) {
	// Star around slot 0 plus one edge not touching it.
	s := New(5)
	s.Connect(ep(0), ep(1))
	s.Connect(ep(2), ep(0))
	s.Connect(ep(0), ep(3))
	s.Connect(ep(3), ep(4))

	var seen []int
	removed := s.DisconnectAll(0, func(nb Endpoint) {
		seen = append(seen, nb.Slot)
		if nb.ID != nb.Slot*10 {
			t.Errorf("neighbor id = %d, want %d", nb.ID, nb.Slot*10)
		}
	})
	slices.Sort(seen)

	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	if !slices.Equal(seen, []int{1, 2, 3}) {
		t.Errorf("callback saw %v, want [1 2 3]", seen)
	}
	if !s.Vacant(0) {
		t.Error("slot 0 should be vacant")
	}
	if s.Edges() != 1 {
		t.Errorf("Edges() = %d, want 1", s.Edges())
	}
	for _, slot := range []int{1, 2} {
		if d := s.Degree(slot); d != 0 {
			t.Errorf("Degree(%d) = %d, want 0", slot, d)
		}
	}
	if got := neighborSlots(s, 3); !slices.Equal(got, []int{4}) {
		t.Errorf("neighbors of 3 = %v, want [4]", got)
	}
}

func TestDisconnectAllTwice(t *testing.T) {
	s := New(2)
	s.Connect(ep(0), ep(1))
	s.DisconnectAll(0, nil)

	if n := s.DisconnectAll(0, nil); n != 0 {
		t.Errorf("second DisconnectAll removed %d edges, want 0", n)
	}
	if s.Degree(0) != 0 {
		t.Error("vacant slot should report degree 0")
	}
	if got := neighborSlots(s, 0); got != nil {
		t.Errorf("vacant slot neighbors = %v, want none", got)
	}
}

func TestConnected(t *testing.T) {
	s := New(4)
	s.Connect(ep(0), ep(1))
	s.Connect(ep(0), ep(2))
	s.Connect(ep(0), ep(3))

	tests := []struct {
		u, v int
		want bool
	}{
		{0, 1, true},
		{3, 0, true},
		{1, 2, false},
		{2, 3, false},
	}
	for _, tt := range tests {
		if got := s.Connected(tt.u, tt.v); got != tt.want {
			t.Errorf("Connected(%d, %d) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}

	s.DisconnectAll(1, nil)
	if s.Connected(0, 1) {
		t.Error("Connected(0, 1) after vacating 1 should be false")
	}
}

func TestNeighborsEarlyStop(t *testing.T) {
	s := New(4)
	s.Connect(ep(0), ep(1))
	s.Connect(ep(0), ep(2))
	s.Connect(ep(0), ep(3))

	count := 0
	for range s.Neighbors(0) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("iterated %d times after break, want 1", count)
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(s *Store)
		want    error
	}{
		{
			name:    "intact",
			corrupt: func(*Store) {},
		},
		{
			name: "twin cleared",
			corrupt: func(s *Store) {
				s.lists[0].Front().Value.twin = nil
			},
			want: ErrBrokenTwin,
		},
		{
			name: "twin removed from neighbor list",
			corrupt: func(s *Store) {
				e := s.lists[0].Front()
				s.lists[1].Remove(e.Value.twin)
			},
			want: ErrBrokenTwin,
		},
		{
			name:    "edge counter drift",
			corrupt: func(s *Store) { s.edges++ },
			want:    ErrEdgeCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(3)
			s.Connect(ep(0), ep(1))
			s.Connect(ep(1), ep(2))
			tt.corrupt(s)

			err := s.Verify()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Verify() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Verify() = %v, want %v", err, tt.want)
			}
		})
	}
}
