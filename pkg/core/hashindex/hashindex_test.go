package hashindex

import (
	"math"
	"math/rand/v2"
	"testing"
)

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

func TestInsertFindRemove(t *testing.T) {
	tbl := New(3, seeded(1))
	ids := []int{7, 5, 9}
	for slot, id := range ids {
		if !tbl.Insert(id, slot) {
			t.Fatalf("Insert(%d) = false, want true", id)
		}
	}

	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
	for slot, id := range ids {
		rec, ok := tbl.Find(id)
		if !ok {
			t.Fatalf("Find(%d) missing", id)
		}
		if rec.Slot != slot || rec.ID != id {
			t.Errorf("Find(%d) = %+v, want slot %d", id, rec, slot)
		}
	}

	rec, ok := tbl.Remove(5)
	if !ok || rec.Slot != 1 {
		t.Errorf("Remove(5) = %+v, %v, want slot 1", rec, ok)
	}
	if _, ok := tbl.Find(5); ok {
		t.Error("Find(5) after Remove should miss")
	}
	if _, ok := tbl.Remove(5); ok {
		t.Error("second Remove(5) should miss")
	}
	if tbl.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tbl.Len())
	}
	if tbl.Buckets() != 3 {
		t.Errorf("Buckets() = %d, want 3 (never shrinks)", tbl.Buckets())
	}
}

func TestInsertIsIdempotent(t *testing.T) {
	tbl := New(2, seeded(2))
	if !tbl.Insert(42, 0) {
		t.Fatal("first Insert should succeed")
	}
	if tbl.Insert(42, 1) {
		t.Error("duplicate Insert should return false")
	}
	rec, _ := tbl.Find(42)
	if rec.Slot != 0 {
		t.Errorf("duplicate Insert overwrote slot: got %d, want 0", rec.Slot)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
}

func TestEmptyTable(t *testing.T) {
	tbl := New(0)
	if tbl.Insert(1, 0) {
		t.Error("Insert into bucketless table should fail")
	}
	if _, ok := tbl.Find(1); ok {
		t.Error("Find on bucketless table should miss")
	}
	if _, ok := tbl.Remove(1); ok {
		t.Error("Remove on bucketless table should miss")
	}
}

func TestExtremeIDs(t *testing.T) {
	ids := []int{0, -1, math.MinInt, math.MaxInt, 1 << 40, -(1 << 40)}
	tbl := New(len(ids), seeded(3))
	for slot, id := range ids {
		tbl.Insert(id, slot)
	}
	for slot, id := range ids {
		rec, ok := tbl.Find(id)
		if !ok || rec.Slot != slot {
			t.Errorf("Find(%d) = %+v, %v, want slot %d", id, rec, ok, slot)
		}
	}
}

func TestCoefficientsInRange(t *testing.T) {
	for seed := range uint64(50) {
		a, b := New(1, seeded(seed)).Coefficients()
		if a < 1 || a >= Prime {
			t.Fatalf("seed %d: a = %d out of [1, p-1]", seed, a)
		}
		if b >= Prime {
			t.Fatalf("seed %d: b = %d out of [0, p-1]", seed, b)
		}
	}
}

func TestFreshCoefficientsPerTable(t *testing.T) {
	a1, b1 := New(8).Coefficients()
	a2, b2 := New(8).Coefficients()
	if a1 == a2 && b1 == b2 {
		t.Error("two tables drew identical coefficients")
	}
}

func TestChainsStayShortOnStridedIDs(t *testing.T) {
	// Ids that all collide under a plain id mod n hash.
	const n = 1024
	tbl := New(n, seeded(4))
	for i := range n {
		tbl.Insert(i*n, i)
	}

	longest, total := 0, 0
	for _, l := range tbl.ChainLengths() {
		longest = max(longest, l)
		total += l
	}
	if total != n {
		t.Fatalf("chains hold %d records, want %d", total, n)
	}
	if longest > 12 {
		t.Errorf("longest chain = %d, expected O(1) chains", longest)
	}
}
