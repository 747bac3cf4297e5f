// Package hashindex implements the vertex index: a fixed-size hash table with
// chaining that maps a vertex id to its fixed slot.
//
// The bucket array is sized once to the initial vertex count and never
// resized; only the chains shrink as vertices are removed. Buckets are chosen
// with a universal hash drawn fresh for every table:
//
//	bucket(id) = ((a·k + b) mod p) mod m,  p = 2^61 − 1,  k = uint64(id) mod p
//
// with a ∈ [1, p−1] and b ∈ [0, p−1], so the expected chain length is O(1)
// for any fixed set of ids, including adversarial ones.
package hashindex

import (
	"math/bits"
	"math/rand/v2"

	"github.com/matzehuels/heaviest/pkg/core/list"
)

// Prime is the Mersenne prime 2^61 − 1 used as the hash modulus.
const Prime uint64 = 1<<61 - 1

// Record is the index entry of one present vertex. The slot addresses the
// vertex's adjacency list and doubles as its handle into the priority index.
type Record struct {
	ID   int
	Slot int
}

// Option configures a Table.
type Option func(*Table)

// WithRand draws the hash coefficients from r instead of a fresh source.
// It exists so tests can pin the bucket layout.
func WithRand(r *rand.Rand) Option {
	return func(t *Table) { t.rng = r }
}

// Table is a chained hash table over a fixed vertex universe.
// The zero value is an empty table with no buckets. Table is not safe for
// concurrent use.
type Table struct {
	buckets []list.List[Record]
	a, b    uint64
	size    int
	rng     *rand.Rand
}

// New creates a table with exactly n buckets.
func New(n int, opts ...Option) *Table {
	t := &Table{buckets: make([]list.List[Record], max(n, 0))}
	for _, opt := range opts {
		opt(t)
	}
	if t.rng == nil {
		t.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	t.a = 1 + t.rng.Uint64N(Prime-1)
	t.b = t.rng.Uint64N(Prime)
	return t
}

// Coefficients returns the (a, b) pair drawn for this table.
func (t *Table) Coefficients() (a, b uint64) { return t.a, t.b }

func (t *Table) bucket(id int) int {
	k := uint64(id) % Prime
	hi, lo := bits.Mul64(t.a, k)
	lo, carry := bits.Add64(lo, t.b, 0)
	hi += carry
	_, h := bits.Div64(hi, lo, Prime)
	return int(h % uint64(len(t.buckets)))
}

// Insert adds id with its slot. It is idempotent: if id is already present
// the table is unchanged and Insert returns false. O(1) expected.
func (t *Table) Insert(id, slot int) bool {
	if len(t.buckets) == 0 {
		return false
	}
	chain := &t.buckets[t.bucket(id)]
	if chain.Find(matchID(id)) != nil {
		return false
	}
	chain.PushFront(Record{ID: id, Slot: slot})
	t.size++
	return true
}

// Find returns the record for id. O(1) expected.
func (t *Table) Find(id int) (Record, bool) {
	if len(t.buckets) == 0 {
		return Record{}, false
	}
	if e := t.buckets[t.bucket(id)].Find(matchID(id)); e != nil {
		return e.Value, true
	}
	return Record{}, false
}

// Remove unlinks and returns the record for id. O(1) expected.
func (t *Table) Remove(id int) (Record, bool) {
	if len(t.buckets) == 0 {
		return Record{}, false
	}
	chain := &t.buckets[t.bucket(id)]
	e := chain.Find(matchID(id))
	if e == nil {
		return Record{}, false
	}
	chain.Remove(e)
	t.size--
	return e.Value, true
}

// Len returns the number of records.
func (t *Table) Len() int { return t.size }

// Buckets returns the fixed bucket count.
func (t *Table) Buckets() int { return len(t.buckets) }

// ChainLengths returns the length of every chain, in bucket order.
func (t *Table) ChainLengths() []int {
	out := make([]int, len(t.buckets))
	for i := range t.buckets {
		out[i] = t.buckets[i].Len()
	}
	return out
}

func matchID(id int) func(Record) bool {
	return func(r Record) bool { return r.ID == id }
}
