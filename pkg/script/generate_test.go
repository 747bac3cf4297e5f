package script

import (
	"context"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/heaviest/pkg/core/graph"
)

func TestRandomVertices(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	vs := RandomVertices(rng, 50, 9)
	if len(vs) != 50 {
		t.Fatalf("len = %d, want 50", len(vs))
	}
	seen := make(map[int]bool)
	for _, v := range vs {
		if seen[v.ID] {
			t.Fatalf("duplicate id %d", v.ID)
		}
		seen[v.ID] = true
		if v.Weight < 0 || v.Weight > 9 {
			t.Errorf("vertex %d weight %d outside [0, 9]", v.ID, v.Weight)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	gen := func() []Op {
		rng := rand.New(rand.NewPCG(7, 7))
		return Generate(rng, RandomVertices(rng, 20, 10), 300, DefaultMix)
	}
	a, b := gen(), gen()
	if !slices.EqualFunc(a, b, func(x, y Op) bool { return x.String() == y.String() }) {
		t.Error("same seed produced different scripts")
	}
}

func TestGenerateRespectsMix(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	ops := Generate(rng, RandomVertices(rng, 10, 5), 200, Mix{KindAdd: 1, KindMax: 1})
	for _, op := range ops {
		if op.Kind != KindAdd && op.Kind != KindMax {
			t.Fatalf("drew %s, mix only allows add and max", op.Kind)
		}
		if op.Expect == nil {
			t.Fatalf("%s has no expectation", op)
		}
	}

	if ops := Generate(rng, RandomVertices(rng, 10, 5), 10, Mix{}); ops != nil {
		t.Errorf("empty mix produced %d ops", len(ops))
	}
	if ops := Generate(rng, nil, 10, DefaultMix); ops != nil {
		t.Errorf("no vertices produced %d ops", len(ops))
	}
}

func TestGeneratedScriptsPass(t *testing.T) {
	for seed := range uint64(5) {
		rng := rand.New(rand.NewPCG(seed, seed+1))
		vertices := RandomVertices(rng, 40, 20)
		ops := Generate(rng, vertices, 1500, DefaultMix)

		g := graph.New(vertices, graph.WithStrictEdges(), graph.WithRand(rng))
		r := NewRunner(nil)
		r.Verify = true
		res, err := r.Run(context.Background(), g, ops)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if res.Applied != len(ops) {
			t.Errorf("seed %d: applied %d of %d", seed, res.Applied, len(ops))
		}
	}
}
