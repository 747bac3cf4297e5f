package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	"github.com/matzehuels/heaviest/pkg/graphio"
	"github.com/matzehuels/heaviest/pkg/script"
)

// stressChunk is the number of operations applied between progress updates.
const stressChunk = 500

// stressOpts holds the flags of the stress command.
type stressOpts struct {
	vertices  int
	ops       int
	rounds    int
	seed      uint64
	maxWeight int
	repro     string
}

// stressCommand creates the stress command, which applies seeded random
// operations and checks each result against a reference model.
func (c *CLI) stressCommand() *cobra.Command {
	opts := stressOpts{vertices: 200, ops: 5000, rounds: 1, maxWeight: 100}

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Apply random operations and verify every result",
		Long: `Build random graphs and apply random operations to them. Every result is
checked against a reference model and every invariant is verified after each
operation.

On the first failure the vertices and the operations up to it are written to
--repro so the run can be replayed with "heaviest run".`,
		Example: `  heaviest stress --seed 42
  heaviest stress --vertices 1000 --ops 20000 --rounds 10 --repro ./failure`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = c.Config.Graph.Seed
				if opts.seed == 0 {
					opts.seed = uint64(time.Now().UnixNano())
				}
			}
			return c.runStress(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.vertices, "vertices", "n", opts.vertices, "vertices per graph")
	cmd.Flags().IntVarP(&opts.ops, "ops", "m", opts.ops, "operations per round")
	cmd.Flags().IntVar(&opts.rounds, "rounds", opts.rounds, "number of graphs, seeded seed, seed+1, ...")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "first seed (default [graph] seed, else the clock)")
	cmd.Flags().IntVar(&opts.maxWeight, "max-weight", opts.maxWeight, "largest vertex weight")
	cmd.Flags().StringVar(&opts.repro, "repro", "", "directory for a failing case (vertices.json, ops.txt)")

	return cmd
}

func (c *CLI) runStress(ctx context.Context, opts stressOpts) error {
	if opts.vertices <= 0 || opts.ops <= 0 || opts.rounds <= 0 || opts.maxWeight < 0 {
		return fmt.Errorf("vertices, ops and rounds must be positive and max-weight non-negative")
	}
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spin := newSpinner(ctx, "starting")
	spin.Start()
	defer spin.Stop()

	for round := range opts.rounds {
		seed := opts.seed + uint64(round)
		rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		vertices := script.RandomVertices(rng, opts.vertices, opts.maxWeight)
		ops := script.Generate(rng, vertices, opts.ops, script.DefaultMix)
		g := graph.New(vertices, graph.WithStrictEdges(), graph.WithRand(rng))

		logger.Debug("stress round", "round", round, "seed", seed, "vertices", len(vertices), "ops", len(ops))
		applied, err := stressRound(ctx, g, ops, func(done int) {
			spin.SetMessage("round %d/%d · seed %d · %d/%d ops", round+1, opts.rounds, seed, done, len(ops))
		})
		if err != nil {
			spin.Stop()
			printError("seed %d failed after %d operations", seed, applied)
			if opts.repro != "" {
				if werr := writeRepro(opts.repro, vertices, ops[:applied]); werr != nil {
					logger.Error("write repro", "err", werr)
				} else {
					printFile(opts.repro)
				}
			}
			return err
		}
	}

	spin.Stop()
	prog.done(fmt.Sprintf("Stressed %d graphs", opts.rounds))
	printSuccess("%d rounds × %d operations passed", opts.rounds, opts.ops)
	printDetail("seeds %d..%d", opts.seed, opts.seed+uint64(opts.rounds)-1)
	return nil
}

// stressRound applies ops in chunks with verification, fails fast and
// returns the number of operations applied.
func stressRound(ctx context.Context, g *graph.Graph, ops []script.Op, report func(int)) (int, error) {
	runner := script.NewRunner(nil)
	runner.Verify = true
	runner.FailFast = true

	applied := 0
	for start := 0; start < len(ops); start += stressChunk {
		end := min(start+stressChunk, len(ops))
		res, err := runner.Run(ctx, g, ops[start:end])
		if res != nil {
			applied += res.Applied
		}
		if err != nil {
			return applied, err
		}
		report(applied)
	}
	return applied, nil
}

// writeRepro stores a failing case as a vertex file and a text script.
func writeRepro(dir string, vertices []graph.Vertex, ops []script.Op) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	vf, err := os.Create(filepath.Join(dir, "vertices.json"))
	if err != nil {
		return err
	}
	if err := graphio.WriteJSON(&graphio.File{Vertices: vertices}, vf); err != nil {
		vf.Close()
		return err
	}
	if err := vf.Close(); err != nil {
		return err
	}

	of, err := os.Create(filepath.Join(dir, "ops.txt"))
	if err != nil {
		return err
	}
	if err := script.WriteText(of, ops); err != nil {
		of.Close()
		return err
	}
	return of.Close()
}
