package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heaviest/pkg/core/graph"
	"github.com/matzehuels/heaviest/pkg/graphio"
	"github.com/matzehuels/heaviest/pkg/script"
)

// runOpts holds the flags of the run command.
type runOpts struct {
	graph        graphFlags
	scriptFormat string
	verify       bool
	failFast     bool
	quiet        bool
	table        bool
	snapshot     string
}

// runCommand creates the run command, which applies an operation script to
// the graph built from a vertex file.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run <vertices> <script>",
		Short: "Apply an operation script to a graph",
		Long: `Build a graph from a vertex file and apply the operations of a script in order.

Each script line is one call with an optional expected result:

  add 7 5      => true
  weight 7     => 3
  delete 9     => true
  max          => 7
  nodes        => 2

The command fails when an expectation does not hold.`,
		Example: `  heaviest run vertices.toml ops.txt
  heaviest run vertices.json ops.json --verify --table
  heaviest run vertices.txt ops.txt --snapshot final.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScript(cmd, args[0], args[1], opts)
		},
	}

	opts.graph.register(cmd)
	cmd.Flags().StringVar(&opts.scriptFormat, "script-format", "", "script format: json, toml or text (default from extension)")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "verify every invariant after each operation")
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "stop at the first failed expectation")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print only failed operations")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print the final neighborhood weights as a table")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "write the final graph state as JSON to this file")

	return cmd
}

func (c *CLI) runScript(cmd *cobra.Command, verticesPath, scriptPath string, opts runOpts) error {
	g, err := c.loadGraph(verticesPath, opts.graph)
	if err != nil {
		return err
	}
	ops, err := script.Load(scriptPath, opts.scriptFormat)
	if err != nil {
		return err
	}

	runner := script.NewRunner(loggerFromContext(cmd.Context()))
	runner.Verify = opts.verify
	runner.FailFast = opts.failFast

	res, runErr := runner.Run(cmd.Context(), g, ops)
	if res != nil {
		for _, o := range res.Outcomes {
			if !opts.quiet || !o.OK {
				printOutcome(o)
			}
		}
	}

	if opts.table {
		printLine(weightsTable(graphio.TakeSnapshot(g)))
	}
	if opts.snapshot != "" {
		if err := writeSnapshotFile(opts.snapshot, g); err != nil {
			return err
		}
		printFile(opts.snapshot)
	}

	if runErr != nil {
		return runErr
	}
	printSuccess("Applied %d operations", res.Applied)
	printStats(g.Stats())
	return nil
}

func writeSnapshotFile(path string, g *graph.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := graphio.WriteSnapshot(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
