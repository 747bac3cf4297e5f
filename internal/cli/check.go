package cli

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/heaviest/pkg/graphio"
)

// checkCommand creates the check command, which loads a vertex file, verifies
// the resulting graph and prints its statistics.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		flags   graphFlags
		asJSON  bool
		weights bool
	)

	cmd := &cobra.Command{
		Use:   "check <vertices>",
		Short: "Load a vertex file and verify the graph",
		Example: `  heaviest check vertices.toml
  heaviest check vertices.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(loggerFromContext(cmd.Context()))
			g, err := c.loadGraph(args[0], flags)
			if err != nil {
				return err
			}
			if err := g.Verify(); err != nil {
				return err
			}
			prog.done("Verified " + args[0])

			st := g.Stats()
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(st)
			}

			printSuccess("%s is consistent", args[0])
			printKeyValue("nodes", strconv.Itoa(st.Nodes))
			printKeyValue("edges", strconv.Itoa(st.Edges))
			printKeyValue("buckets", strconv.Itoa(st.Buckets))
			printKeyValue("longest chain", strconv.Itoa(st.LongestChain))
			if st.Empty {
				printKeyValue("max", "none")
			} else {
				printKeyValue("max", StyleMax.Render(strconv.Itoa(st.Max.ID))+" "+StyleDim.Render("("+strconv.Itoa(st.MaxWeight)+")"))
			}
			if weights {
				printNewline()
				printLine(weightsTable(graphio.TakeSnapshot(g)))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")
	cmd.Flags().BoolVar(&weights, "weights", false, "print every vertex's neighborhood weight")

	return cmd
}
