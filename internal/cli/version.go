package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/heaviest/pkg/buildinfo"
)

// versionCommand creates the version command.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printLine(buildinfo.String())
		},
	}
}
