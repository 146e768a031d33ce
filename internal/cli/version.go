package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/benoitkugler/paginate/version"
)

func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.VersionString)
		},
	}
}
