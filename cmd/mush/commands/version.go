package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/mush/cmd"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		Long:  `Print the version, commit, and build date of mush.`,
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprint(c.OutOrStdout(), cmd.BuildInfo())
		},
	}
}
