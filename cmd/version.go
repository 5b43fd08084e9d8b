package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"drivesync/internal"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of drivesync",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			v := cmd.Root().Version
			if v == "" {
				v = internal.GetVersionString()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "drivesync version %s\n", v)
		},
	}
}
