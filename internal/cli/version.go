package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the release of the shelf tool.
const Version = "0.3.0"

const modulePath = "github.com/mesh-intelligence/shelves"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the shelf version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "shelf v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
