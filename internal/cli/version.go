package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/yardstick/pkg/yardstick"
)

const modulePath = "github.com/mesh-intelligence/yardstick"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the yardstick version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "yardstick v%s\nmodule: %s\n", yardstick.Version, modulePath)
			return nil
		},
	}
}
