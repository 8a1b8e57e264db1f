package commands

import (
	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var localOnly, serverOnly bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the caches (both, --local or --server)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case localOnly:
				return appCtx.Mirror.ResetLocal()
			case serverOnly:
				return appCtx.Mirror.ResetServer()
			default:
				return appCtx.Mirror.Reset()
			}
		},
	}
	cmd.Flags().BoolVar(&localOnly, "local", false, "only clear local objects")
	cmd.Flags().BoolVar(&serverOnly, "server", false, "only clear server objects")
	cmd.MarkFlagsMutuallyExclusive("local", "server")
	return cmd
}
