package commands

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

func processCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "process",
		Short: "Convert the SDF Objects directory into the local cache and index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := appCtx.Mirror.ProcessLocalObjects(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d objects indexed, %d unexpected files, %d failed.\n",
				summary.Objects, len(summary.Unexpected), len(summary.Failed))
			for _, path := range slices.Sorted(maps.Keys(summary.Failed)) {
				fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", path, summary.Failed[path])
			}
			return nil
		},
	}
}
