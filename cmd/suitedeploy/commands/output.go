package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func outputCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "output",
		Short: "Print the output log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := appCtx.OutputLog()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), log)
			return nil
		},
	}
}
