package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func retrieveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retrieve",
		Short: "List the objects on the account into the server index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Mirror.RetrieveServerObjects(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), appCtx.Status.Text())
			return nil
		},
	}
}
