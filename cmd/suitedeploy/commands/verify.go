package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"suitedeploy/internal/ui"
)

func verifyCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Mark local objects deployed or not deployed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := appCtx.Mirror.Verify(cmd.Context())
			if err != nil {
				return err
			}
			out, err := ui.RenderVerifyReport(report, plain, 80)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print the report as markdown")
	return cmd
}
