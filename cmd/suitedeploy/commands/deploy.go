package commands

import (
	"github.com/spf13/cobra"

	"suitedeploy/internal/domain"
)

func deployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy <scriptid>",
		Short: "Deploy one object to the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.Mirror.DeployObject(cmd.Context(), domain.ScriptID(args[0]))
		},
	}
}
