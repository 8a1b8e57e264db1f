package commands

import (
	"github.com/spf13/cobra"

	"suitedeploy/internal/domain"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <scriptid>",
		Short: "Import one object from the account, then re-process local objects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.Mirror.ImportObject(cmd.Context(), domain.ScriptID(args[0]))
		},
	}
}
