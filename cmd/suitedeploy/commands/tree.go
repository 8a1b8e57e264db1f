package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"suitedeploy/internal/tree"
)

func treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "tree [local|server]",
		Short:     "Print the local or server tree",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"local", "server"},
		RunE: func(cmd *cobra.Command, args []string) error {
			side := "local"
			if len(args) == 1 {
				side = args[0]
			}
			provider, title, err := appCtx.Tree(side)
			if err != nil {
				return err
			}
			out, err := tree.Render(title, provider, tree.DefaultStyles())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
