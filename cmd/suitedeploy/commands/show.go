package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"suitedeploy/internal/domain"
)

func showCmd() *cobra.Command {
	var asXML bool
	cmd := &cobra.Command{
		Use:   "show <scriptid>",
		Short: "Print an object's cached JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := appCtx.ShowObject(domain.ScriptID(args[0]), asXML)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asXML, "xml", false, "print the XML source instead")
	return cmd
}
