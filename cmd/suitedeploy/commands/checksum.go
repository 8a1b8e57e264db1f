package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"suitedeploy/internal/app"
	"suitedeploy/internal/crypto"
)

func checksumCmd() *cobra.Command {
	var changedOnly bool
	cmd := &cobra.Command{
		Use:   "checksum",
		Short: "Report object files changed since the last process run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sums, err := appCtx.Checksums()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range sums {
				if changedOnly && s.State == app.ChecksumOK {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, crypto.ShortChecksum(s.Indexed), s.State)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&changedOnly, "changed", false, "only list modified or missing files")
	return cmd
}
