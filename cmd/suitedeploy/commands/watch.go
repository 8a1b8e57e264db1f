package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"suitedeploy/internal/watch"
)

func watchCmd() *cobra.Command {
	var skipInitial bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-process local objects whenever an object file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			process := func(ctx context.Context) {
				// Failures are already logged and notified.
				if _, err := appCtx.Mirror.ProcessLocalObjects(ctx); err != nil {
					appCtx.Log.Debug("watch: process failed", zap.Error(err))
				}
			}

			w, err := watch.New(appCtx.Paths.SDFObjects, appCtx.Config.GetDebounce(), process, appCtx.Log)
			if err != nil {
				return err
			}
			defer w.Close()

			if !skipInitial {
				process(ctx)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl-C to stop)\n", appCtx.Paths.SDFObjects)
			return w.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&skipInitial, "no-initial", false, "do not process once before watching")
	return cmd
}
