package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"suitedeploy/internal/app"
	"suitedeploy/internal/services/mirror"
)

var (
	workspace  string
	configFile string
	verbose    bool
	quiet      bool
	appCtx     *app.App
)

// Execute runs the CLI with os.Args.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// Post-run hooks are skipped when a command fails.
	defer closeApp()
	return execute(ctx, newRootCmd())
}

// execute runs root and prints its error unless the mirror already reported
// it through the log and the notifier.
func execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	var reported *mirror.OpError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "suitedeploy",
		Short:         "Mirror SuiteCloud SDF objects into a local index",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipWiring(cmd) {
				return nil
			}
			w, err := app.NewWire(app.Config{
				Workspace:  workspace,
				ConfigFile: configFile,
				Verbose:    verbose,
				Quiet:      quiet,
				Out:        cmd.OutOrStdout(),
				Console:    cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			appCtx = app.New(w)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeApp()
		},
	}

	root.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace root (default current directory)")
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default <workspace>/.suitedeploy.yaml)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only print errors")

	root.AddCommand(
		processCmd(),
		retrieveCmd(),
		importCmd(),
		deployCmd(),
		verifyCmd(),
		resetCmd(),
		statusCmd(),
		treeCmd(),
		showCmd(),
		outputCmd(),
		browseCmd(),
		watchCmd(),
		checksumCmd(),
		configCmd(),
	)
	return root
}

func closeApp() error {
	if appCtx == nil {
		return nil
	}
	err := appCtx.Close()
	appCtx = nil
	return err
}

// skipWiring is true for commands that must work without a valid config.
func skipWiring(cmd *cobra.Command) bool {
	return cmd.Annotations["wiring"] == "none"
}
