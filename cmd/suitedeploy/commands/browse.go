package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"suitedeploy/internal/ui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Interactive two-pane browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Route notifications, status and refreshes into the program.
			host := &ui.ProgramHost{}
			prev := appCtx.Hub.SetNotifier(host)
			defer appCtx.Hub.SetNotifier(prev)
			appCtx.Hub.AddStatusBar(host)
			defer appCtx.LocalTree.Subscribe(host.Refresh)()
			defer appCtx.ServerTree.Subscribe(host.Refresh)()

			m := ui.NewModel(ctx, appCtx.Mirror, appCtx.LocalTree, appCtx.ServerTree, ui.DetectStyles()).
				WithBusy(appCtx.Runner.Busy)
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			host.Attach(p.Send)
			defer host.Attach(nil)

			_, err := p.Run()
			return err
		},
	}
}
