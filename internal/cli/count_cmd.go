package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newCountCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Open the interactive tap counter",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("count requires an interactive terminal; use 'tasbih tap' instead")
			}
			program := tea.NewProgram(newCountModel(app), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}
}
