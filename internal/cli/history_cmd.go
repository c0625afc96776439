package cli

import (
	"context"
	"fmt"

	"github.com/dkalonji/tasbih/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show recently completed recitations",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.History.Recent(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Recent recitations"))
			fmt.Fprint(out, formatter.FormatHistory(sessions))
			return nil
		},
	}
}
