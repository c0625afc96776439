package cli

import (
	"context"
	"fmt"

	"github.com/dkalonji/tasbih/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's recitation board",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Recitations.Evaluate(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(report))
			return nil
		},
	}
}
