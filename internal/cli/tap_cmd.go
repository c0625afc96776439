package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dkalonji/tasbih/internal/cli/formatter"
	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/dkalonji/tasbih/internal/service"
	"github.com/spf13/cobra"
)

func newTapCmd(app *App) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "tap",
		Short: "Count taps toward the current recitation",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ctx := context.Background()

			if n < 1 {
				n = 1
			}
			for i := 0; i < n; i++ {
				result, err := app.Recitations.Tap(ctx)
				if errors.Is(err, domain.ErrNoActiveSlot) {
					report, evalErr := app.Recitations.Evaluate(ctx)
					if evalErr == nil && report.Snapshot.Next != nil {
						fmt.Fprintf(out, "%s\n", formatter.Dim(
							fmt.Sprintf("No recitation pending. Next one is at %s.", report.Snapshot.Next)))
						return nil
					}
					if evalErr == nil && report.Snapshot.AllDone() {
						fmt.Fprintf(out, "%s\n", formatter.StyleGreen.Render(
							"All recitations completed for today."))
						return nil
					}
					fmt.Fprintf(out, "%s\n", formatter.Dim("No recitation pending."))
					return nil
				}
				if err != nil {
					return err
				}
				if result.Completed {
					printCompletion(out, result)
					return nil
				}
				if i == n-1 {
					fmt.Fprintf(out, "%s %s\n",
						formatter.Bold(fmt.Sprintf("%d", result.Count)),
						formatter.Dim(fmt.Sprintf("(%d remaining for %s)", result.Remaining, result.Slot)))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 1, "Number of taps to record")
	return cmd
}

func printCompletion(out io.Writer, result service.TapResult) {
	if result.FinalSlot {
		fmt.Fprintf(out, "%s\n", formatter.StyleGreen.Render(
			"Recitation complete. Congratulations! You have finished all your recitations for today."))
		return
	}
	next := "later"
	if result.Next != nil {
		next = result.Next.String()
	}
	fmt.Fprintf(out, "%s\n", formatter.StyleGreen.Render(
		fmt.Sprintf("Recitation complete. Well done! Your next recitation is at %s.", next)))
}
