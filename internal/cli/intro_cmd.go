package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dkalonji/tasbih/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newIntroCmd(app *App) *cobra.Command {
	var again bool

	cmd := &cobra.Command{
		Use:   "intro",
		Short: "Show the getting-started guide",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !again {
				show, err := app.Intro.ShouldShowIntro(context.Background())
				if err != nil {
					return err
				}
				if !show {
					fmt.Fprintln(out, formatter.Dim("You have already seen the guide. Run 'tasbih intro --again' to read it once more."))
					return nil
				}
			}
			printIntro(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&again, "again", false, "Show the guide even if already seen")
	return cmd
}

func printIntro(out io.Writer) {
	fmt.Fprintln(out, formatter.Header("Welcome to tasbih"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "tasbih helps you keep up with your daily recitations.")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s  Set your recitation times and how many count per day:\n", formatter.Bold("1."))
	fmt.Fprintln(out, formatter.Dim("      tasbih config set --times 06:00,18:00 --count 2"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s  When a recitation time arrives, open the counter and tap\n", formatter.Bold("2."))
	fmt.Fprintf(out, "      until you reach %s taps:\n", formatter.Bold("95"))
	fmt.Fprintln(out, formatter.Dim("      tasbih count"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s  Keep the reminder loop running so missed recitations\n", formatter.Bold("3."))
	fmt.Fprintln(out, "      call you back half an hour later:")
	fmt.Fprintln(out, formatter.Dim("      tasbih watch"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Check 'tasbih status' any time to see today's board, and")
	fmt.Fprintln(out, "'tasbih history' for your recent completions.")
}
