package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkalonji/tasbih/internal/scheduler"
	"github.com/spf13/cobra"
)

// dueFirer is implemented by gateways that hold scheduled notifications in
// memory and need the watch loop to deliver them when due.
type dueFirer interface {
	FireDue(now time.Time)
}

func newWatchCmd(app *App) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the evaluation loop in the foreground",
		Long:  "watch re-evaluates the schedule on a fixed interval, delivers activation and missed-recitation reminders, and sweeps for still-missed recitations every five minutes. Stop with Ctrl-C.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := &scheduler.Runner{
				Evaluate: func(ctx context.Context) error {
					_, err := app.Recitations.Evaluate(ctx)
					return err
				},
				Sweep:        app.Recitations.Sweep,
				TickInterval: interval,
				Logger:       app.Logger,
			}
			if firer, ok := app.Gateway.(dueFirer); ok {
				runner.OnTick = firer.FireDue
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Watching schedule. Press Ctrl-C to stop.")
			err := runner.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", scheduler.DefaultTickInterval, "Evaluation interval")
	return cmd
}
