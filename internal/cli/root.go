package cli

import (
	"log/slog"
	"strings"

	"github.com/dkalonji/tasbih/internal/notify"
	"github.com/dkalonji/tasbih/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to the service interfaces used by CLI commands.
type App struct {
	Recitations service.RecitationService
	Settings    service.SettingsService
	History     service.HistoryService
	Intro       service.IntroService

	// Gateway is the concrete notification sink; the watch command uses
	// it to deliver due reminders locally.
	Gateway notify.Gateway

	Logger *slog.Logger

	// IsInteractive reports whether stdin is attached to a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "tasbih" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tasbih",
		Short:         "Daily recitation companion",
		Long:          "tasbih schedules your daily recitations, counts taps toward each one, and reminds you when a recitation is missed.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Accept underscores in flag names, e.g. --daily_count for --daily-count.
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newStatusCmd(app),
		newTapCmd(app),
		newCountCmd(app),
		newConfigCmd(app),
		newHistoryCmd(app),
		newWatchCmd(app),
		newIntroCmd(app),
	)

	return root
}
