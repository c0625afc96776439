package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/dkalonji/tasbih/internal/cli/formatter"
	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the recitation schedule",
	}

	cmd.AddCommand(
		newConfigShowCmd(app),
		newConfigSetCmd(app),
		newConfigEditCmd(app),
	)
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			schedule, err := app.Settings.Get(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Schedule"))
			fmt.Fprintf(out, "Times:        %s\n", strings.Join(domain.FormatTimes(domain.SortTimes(schedule.Times)), ", "))
			fmt.Fprintf(out, "Daily count:  %d\n", schedule.DailyCount)
			fmt.Fprintf(out, "Sound:        %s (volume %.1f)\n", onOff(schedule.SoundEnabled), schedule.Volume)
			return nil
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	var timesFlag []string
	var countFlag int
	var soundFlag string
	var volumeFlag float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the schedule from flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			schedule, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("times") {
				parsed, err := domain.ParseTimes(timesFlag)
				if err != nil {
					return err
				}
				schedule.Times = parsed
			}
			if cmd.Flags().Changed("count") {
				schedule.DailyCount = countFlag
			}
			if cmd.Flags().Changed("sound") {
				enabled, err := strconv.ParseBool(soundFlag)
				if err != nil {
					return fmt.Errorf("--sound must be true or false")
				}
				schedule.SoundEnabled = enabled
			}
			if cmd.Flags().Changed("volume") {
				schedule.Volume = volumeFlag
			}

			if err := app.Settings.Save(ctx, schedule); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Schedule saved."))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&timesFlag, "times", nil, "Recitation times, e.g. --times 06:00,18:00")
	cmd.Flags().IntVar(&countFlag, "count", 0, "How many recitations count per day")
	cmd.Flags().StringVar(&soundFlag, "sound", "", "Enable feedback sound (true/false)")
	cmd.Flags().Float64Var(&volumeFlag, "volume", 0, "Feedback volume between 0 and 1")
	return cmd
}

func newConfigEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the schedule interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			schedule, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}

			timesValue := strings.Join(domain.FormatTimes(domain.SortTimes(schedule.Times)), ",")
			countValue := strconv.Itoa(schedule.DailyCount)
			soundValue := schedule.SoundEnabled
			volumeValue := fmt.Sprintf("%.1f", schedule.Volume)

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Recitation times (comma-separated HH:MM)").
						Placeholder("06:00,18:00").
						Value(&timesValue).
						Validate(validateTimesList),
					huh.NewInput().
						Title("Daily count").
						Placeholder("1").
						Value(&countValue).
						Validate(validatePositiveInt),
					huh.NewConfirm().
						Title("Feedback sound").
						Value(&soundValue),
					huh.NewInput().
						Title("Volume (0.0 - 1.0)").
						Value(&volumeValue).
						Validate(validateVolume),
				),
			).WithShowHelp(false)

			if err := form.Run(); err != nil {
				return err
			}

			schedule.Times, err = domain.ParseTimes(splitTimes(timesValue))
			if err != nil {
				return err
			}
			schedule.DailyCount, _ = strconv.Atoi(countValue)
			schedule.SoundEnabled = soundValue
			schedule.Volume, _ = strconv.ParseFloat(volumeValue, 64)

			if err := app.Settings.Save(ctx, schedule); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Schedule saved."))
			return nil
		},
	}
}

func splitTimes(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func validateTimesList(s string) error {
	parts := splitTimes(s)
	if len(parts) == 0 {
		return fmt.Errorf("at least one time is required")
	}
	_, err := domain.ParseTimes(parts)
	return err
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateVolume(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || v > 1 {
		return fmt.Errorf("must be between 0.0 and 1.0")
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
