package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"termcal/internal/calendar"
	appLog "termcal/internal/log"
	"termcal/internal/model"
	"termcal/internal/schedule"
)

func newViewCommand(a *app) *cobra.Command {
	var watch bool
	var every string

	cmd := &cobra.Command{
		Use:   "view [year] [month] [day]",
		Short: "View the calendar",
		Args:  dateArgsValidator(),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dateArgs(args, true)
			if err != nil {
				return err
			}
			if err := a.renderMonth(d.Year, d.Month); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			spec := a.cfg.RefreshCron
			if every != "" {
				spec = every
			}
			// Follow the current month when none was given.
			follow := len(args) == 0
			return schedule.Run(cmd.Context(), spec, func(context.Context) {
				y, m := d.Year, d.Month
				if follow {
					now := a.today()
					y, m = now.Year, now.Month
				}
				if err := a.renderMonth(y, m); err != nil {
					appLog.Error("re-render failed", err, "year", y, "month", int(m))
				}
			})
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-render on the configured refresh schedule until interrupted")
	cmd.Flags().StringVar(&every, "schedule", "", "Cron schedule overriding the refresh setting (used with --watch)")
	return cmd
}

// renderMonth batch-loads the month's events and prints its grid.
func (a *app) renderMonth(year int, month time.Month) error {
	idx, err := a.store.MonthIndex(year, month)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}
	g, err := calendar.BuildGrid(year, month, a.cfg.Options(), a.today(), idx)
	if err != nil {
		return err
	}
	return a.printer.Month(g, a.cfg.TableStyle())
}

// isToday reports whether d is the current date.
func (a *app) isToday(d model.Date) bool {
	return d == a.today()
}
