package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"termcal/internal/events"
	"termcal/internal/ics"
	appLog "termcal/internal/log"
)

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.ics>",
		Short: "Export all events as an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			evs, err := a.store.All()
			if err != nil {
				return err
			}

			if args[0] == "-" {
				if err := ics.Export(cmd.OutOrStdout(), evs, time.Now()); err != nil {
					return fmt.Errorf("export: %w", err)
				}
				return nil
			}

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := ics.Export(f, evs, time.Now()); err != nil {
				f.Close()
				return fmt.Errorf("export: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			a.printer.Println(fmt.Sprintf("Exported %d events to %s.", len(evs), args[0]))
			return nil
		},
	}
}

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.ics|url>",
		Short: "Import events from an iCalendar file or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := ics.NewFetcher(nil).Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			res, err := ics.ParseICS(body)
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			added, dup := 0, 0
			for _, ev := range res.Events {
				err := a.store.Append(ev)
				switch {
				case errors.Is(err, events.ErrEventExists):
					dup++
				case err != nil:
					return err
				default:
					added++
				}
			}
			if res.RecurringIgnored > 0 {
				appLog.Warn("recurrence rules ignored; only first occurrences imported", "count", res.RecurringIgnored)
			}
			a.printer.Println(fmt.Sprintf("Imported %d events (%d already present, %d skipped).", added, dup, res.Skipped))
			return nil
		},
	}
}
