package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"termcal/internal/events"
	"termcal/internal/model"
)

func newEventsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "events [year] [month] [day]",
		Short: "View events on a specific date",
		Args:  dateArgsValidator(),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dateArgs(args, false)
			if err != nil {
				return err
			}
			_, err = a.listEvents(d)
			return err
		},
	}
}

func newCreateCommand(a *app) *cobra.Command {
	var nameFlag string
	cmd := &cobra.Command{
		Use:   "create [year] [month] [day]",
		Short: "Create an event",
		Args:  dateArgsValidator(),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dateArgs(args, false)
			if err != nil {
				return err
			}
			name, err := a.prompt.Text("event name", nameFlag)
			if err != nil {
				return err
			}
			err = a.store.Append(model.Event{Date: d, Name: name})
			if errors.Is(err, events.ErrEventExists) {
				a.printer.Println("Event already exists.")
				return nil
			}
			if err != nil {
				return err
			}
			a.printer.Println(fmt.Sprintf("Successfully created event %s on %s!", name, d))
			return nil
		},
	}
	cmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Event name (prompted when omitted)")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [year] [month] [day]",
		Short: "Delete an event",
		Args:  dateArgsValidator(),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dateArgs(args, false)
			if err != nil {
				return err
			}
			id, ok, err := a.selectEvent(d)
			if err != nil || !ok {
				return err
			}
			if _, err := a.store.Delete(d, id); err != nil {
				return err
			}
			a.printer.Println(fmt.Sprintf("Successfully deleted event on %s!", d))
			return nil
		},
	}
}

func newEditCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [year] [month] [day]",
		Short: "Edit an event",
		Args:  dateArgsValidator(),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.dateArgs(args, false)
			if err != nil {
				return err
			}
			id, ok, err := a.selectEvent(d)
			if err != nil || !ok {
				return err
			}

			field, err := a.prompt.Choice("Change date or name? (d/n)", map[string]string{
				"d": events.DateKey, "date": events.DateKey,
				"n": events.NameKey, "name": events.NameKey,
			})
			if err != nil {
				return err
			}

			var change events.Change
			var shown string
			switch field {
			case events.DateKey:
				nd, err := a.prompt.Date("new date (e.g. 2000-12-24)")
				if err != nil {
					return err
				}
				change.Date = &nd
				shown = nd.String()
			case events.NameKey:
				nn, err := a.prompt.Text("new event name", "")
				if err != nil {
					return err
				}
				change.Name = &nn
				shown = nn
			}

			if _, err := a.store.Update(d, id, change); err != nil {
				return err
			}
			a.printer.Println(fmt.Sprintf("Successfully edited %s to %s!", field, shown))
			return nil
		},
	}
}

// listEvents prints the events on d and returns them.
func (a *app) listEvents(d model.Date) ([]model.Event, error) {
	evs, err := a.store.On(d)
	if err != nil {
		return nil, err
	}
	if err := a.printer.Events(d, a.isToday(d), events.Names(evs)); err != nil {
		return nil, err
	}
	return evs, nil
}

// selectEvent lists the events on d and asks for one of them. ok is false
// when there is nothing to choose from.
func (a *app) selectEvent(d model.Date) (id int, ok bool, err error) {
	evs, err := a.listEvents(d)
	if err != nil || len(evs) == 0 {
		return 0, false, err
	}
	id, err = a.prompt.Index(len(evs))
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}
