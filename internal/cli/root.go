// Package cli wires the termcal subcommands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"termcal/internal/config"
	"termcal/internal/events"
	appLog "termcal/internal/log"
	"termcal/internal/model"
	"termcal/internal/prompt"
	"termcal/internal/render"
)

// ErrInvalidDate is reported for positional dates that do not parse.
var ErrInvalidDate = errors.New("input a valid date")

// IO bundles the streams a command talks to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	// Color forces colored output on or off; nil detects it from Out.
	Color *bool
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	io      IO
	cfgPath string
	debug   bool
	today   func() model.Date

	cfg     *config.Config
	store   *events.Store
	printer *render.Printer
	prompt  *prompt.Prompter
}

// NewRootCommand builds the termcal command tree.
func NewRootCommand(stdio IO) *cobra.Command {
	return newRootCommand(stdio, model.Today)
}

func newRootCommand(stdio IO, today func() model.Date) *cobra.Command {
	a := &app{io: stdio, today: today}

	root := &cobra.Command{
		Use:           "termcal",
		Short:         "View and create events on a calendar.",
		Long:          `A personal command-line calendar: month view, dated events and display preferences.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetIn(stdio.In)
	root.SetOut(stdio.Out)
	root.SetErr(stdio.Err)

	root.PersistentFlags().StringVar(&a.cfgPath, "config", config.DefaultPath(), "Path to settings file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newViewCommand(a),
		newEventsCommand(a),
		newCreateCommand(a),
		newDeleteCommand(a),
		newEditCommand(a),
		newPrefsCommand(a),
		newSetPrefCommand(a),
		newExportCommand(a),
		newImportCommand(a),
		newServeCommand(a),
	)
	return root
}

// setup loads settings, makes sure the events file exists and builds the
// printer and prompter.
func (a *app) setup() error {
	cfg, recreated, err := config.Load(a.cfgPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	a.cfg = cfg

	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))
	if a.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}
	if recreated {
		fmt.Fprintf(a.io.Err, "Recreated %s.\n", a.cfgPath)
	}

	a.store = events.NewStore(cfg.EventsPath(a.cfgPath))
	created, err := a.store.Ensure()
	if err != nil {
		return fmt.Errorf("prepare events file: %w", err)
	}
	if created {
		fmt.Fprintf(a.io.Err, "Recreated %s.\n", a.store.Path())
	}

	if a.io.Color != nil {
		a.printer = render.NewPrinterColor(a.io.Out, *a.io.Color)
	} else {
		a.printer = render.NewPrinter(a.io.Out)
	}
	a.prompt = prompt.New(a.io.In, a.io.Out)

	appLog.Debug("settings loaded", "config", a.cfgPath, "events", a.store.Path())
	return nil
}

// dateArgs reads the optional [year] [month] [day] positionals. No
// arguments means today. With monthOnly, only year and month are required
// and a given day is ignored. Years the events file cannot hold are
// rejected.
func (a *app) dateArgs(args []string, monthOnly bool) (model.Date, error) {
	if len(args) == 0 {
		d := a.today()
		if monthOnly {
			d.Day = 1
		}
		return d, nil
	}

	need := 3
	if monthOnly {
		need = 2
	}
	if len(args) < need {
		return model.Date{}, ErrInvalidDate
	}

	nums := make([]int, 3)
	nums[2] = 1
	for i := 0; i < need; i++ {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return model.Date{}, ErrInvalidDate
		}
		nums[i] = n
	}

	d, err := model.NewDate(nums[0], time.Month(nums[1]), nums[2])
	if err != nil || !d.Storable() {
		return model.Date{}, ErrInvalidDate
	}
	return d, nil
}

func dateArgsValidator() cobra.PositionalArgs {
	return cobra.MaximumNArgs(3)
}

// ReportError writes a failed command's error to w. Invalid positional
// dates get the short user-facing message only.
func ReportError(w io.Writer, err error) {
	appLog.Debug("command failed", "err", err)
	if errors.Is(err, ErrInvalidDate) {
		fmt.Fprintln(w, "Input valid date.")
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
