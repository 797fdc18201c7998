package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"termcal/internal/config"
)

func newPrefsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prefs",
		Short: "View all preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printPrefs(a.cfg.Prefs())
		},
	}
}

func newSetPrefCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-pref [name] [value]",
		Short: "Change a preference",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name, value string
			if len(args) > 0 {
				name = args[0]
			}
			if len(args) > 1 {
				value = args[1]
			}

			if name == "" {
				// Only preferences Set accepts are offered.
				known := a.cfg.KnownValues()
				if err := a.printPrefs(known); err != nil {
					return err
				}
				i, err := a.prompt.Index(len(known))
				if err != nil {
					return err
				}
				name = known[i].Name
			} else if _, ok := config.LookupPref(name); !ok {
				return fmt.Errorf("%w: %q", config.ErrUnknownPref, name)
			}

			value, err := a.prompt.Text("new value", value)
			if err != nil {
				return err
			}

			if err := a.cfg.Set(name, value); err != nil {
				return err
			}
			if err := a.cfg.Save(a.cfgPath); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			a.printer.Println(fmt.Sprintf("Successfully changed %s to %s!", name, value))
			return nil
		},
	}
}

func (a *app) printPrefs(prefs []config.PrefValue) error {
	pairs := make([][2]string, len(prefs))
	for i, p := range prefs {
		pairs[i] = [2]string{p.Name, p.Value}
	}
	return a.printer.Prefs(pairs, a.cfg.TableStyle())
}
