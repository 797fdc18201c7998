package events

import "termcal/internal/model"

// Index maps a date to its event names, in store order. It satisfies
// calendar.EventLookup.
type Index map[model.Date][]string

func (idx Index) NamesOn(d model.Date) []string {
	return idx[d]
}

// Names returns the names of evs.
func Names(evs []model.Event) []string {
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.Name
	}
	return out
}
