package calendar

import (
	"fmt"
	"time"

	"github.com/samber/mo"

	"termcal/internal/model"
)

// EventLookup returns the event names on a date, in store order.
type EventLookup interface {
	NamesOn(d model.Date) []string
}

// LookupFunc adapts a plain function to EventLookup.
type LookupFunc func(d model.Date) []string

func (f LookupFunc) NamesOn(d model.Date) []string {
	return f(d)
}

// NoEvents is a lookup that never returns anything.
var NoEvents = LookupFunc(func(model.Date) []string { return nil })

// Options selects column ordering and labeling for BuildGrid.
type Options struct {
	// SundayFirst puts Sunday in the first column instead of Monday.
	SundayFirst bool
	// ShortLabels uses three-letter weekday labels.
	ShortLabels bool
}

// Cell is one calendar day.
type Cell struct {
	Day    int
	Today  bool
	Events []string
}

// Column holds the entries of one weekday. A None entry is a placeholder
// that aligns the first partial week.
type Column struct {
	Weekday Weekday
	Label   string
	Entries []mo.Option[Cell]
}

// Grid is a month laid out as weekday columns, in display order.
type Grid struct {
	Year    int
	Month   time.Month
	Order   WeekdayOrder
	Columns []Column
}

// Labels returns the column labels in display order.
func (g Grid) Labels() []string {
	out := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		out[i] = c.Label
	}
	return out
}

// Column returns the column with the given label.
func (g Grid) Column(label string) (Column, bool) {
	for _, c := range g.Columns {
		if c.Label == label {
			return c, true
		}
	}
	return Column{}, false
}

// Rows returns the height of the tallest column.
func (g Grid) Rows() int {
	n := 0
	for _, c := range g.Columns {
		if len(c.Entries) > n {
			n = len(c.Entries)
		}
	}
	return n
}

// Cells returns every non-placeholder cell, column by column.
func (g Grid) Cells() []Cell {
	var out []Cell
	for _, c := range g.Columns {
		for _, e := range c.Entries {
			if cell, ok := e.Get(); ok {
				out = append(out, cell)
			}
		}
	}
	return out
}

// BuildGrid lays out the given month as weekday columns.
//
// Each day lands in its weekday's column in ascending order. Every column
// positioned before day 1's weekday gets one leading placeholder, so the
// first row lines up when the columns are rendered side by side.
//
// An invalid month surfaces as a *model.InvalidDateError.
func BuildGrid(year int, month time.Month, opts Options, today model.Date, lookup EventLookup) (Grid, error) {
	if lookup == nil {
		lookup = NoEvents
	}

	var byWeekday [7][]mo.Option[Cell]

	first, err := model.NewDate(year, month, 1)
	if err != nil {
		return Grid{}, fmt.Errorf("build grid: %w", err)
	}

	days := model.DaysIn(year, month)
	for d := 1; d <= days; d++ {
		date, err := model.NewDate(year, month, d)
		if err != nil {
			return Grid{}, fmt.Errorf("build grid: %w", err)
		}
		cell := Cell{
			Day:    d,
			Today:  date == today,
			Events: lookup.NamesOn(date),
		}
		wd := date.Weekday()
		byWeekday[wd] = append(byWeekday[wd], mo.Some(cell))
	}

	order := OrderFor(opts.SundayFirst)
	offset := OffsetIndex(Weekday(first.Weekday()), order)

	cols := make([]Column, 0, len(order))
	for i, wd := range order {
		entries := byWeekday[wd]
		if i < offset {
			entries = append([]mo.Option[Cell]{mo.None[Cell]()}, entries...)
		}
		cols = append(cols, Column{
			Weekday: wd,
			Label:   wd.Label(opts.ShortLabels),
			Entries: entries,
		})
	}

	return Grid{
		Year:    year,
		Month:   month,
		Order:   order,
		Columns: cols,
	}, nil
}
