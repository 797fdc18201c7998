package calendar

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termcal/internal/model"
)

func mustDate(t *testing.T, y int, m time.Month, d int) model.Date {
	t.Helper()
	date, err := model.NewDate(y, m, d)
	require.NoError(t, err)
	return date
}

func placeholders(c Column) int {
	n := 0
	for _, e := range c.Entries {
		if e.IsAbsent() {
			n++
		}
	}
	return n
}

func TestBuildGridCoversEveryDay(t *testing.T) {
	farAway := model.Date{Year: 1, Month: time.January, Day: 1}
	for _, year := range []int{1900, 2000, 2023, 2024} {
		for m := time.January; m <= time.December; m++ {
			for _, sunday := range []bool{false, true} {
				g, err := BuildGrid(year, m, Options{SundayFirst: sunday}, farAway, nil)
				require.NoError(t, err)

				days := model.DaysIn(year, m)
				cells := g.Cells()
				require.Len(t, cells, days, "%d-%02d", year, m)

				nums := make([]int, 0, len(cells))
				for _, c := range cells {
					nums = append(nums, c.Day)
				}
				sort.Ints(nums)
				for i, n := range nums {
					assert.Equal(t, i+1, n)
				}

				// Ascending within each column.
				for _, col := range g.Columns {
					last := 0
					for _, e := range col.Entries {
						if c, ok := e.Get(); ok {
							assert.Greater(t, c.Day, last)
							last = c.Day
						}
					}
				}
			}
		}
	}
}

func TestBuildGridPlaceholders(t *testing.T) {
	// May 2023 starts on a Monday.
	monFirst, err := BuildGrid(2023, time.May, Options{}, model.Date{}, nil)
	require.NoError(t, err)
	total := 0
	for _, c := range monFirst.Columns {
		total += placeholders(c)
	}
	assert.Equal(t, 0, total)

	sunFirst, err := BuildGrid(2023, time.May, Options{SundayFirst: true}, model.Date{}, nil)
	require.NoError(t, err)
	assert.Equal(t, Sunday, sunFirst.Columns[0].Weekday)
	assert.Equal(t, 1, placeholders(sunFirst.Columns[0]))
	for _, c := range sunFirst.Columns[1:] {
		assert.Equal(t, 0, placeholders(c))
	}
	first, ok := sunFirst.Columns[1].Entries[0].Get()
	require.True(t, ok)
	assert.Equal(t, 1, first.Day)
}

func TestBuildGridPlaceholdersMatchOffset(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		for _, sunday := range []bool{false, true} {
			g, err := BuildGrid(2025, m, Options{SundayFirst: sunday}, model.Date{}, nil)
			require.NoError(t, err)

			day1 := mustDate(t, 2025, m, 1)
			offset := OffsetIndex(Weekday(day1.Weekday()), g.Order)

			total := 0
			for i, c := range g.Columns {
				p := placeholders(c)
				if i < offset {
					assert.Equal(t, 1, p)
					assert.True(t, c.Entries[0].IsAbsent())
				} else {
					assert.Equal(t, 0, p)
				}
				total += p
			}
			assert.Equal(t, offset, total)
		}
	}
}

func TestBuildGridSameCellsAcrossOrders(t *testing.T) {
	today := mustDate(t, 2023, time.October, 12)
	lookup := LookupFunc(func(d model.Date) []string {
		if d.Day%5 == 0 {
			return []string{"x"}
		}
		return nil
	})

	mon, err := BuildGrid(2023, time.October, Options{}, today, lookup)
	require.NoError(t, err)
	sun, err := BuildGrid(2023, time.October, Options{SundayFirst: true}, today, lookup)
	require.NoError(t, err)

	byDay := func(cells []Cell) map[int]Cell {
		out := make(map[int]Cell, len(cells))
		for _, c := range cells {
			out[c.Day] = c
		}
		return out
	}
	assert.Equal(t, byDay(mon.Cells()), byDay(sun.Cells()))
}

func TestBuildGridLeapFebruary(t *testing.T) {
	g, err := BuildGrid(2024, time.February, Options{}, model.Date{}, nil)
	require.NoError(t, err)

	found := 0
	for _, c := range g.Cells() {
		if c.Day == 29 {
			found++
		}
	}
	assert.Equal(t, 1, found)
	assert.Len(t, g.Cells(), 29)
}

func TestBuildGridEvents(t *testing.T) {
	standup := mustDate(t, 2023, time.May, 15)
	lookup := LookupFunc(func(d model.Date) []string {
		if d == standup {
			return []string{"Standup"}
		}
		return nil
	})

	g, err := BuildGrid(2023, time.May, Options{}, model.Date{}, lookup)
	require.NoError(t, err)
	for _, c := range g.Cells() {
		if c.Day == 15 {
			assert.Equal(t, []string{"Standup"}, c.Events)
		} else {
			assert.Empty(t, c.Events, "day %d", c.Day)
		}
	}
}

func TestBuildGridEventOrderPreserved(t *testing.T) {
	lookup := LookupFunc(func(d model.Date) []string {
		if d.Day == 3 {
			return []string{"b", "a", "c"}
		}
		return nil
	})
	g, err := BuildGrid(2023, time.May, Options{}, model.Date{}, lookup)
	require.NoError(t, err)
	for _, c := range g.Cells() {
		if c.Day == 3 {
			assert.Equal(t, []string{"b", "a", "c"}, c.Events)
		}
	}
}

func TestBuildGridToday(t *testing.T) {
	today := mustDate(t, 2023, time.May, 15)
	g, err := BuildGrid(2023, time.May, Options{}, today, nil)
	require.NoError(t, err)

	var todays []int
	for _, c := range g.Cells() {
		if c.Today {
			todays = append(todays, c.Day)
		}
	}
	assert.Equal(t, []int{15}, todays)

	other, err := BuildGrid(2023, time.June, Options{}, today, nil)
	require.NoError(t, err)
	for _, c := range other.Cells() {
		assert.False(t, c.Today)
	}
}

func TestBuildGridLabels(t *testing.T) {
	g, err := BuildGrid(2023, time.May, Options{SundayFirst: true, ShortLabels: true}, model.Date{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, g.Labels())

	g, err = BuildGrid(2023, time.May, Options{}, model.Date{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Monday", g.Labels()[0])

	col, ok := g.Column("Wednesday")
	require.True(t, ok)
	assert.Equal(t, Wednesday, col.Weekday)
	c, ok := col.Entries[0].Get()
	require.True(t, ok)
	assert.Equal(t, 3, c.Day)
}

func TestBuildGridIdempotent(t *testing.T) {
	today := mustDate(t, 2023, time.May, 15)
	opts := Options{SundayFirst: true, ShortLabels: true}
	a, err := BuildGrid(2023, time.May, opts, today, nil)
	require.NoError(t, err)
	b, err := BuildGrid(2023, time.May, opts, today, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildGridInvalidMonth(t *testing.T) {
	_, err := BuildGrid(2023, 13, Options{}, model.Date{}, nil)
	var ide *model.InvalidDateError
	require.True(t, errors.As(err, &ide))
	assert.Equal(t, 13, ide.Month)
}

func TestBuildGridRows(t *testing.T) {
	// September 2023 starts on a Friday: 4 placeholders (Mon-Thu) and
	// Saturday/Sunday carry 5 entries, Friday 5, Mon-Thu 1+4.
	g, err := BuildGrid(2023, time.September, Options{}, model.Date{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, g.Rows())
	for i := 0; i < 4; i++ {
		assert.True(t, g.Columns[i].Entries[0].IsAbsent())
	}
}
