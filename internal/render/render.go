// Package render prints calendar grids, event lists and preference listings
// as terminal tables.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"termcal/internal/calendar"
	"termcal/internal/model"
)

// todayColor is the ANSI cyan used as today's background.
const todayColor = "6"

// EventBullet prefixes each event name inside a day cell.
const EventBullet = " • "

// Printer writes tables to an output stream.
type Printer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	color    bool
}

// NewPrinter returns a Printer on w. Color is enabled only when w is a
// terminal and NO_COLOR is unset.
func NewPrinter(w io.Writer) *Printer {
	return NewPrinterColor(w, isTerminal(w) && os.Getenv("NO_COLOR") == "")
}

// NewPrinterColor returns a Printer with color forced on or off.
func NewPrinterColor(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{out: w, renderer: r, color: color}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Month prints "<Month> <Year>:" followed by the grid as a table.
func (p *Printer) Month(g calendar.Grid, style TableStyle) error {
	if _, err := fmt.Fprintf(p.out, "%s %d:\n", calendar.MonthName(g.Month), g.Year); err != nil {
		return err
	}
	_, err := fmt.Fprintln(p.out, p.MonthTable(g, style))
	return err
}

// MonthTable renders the grid without the title line.
func (p *Printer) MonthTable(g calendar.Grid, style TableStyle) string {
	rows := g.Rows()
	t := style.apply(table.New()).
		Headers(g.Labels()...).
		StyleFunc(p.cellStyle)

	for r := 0; r < rows; r++ {
		row := make([]string, len(g.Columns))
		for c, col := range g.Columns {
			if r >= len(col.Entries) {
				continue
			}
			if cell, ok := col.Entries[r].Get(); ok {
				row[c] = p.CellText(cell)
			}
		}
		t.Row(row...)
	}
	return t.Render()
}

// CellText is the display text of one day: the day number, highlighted if
// it is today, followed by one bulleted line per event.
func (p *Printer) CellText(c calendar.Cell) string {
	var b strings.Builder
	day := strconv.Itoa(c.Day)
	if c.Today {
		day = p.renderer.NewStyle().Background(lipgloss.Color(todayColor)).Render(day)
	}
	b.WriteString(day)
	for _, name := range c.Events {
		b.WriteString("\n")
		b.WriteString(EventBullet)
		b.WriteString(name)
	}
	return b.String()
}

// Events prints the events on date with their selection IDs.
func (p *Printer) Events(date model.Date, isToday bool, names []string) error {
	if len(names) == 0 {
		_, err := fmt.Fprintln(p.out, "No events found on specified date.")
		return err
	}
	suffix := ""
	if isToday {
		suffix = " (today)"
	}
	if _, err := fmt.Fprintf(p.out, "Events on %s%s:\n", date, suffix); err != nil {
		return err
	}

	rows := make([][]string, len(names))
	for i, n := range names {
		rows[i] = []string{strconv.Itoa(i), n}
	}
	return p.Table([]string{"ID", "Event"}, rows, StyleRoundedGrid)
}

// Prefs prints name/value pairs with their selection IDs.
func (p *Printer) Prefs(pairs [][2]string, style TableStyle) error {
	rows := make([][]string, len(pairs))
	for i, kv := range pairs {
		rows[i] = []string{strconv.Itoa(i), kv[0], kv[1]}
	}
	return p.Table([]string{"ID", "Preference", "Value"}, rows, style)
}

// Table prints a generic table.
func (p *Printer) Table(headers []string, rows [][]string, style TableStyle) error {
	t := style.apply(table.New()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(p.cellStyle)
	_, err := fmt.Fprintln(p.out, t.Render())
	return err
}

// Println writes a plain message line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) cellStyle(row, _ int) lipgloss.Style {
	s := p.renderer.NewStyle().Padding(0, 1)
	if row == table.HeaderRow {
		return s.Bold(p.color)
	}
	return s
}
