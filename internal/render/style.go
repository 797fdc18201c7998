package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableStyle names a table layout. The names follow the settings file
// vocabulary (table_format).
type TableStyle string

const (
	StyleRoundedGrid    TableStyle = "rounded_grid"
	StyleRoundedOutline TableStyle = "rounded_outline"
	StyleGrid           TableStyle = "grid"
	StyleSimple         TableStyle = "simple"
	StylePlain          TableStyle = "plain"
	StyleDoubleGrid     TableStyle = "double_grid"
	StyleHeavyGrid      TableStyle = "heavy_grid"

	DefaultTableStyle = StyleRoundedGrid
)

type styleSpec struct {
	border    lipgloss.Border
	rowLines  bool
	outline   bool
	colLines  bool
	headerSep bool
}

var styles = map[TableStyle]styleSpec{
	StyleRoundedGrid:    {border: lipgloss.RoundedBorder(), rowLines: true, outline: true, colLines: true, headerSep: true},
	StyleRoundedOutline: {border: lipgloss.RoundedBorder(), outline: true, colLines: true, headerSep: true},
	StyleGrid:           {border: lipgloss.ASCIIBorder(), rowLines: true, outline: true, colLines: true, headerSep: true},
	StyleSimple:         {border: lipgloss.NormalBorder(), headerSep: true},
	StylePlain:          {border: lipgloss.HiddenBorder()},
	StyleDoubleGrid:     {border: lipgloss.DoubleBorder(), rowLines: true, outline: true, colLines: true, headerSep: true},
	StyleHeavyGrid:      {border: lipgloss.ThickBorder(), rowLines: true, outline: true, colLines: true, headerSep: true},
}

// ParseTableStyle maps a stored preference to a style, defaulting to
// DefaultTableStyle for anything unrecognised.
func ParseTableStyle(s string) TableStyle {
	ts := TableStyle(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := styles[ts]; ok {
		return ts
	}
	return DefaultTableStyle
}

// ValidateTableStyle rejects unknown style names.
func ValidateTableStyle(s string) error {
	ts := TableStyle(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := styles[ts]; !ok {
		return fmt.Errorf("unknown table format %q (one of %s)", s, strings.Join(TableStyleNames(), ", "))
	}
	return nil
}

// TableStyleNames lists the accepted style names, sorted.
func TableStyleNames() []string {
	out := make([]string, 0, len(styles))
	for k := range styles {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

// apply configures t's borders for the style.
func (s TableStyle) apply(t *table.Table) *table.Table {
	spec, ok := styles[s]
	if !ok {
		spec = styles[DefaultTableStyle]
	}
	return t.
		Border(spec.border).
		BorderTop(spec.outline).
		BorderBottom(spec.outline).
		BorderLeft(spec.outline).
		BorderRight(spec.outline).
		BorderColumn(spec.colLines).
		BorderHeader(spec.headerSep).
		BorderRow(spec.rowLines)
}
