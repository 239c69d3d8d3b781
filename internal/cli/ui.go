package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/photowall/pkg/wall"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary values
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// =============================================================================
// Tables
// =============================================================================

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col == 0 {
				return styleCell.Foreground(colorGray)
			}
			return styleCell.Foreground(colorCyan)
		})
}

// slotTable renders slots with their indices.
func slotTable(slots []wall.Slot) string {
	t := newTable("#", "x", "y")
	for i, s := range slots {
		t.Row(strconv.Itoa(i), formatPx(s.X), formatPx(s.Y))
	}
	return t.Render()
}

// placementTable renders a layout one row per placed target.
func placementTable(l wall.Layout) string {
	t := newTable("image", "slot", "anchor", "rotate", "left", "top")
	for _, p := range l.Placements {
		anchor := "?"
		if s, ok := l.SlotOf(p); ok {
			anchor = fmt.Sprintf("%s, %s", formatPx(s.X), formatPx(s.Y))
		}
		t.Row(
			strconv.Itoa(p.Index),
			strconv.Itoa(p.Slot),
			anchor,
			fmt.Sprintf("%.2f°", p.Rotation),
			formatPx(p.X),
			formatPx(p.Y),
		)
	}
	return t.Render()
}

func formatPx(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
