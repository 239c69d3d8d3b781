package wall

import (
	"strconv"
	"strings"
)

// Placement is the computed position of one target.
type Placement struct {
	Index    int     `json:"index"`    // position of the target in input order
	Slot     int     `json:"slot"`     // index into the layout's slot list
	Rotation float64 `json:"rotation"` // degrees
	X        float64 `json:"x"`        // left offset in px
	Y        float64 `json:"y"`        // top offset in px
}

// Style renders the placement as an inline CSS declaration list.
func (p Placement) Style() string {
	var b strings.Builder
	b.WriteString("transform:rotate(")
	b.WriteString(formatNumber(p.Rotation))
	b.WriteString("deg);top:")
	b.WriteString(formatNumber(p.Y))
	b.WriteString("px;left:")
	b.WriteString(formatNumber(p.X))
	b.WriteString("px;")
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Layout is the outcome of one randomizer invocation.
type Layout struct {
	Slots      []Slot      `json:"slots"`
	Placements []Placement `json:"placements"`
	Skipped    int         `json:"skipped"` // targets left untouched by overflow
}

// Empty reports whether nothing was placed.
func (l Layout) Empty() bool {
	return len(l.Placements) == 0
}

// SlotOf returns the anchor a placement was jittered from.
func (l Layout) SlotOf(p Placement) (Slot, bool) {
	if p.Slot < 0 || p.Slot >= len(l.Slots) {
		return Slot{}, false
	}
	return l.Slots[p.Slot], true
}
