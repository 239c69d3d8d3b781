package wall

import (
	"fmt"

	"github.com/matzehuels/photowall/pkg/errors"
)

// Slot is a top-left anchor in pixel coordinates.
type Slot struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Grid describes slots as the cross product of column and row offsets.
type Grid struct {
	Columns []float64 `toml:"columns"`
	Rows    []float64 `toml:"rows"`
}

var (
	defaultColumns = []float64{50, 380, 730, 1080, 1430, 1780, 2130}
	defaultRows    = []float64{50, 360, 700, 1040}
)

// DefaultGrid returns the 7×4 grid the default slots are built from.
func DefaultGrid() Grid {
	return Grid{
		Columns: append([]float64(nil), defaultColumns...),
		Rows:    append([]float64(nil), defaultRows...),
	}
}

// Slots expands the grid column by column: every row of the first column,
// then every row of the second, and so on.
func (g Grid) Slots() []Slot {
	slots := make([]Slot, 0, len(g.Columns)*len(g.Rows))
	for _, x := range g.Columns {
		for _, y := range g.Rows {
			slots = append(slots, Slot{X: x, Y: y})
		}
	}
	return slots
}

// DefaultSlots returns a fresh copy of the 28 predefined slots.
func DefaultSlots() []Slot {
	return DefaultGrid().Slots()
}

// ValidateSlots rejects slots with non-finite coordinates.
func ValidateSlots(slots []Slot) error {
	for i, s := range slots {
		if err := errors.ValidateCoordinate(fmt.Sprintf("slot %d x", i), s.X); err != nil {
			return err
		}
		if err := errors.ValidateCoordinate(fmt.Sprintf("slot %d y", i), s.Y); err != nil {
			return err
		}
	}
	return nil
}
