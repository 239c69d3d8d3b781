package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/photowall/pkg/wall"
)

type layout struct {
	Slots      []wall.Slot `json:"slots"`
	Placements []placement `json:"placements"`
	Skipped    int         `json:"skipped"`
}

type placement struct {
	Index    int     `json:"index"`
	Slot     int     `json:"slot"`
	Rotation float64 `json:"rotation"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Style    string  `json:"style,omitempty"`
}

// WriteJSON encodes l as indented JSON and writes it to w.
func WriteJSON(l wall.Layout, w io.Writer) error {
	out := layout{
		Slots:      l.Slots,
		Placements: make([]placement, len(l.Placements)),
		Skipped:    l.Skipped,
	}
	if out.Slots == nil {
		out.Slots = []wall.Slot{}
	}
	for i, p := range l.Placements {
		out.Placements[i] = placement{
			Index:    p.Index,
			Slot:     p.Slot,
			Rotation: p.Rotation,
			X:        p.X,
			Y:        p.Y,
			Style:    p.Style(),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes l to a JSON file at path.
func ExportJSON(l wall.Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(l, f)
}
