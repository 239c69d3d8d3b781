package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/photowall/pkg/errors"
	"github.com/matzehuels/photowall/pkg/wall"
)

// ReadJSON decodes a layout written by [WriteJSON].
func ReadJSON(r io.Reader) (wall.Layout, error) {
	var data layout
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return wall.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}

	l := wall.Layout{
		Slots:      data.Slots,
		Placements: make([]wall.Placement, len(data.Placements)),
		Skipped:    data.Skipped,
	}
	used := make(map[int]bool, len(data.Placements))
	for i, p := range data.Placements {
		if p.Index != i {
			return wall.Layout{}, errors.New(errors.ErrCodeInvalidFormat, "placement %d has index %d", i, p.Index)
		}
		if p.Slot < 0 || p.Slot >= len(data.Slots) {
			return wall.Layout{}, errors.New(errors.ErrCodeInvalidFormat, "placement %d: slot %d out of range", i, p.Slot)
		}
		if used[p.Slot] {
			return wall.Layout{}, errors.New(errors.ErrCodeInvalidFormat, "placement %d: slot %d already used", i, p.Slot)
		}
		used[p.Slot] = true
		l.Placements[i] = wall.Placement{
			Index:    p.Index,
			Slot:     p.Slot,
			Rotation: p.Rotation,
			X:        p.X,
			Y:        p.Y,
		}
	}
	if data.Skipped < 0 {
		return wall.Layout{}, errors.New(errors.ErrCodeInvalidFormat, "negative skipped count %d", data.Skipped)
	}
	return l, nil
}

// ImportJSON reads the JSON layout file at path.
func ImportJSON(path string) (wall.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return wall.Layout{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	l, err := ReadJSON(f)
	if err != nil {
		return wall.Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}
