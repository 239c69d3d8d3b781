package preview

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/matzehuels/photowall/pkg/errors"
	"github.com/matzehuels/photowall/pkg/wall"
)

// MaxCanvasSize bounds each side of a rasterized preview in pixels.
const MaxCanvasSize = 8192

// RenderPNG rasterizes l. It fails with INVALID_INPUT when the scaled
// canvas would exceed [MaxCanvasSize] on either side.
func RenderPNG(l wall.Layout, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	width, height := canvasSize(l, o)
	pw, ph := width*o.scale, height*o.scale
	if err := checkCanvas(pw, ph); err != nil {
		return nil, err
	}

	dc := gg.NewContext(int(pw), int(ph))
	dc.Scale(o.scale, o.scale)
	dc.SetHexColor("#faf7f2")
	dc.Clear()

	if o.showSlots {
		dc.SetHexColor("#999999")
		for _, s := range l.Slots {
			dc.DrawCircle(s.X, s.Y, 4)
			dc.Fill()
		}
	}

	for _, p := range l.Placements {
		drawFrame(dc, p, o)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawFrame(dc *gg.Context, p wall.Placement, o options) {
	cx := p.X + o.frameWidth/2
	cy := p.Y + o.frameHeight/2

	dc.Push()
	defer dc.Pop()

	dc.RotateAbout(gg.Radians(p.Rotation), cx, cy)
	dc.DrawRectangle(p.X, p.Y, o.frameWidth, o.frameHeight)
	dc.SetHexColor(frameColors[p.Index%len(frameColors)])
	dc.FillPreserve()
	dc.SetHexColor("#ffffff")
	dc.SetLineWidth(8)
	dc.Stroke()

	if o.labels {
		dc.SetHexColor("#555555")
		dc.DrawStringAnchored(strconv.Itoa(p.Index), cx, cy, 0.5, 0.5)
	}
}

func checkCanvas(w, h float64) error {
	for _, v := range []float64{w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "canvas size is not finite: %gx%g", w, h)
		}
	}
	if w < 1 || h < 1 || w > MaxCanvasSize || h > MaxCanvasSize {
		return errors.New(errors.ErrCodeInvalidInput, "canvas %.0fx%.0f px outside 1..%d per side; lower --scale or the frame size", w, h, MaxCanvasSize)
	}
	return nil
}
