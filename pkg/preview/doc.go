// Package preview draws wall layouts without a browser.
//
// Each placement is drawn as a frame of the configured size whose top-left
// corner sits at the placement's (X, Y), rotated about its center the way a
// CSS rotate transform with the default transform-origin would.
//
// [RenderSVG] produces a standalone SVG document; [RenderPNG] rasterizes the
// same scene with fogleman/gg.
package preview

import "github.com/matzehuels/photowall/pkg/wall"

// Default frame and canvas sizes in pixels.
const (
	DefaultFrameWidth  = 300.0
	DefaultFrameHeight = 280.0
	canvasMargin       = 60.0
)

type options struct {
	frameWidth  float64
	frameHeight float64
	showSlots   bool
	labels      bool
	scale       float64
}

// Option configures rendering.
type Option func(*options)

// WithFrameSize sets the size of each drawn frame.
func WithFrameSize(w, h float64) Option {
	return func(o *options) { o.frameWidth, o.frameHeight = w, h }
}

// WithSlots draws a marker at every slot anchor.
func WithSlots() Option { return func(o *options) { o.showSlots = true } }

// WithLabels writes each placement's target index inside its frame.
func WithLabels() Option { return func(o *options) { o.labels = true } }

// WithScale scales PNG output. Values <= 0 are ignored.
func WithScale(s float64) Option {
	return func(o *options) {
		if s > 0 {
			o.scale = s
		}
	}
}

func newOptions(opts ...Option) options {
	o := options{frameWidth: DefaultFrameWidth, frameHeight: DefaultFrameHeight, scale: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// canvasSize returns a size that fits every slot and placement plus margin.
func canvasSize(l wall.Layout, o options) (width, height float64) {
	for _, s := range l.Slots {
		width = max(width, s.X+o.frameWidth)
		height = max(height, s.Y+o.frameHeight)
	}
	for _, p := range l.Placements {
		width = max(width, p.X+o.frameWidth)
		height = max(height, p.Y+o.frameHeight)
	}
	return width + canvasMargin, height + canvasMargin
}

// frameColors cycles through muted photo tones.
var frameColors = []string{"#e8d5b7", "#b5c9c3", "#d9b8b0", "#c7c2d9", "#cfd8b0", "#b7cde0"}
