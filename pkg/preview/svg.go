package preview

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/photowall/pkg/wall"
)

// RenderSVG draws l as an SVG document.
func RenderSVG(l wall.Layout, opts ...Option) []byte {
	o := newOptions(opts...)
	width, height := canvasSize(l, o)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="#faf7f2"/>`+"\n")

	if o.showSlots {
		renderSlots(&buf, l.Slots)
	}
	for _, p := range l.Placements {
		renderFrame(&buf, p, o)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSlots(buf *bytes.Buffer, slots []wall.Slot) {
	buf.WriteString(`  <g class="slots" fill="#999">` + "\n")
	for i, s := range slots {
		fmt.Fprintf(buf, `    <circle id="slot-%d" cx="%.1f" cy="%.1f" r="4"/>`+"\n", i, s.X, s.Y)
	}
	buf.WriteString("  </g>\n")
}

func renderFrame(buf *bytes.Buffer, p wall.Placement, o options) {
	cx := p.X + o.frameWidth/2
	cy := p.Y + o.frameHeight/2
	fill := frameColors[p.Index%len(frameColors)]

	fmt.Fprintf(buf, `  <g id="photo-%d" transform="rotate(%.2f %.1f %.1f)">`+"\n", p.Index, p.Rotation, cx, cy)
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#ffffff" stroke-width="8"/>`+"\n",
		p.X, p.Y, o.frameWidth, o.frameHeight, fill)
	if o.labels {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="32" fill="#555">%d</text>`+"\n",
			cx, cy, p.Index)
	}
	buf.WriteString("  </g>\n")
}
