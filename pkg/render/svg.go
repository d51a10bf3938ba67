package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/fonts"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout"
)

// SVG renders the layout as a standalone SVG document. Connector lines are
// drawn beneath the boxes so that they only show in the gaps.
func SVG(l *layout.Layout, opts ...Option) []byte {
	r := newRenderer(opts...)
	t := r.theme
	f := frameOf(l, t.Margin)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.w, f.h, f.w, f.h)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(l.Title))
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", t.Background)

	for _, e := range l.Edges {
		fmt.Fprintf(&buf, `  <line class="edge" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.5"/>`+"\n",
			f.x(e.X1), f.y(e.Y1), f.x(e.X2), f.y(e.Y2), t.Line)
	}

	boxes := l.Boxes()
	for _, b := range boxes {
		s := t.style(b.Kind)
		fmt.Fprintf(&buf, `  <rect id="%s" class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.0f" fill="%s" stroke="%s" stroke-width="%.1f"/>`+"\n",
			escapeXML(b.ID), b.Kind, f.x(b.X), f.y(b.Y), b.W, b.H, cornerRadius, s.fill, s.stroke, s.strokeWidth)
	}
	for _, b := range boxes {
		renderSVGText(&buf, f, b, t.style(b.Kind))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSVGText(buf *bytes.Buffer, f frame, b layout.Box, s boxStyle) {
	if len(b.Label) == 0 {
		return
	}
	size := fitFontSize(b.W, b.H, s.fontSize, b.Label)
	weight := ""
	if s.bold {
		weight = ` font-weight="bold"`
	}
	cx := f.x(b.CenterX())
	ys := textLines(f.y(b.CenterY()), size, len(b.Label))

	fmt.Fprintf(buf, `  <text class="%s-text" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%.1f" fill="%s"%s>`,
		b.Kind, fonts.FontFamily, size, s.text, weight)
	for i, line := range b.Label {
		fmt.Fprintf(buf, `<tspan x="%.1f" y="%.1f">%s</tspan>`, cx, ys[i], escapeXML(line))
	}
	buf.WriteString("</text>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
