package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout"
)

// pointsPerInch converts layout units to Graphviz node sizes.
const pointsPerInch = 72.0

// DOT converts the layout to Graphviz DOT with every node pinned to its
// computed position, so neato reproduces the layout exactly instead of
// running its own placement. Graphviz's y axis points up, so y is negated.
func DOT(l *layout.Layout, opts ...Option) string {
	r := newRenderer(opts...)
	t := r.theme

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  label=%q;\n", l.Title)
	buf.WriteString("  labelloc=t;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", t.Background)
	buf.WriteString("  splines=line;\n")
	fmt.Fprintf(&buf, "  pad=%q;\n", strconv.FormatFloat(t.Margin/pointsPerInch, 'f', 2, 64))
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fixedsize=true, fontname=\"Helvetica\"];\n")
	fmt.Fprintf(&buf, "  edge [arrowhead=none, color=%q, penwidth=1.5];\n", t.Line)
	buf.WriteString("\n")

	for _, b := range l.Boxes() {
		s := t.style(b.Kind)
		size := fitFontSize(b.W, b.H, s.fontSize, b.Label)
		attrs := []string{
			fmt.Sprintf("label=%q", strings.Join(b.Label, "\n")),
			fmt.Sprintf("pos=\"%s,%s!\"", fmtPt(b.CenterX()), fmtPt(-b.CenterY())),
			fmt.Sprintf("width=%s", fmtIn(b.W)),
			fmt.Sprintf("height=%s", fmtIn(b.H)),
			fmt.Sprintf("fillcolor=%q", s.fill),
			fmt.Sprintf("color=%q", s.stroke),
			fmt.Sprintf("fontcolor=%q", s.text),
			fmt.Sprintf("fontsize=%s", fmtPt(size)),
		}
		if s.bold {
			attrs = append(attrs, `fontname="Helvetica-Bold"`)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(attrs, ", "))
	}

	if len(l.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range l.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtPt(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }
func fmtIn(v float64) string { return strconv.FormatFloat(v/pointsPerInch, 'f', 3, 64) }

// Graphviz renders the layout with Graphviz neato using pinned positions.
// Only [FormatSVG] and [FormatPNG] are supported.
func Graphviz(ctx context.Context, l *layout.Layout, format Format, opts ...Option) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("graphviz engine cannot produce %s", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(DOT(l, opts...)))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg element with one whose size
// matches its viewBox in pixels.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
