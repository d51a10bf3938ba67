package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/fonts"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout"
)

// PNG rasterizes the layout with the embedded Go fonts. The image is
// theme.Scale times the layout size; coordinates are scaled before drawing
// so glyphs are rendered at full resolution.
func PNG(l *layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	t := r.theme
	f := frameOf(l, t.Margin)
	s := t.Scale

	regular, err := fonts.Regular()
	if err != nil {
		return nil, err
	}
	bold, err := fonts.Bold()
	if err != nil {
		return nil, err
	}

	w, h := int(math.Ceil(f.w*s)), int(math.Ceil(f.h*s))
	dc := gg.NewContext(w, h)
	dc.SetHexColor(t.Background)
	dc.Clear()

	dc.SetHexColor(t.Line)
	dc.SetLineWidth(1.5 * s)
	for _, e := range l.Edges {
		dc.DrawLine(f.x(e.X1)*s, f.y(e.Y1)*s, f.x(e.X2)*s, f.y(e.Y2)*s)
		dc.Stroke()
	}

	boxes := l.Boxes()
	for _, b := range boxes {
		st := t.style(b.Kind)
		dc.DrawRoundedRectangle(f.x(b.X)*s, f.y(b.Y)*s, b.W*s, b.H*s, cornerRadius*s)
		dc.SetHexColor(st.fill)
		dc.FillPreserve()
		dc.SetHexColor(st.stroke)
		dc.SetLineWidth(st.strokeWidth * s)
		dc.Stroke()
	}

	faces := make(map[faceKey]font.Face)
	for _, b := range boxes {
		st := t.style(b.Kind)
		if len(b.Label) == 0 {
			continue
		}
		size := fitFontSize(b.W, b.H, st.fontSize, b.Label)
		ttf := regular
		if st.bold {
			ttf = bold
		}
		dc.SetFontFace(faceFor(faces, ttf, st.bold, size*s))
		dc.SetHexColor(st.text)

		cx := f.x(b.CenterX()) * s
		for i, y := range textLines(f.y(b.CenterY()), size, len(b.Label)) {
			dc.DrawStringAnchored(b.Label[i], cx, y*s, 0.5, 0.35)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

type faceKey struct {
	bold bool
	size float64
}

// faceFor returns the face for the weight and size, creating it on first
// use. Sizes are rounded to a tenth of a point.
func faceFor(cache map[faceKey]font.Face, f *truetype.Font, bold bool, size float64) font.Face {
	k := faceKey{bold, math.Round(size*10) / 10}
	face, ok := cache[k]
	if !ok {
		face = fonts.Face(f, k.size)
		cache[k] = face
	}
	return face
}
