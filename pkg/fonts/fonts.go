// Package fonts provides the font faces used to rasterize diagrams.
//
// The Go font family is compiled into the binary by golang.org/x/image, so
// rendering never depends on fonts installed on the host. Fonts are parsed
// once on first use; faces are cheap to create but not safe for concurrent
// use, so each renderer creates its own.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the SVG font-family name matching the embedded faces.
const FontFamily = "Go, 'DejaVu Sans', Helvetica, Arial, sans-serif"

type parsed struct {
	once sync.Once
	font *truetype.Font
	err  error
}

func (p *parsed) load(name string, ttf []byte) (*truetype.Font, error) {
	p.once.Do(func() {
		p.font, p.err = truetype.Parse(ttf)
		if p.err != nil {
			p.err = fmt.Errorf("parse %s font: %w", name, p.err)
		}
	})
	return p.font, p.err
}

var regular, bold parsed

// Regular returns the regular weight font.
func Regular() (*truetype.Font, error) { return regular.load("regular", goregular.TTF) }

// Bold returns the bold weight font.
func Bold() (*truetype.Font, error) { return bold.load("bold", gobold.TTF) }

// Face returns a face of f at size points, hinted for 72 DPI output.
func Face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
