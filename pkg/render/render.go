package render

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout"
)

// Option configures a renderer.
type Option func(*renderer)

type renderer struct {
	theme Theme
}

// WithTheme sets the colors and text settings. Empty fields keep their
// defaults.
func WithTheme(t Theme) Option {
	return func(r *renderer) { r.theme = t }
}

// WithScale sets the raster scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) Option {
	return func(r *renderer) { r.theme.Scale = s }
}

func newRenderer(opts ...Option) renderer {
	r := renderer{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(&r)
	}
	r.theme = r.theme.WithDefaults()
	return r
}

// frame maps layout coordinates to image coordinates. Layout coordinates
// are centered on the panel; images start at the top-left corner.
type frame struct {
	dx, dy float64
	w, h   float64
}

func frameOf(l *layout.Layout, margin float64) frame {
	b := l.Bounds()
	return frame{
		dx: margin - b.MinX,
		dy: margin - b.MinY,
		w:  b.Width() + 2*margin,
		h:  b.Height() + 2*margin,
	}
}

func (f frame) x(v float64) float64 { return v + f.dx }
func (f frame) y(v float64) float64 { return v + f.dy }

// Render produces one output of l in the given format. The engine only
// matters for PNG and SVG; JSON and DOT are always written natively.
func Render(ctx context.Context, l *layout.Layout, format Format, engine Engine, opts ...Option) ([]byte, error) {
	switch format {
	case FormatJSON:
		return JSON(l, opts...)
	case FormatDOT:
		return []byte(DOT(l, opts...)), nil
	case FormatSVG:
		if engine == EngineGraphviz {
			return Graphviz(ctx, l, FormatSVG, opts...)
		}
		return SVG(l, opts...), nil
	case FormatPNG:
		if engine == EngineGraphviz {
			return Graphviz(ctx, l, FormatPNG, opts...)
		}
		return PNG(l, opts...)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

const maxNameBytes = 200

// SafeFileName turns a panel label into a file name without extension:
// spaces become underscores, as do path separators and characters that are
// invalid on common filesystems. A name made only of dots is replaced by
// underscores, and overly long names are truncated.
func SafeFileName(label string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(label) {
		switch {
		case unicode.IsSpace(r), unicode.IsControl(r), strings.ContainsRune(`<>:"/\|?*`, r):
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	name := b.String()
	if strings.Trim(name, ".") == "" {
		name = strings.Repeat("_", len(name))
	}
	for len(name) > maxNameBytes {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	if err := errors.ValidateOutputName(name); err != nil {
		return "", err
	}
	return name, nil
}
