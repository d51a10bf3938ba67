package render

import (
	"regexp"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout"
)

// Theme holds colors and text settings shared by every output format.
// Colors are "#rgb" or "#rrggbb" hex strings.
type Theme struct {
	Background     string  `toml:"background" yaml:"background" json:"background"`
	Text           string  `toml:"text" yaml:"text" json:"text"`
	Line           string  `toml:"line" yaml:"line" json:"line"`
	PanelFill      string  `toml:"panel_fill" yaml:"panel_fill" json:"panel_fill"`
	PanelStroke    string  `toml:"panel_stroke" yaml:"panel_stroke" json:"panel_stroke"`
	SubpanelFill   string  `toml:"subpanel_fill" yaml:"subpanel_fill" json:"subpanel_fill"`
	SubpanelStroke string  `toml:"subpanel_stroke" yaml:"subpanel_stroke" json:"subpanel_stroke"`
	SubpanelText   string  `toml:"subpanel_text" yaml:"subpanel_text" json:"subpanel_text"`
	DoorFill       string  `toml:"door_fill" yaml:"door_fill" json:"door_fill"`
	DoorStroke     string  `toml:"door_stroke" yaml:"door_stroke" json:"door_stroke"`
	FontSize       float64 `toml:"font_size" yaml:"font_size" json:"font_size"`
	Margin         float64 `toml:"margin" yaml:"margin" json:"margin"`
	Scale          float64 `toml:"scale" yaml:"scale" json:"scale"`
}

// DefaultTheme returns the classic black, blue and green wiring sheet.
func DefaultTheme() Theme {
	return Theme{
		Background:     "#ffffff",
		Text:           "#000000",
		Line:           "#000000",
		PanelFill:      "#f0f0f0",
		PanelStroke:    "#000000",
		SubpanelFill:   "#e6f0ff",
		SubpanelStroke: "#0000ff",
		SubpanelText:   "#0000ff",
		DoorFill:       "#eaffea",
		DoorStroke:     "#008000",
		FontSize:       12,
		Margin:         40,
		Scale:          2,
	}
}

// WithDefaults returns t with every empty or non-positive field replaced by
// its default.
func (t Theme) WithDefaults() Theme {
	d := DefaultTheme()
	str := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	num := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	str(&t.Background, d.Background)
	str(&t.Text, d.Text)
	str(&t.Line, d.Line)
	str(&t.PanelFill, d.PanelFill)
	str(&t.PanelStroke, d.PanelStroke)
	str(&t.SubpanelFill, d.SubpanelFill)
	str(&t.SubpanelStroke, d.SubpanelStroke)
	str(&t.SubpanelText, d.SubpanelText)
	str(&t.DoorFill, d.DoorFill)
	str(&t.DoorStroke, d.DoorStroke)
	num(&t.FontSize, d.FontSize)
	num(&t.Margin, d.Margin)
	num(&t.Scale, d.Scale)
	return t
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks that every set color is a hex color.
func (t Theme) Validate() error {
	colors := map[string]string{
		"background":      t.Background,
		"text":            t.Text,
		"line":            t.Line,
		"panel_fill":      t.PanelFill,
		"panel_stroke":    t.PanelStroke,
		"subpanel_fill":   t.SubpanelFill,
		"subpanel_stroke": t.SubpanelStroke,
		"subpanel_text":   t.SubpanelText,
		"door_fill":       t.DoorFill,
		"door_stroke":     t.DoorStroke,
	}
	for key, c := range colors {
		if c != "" && !hexColorRe.MatchString(c) {
			return errors.New(errors.ErrCodeInvalidConfig, "theme.%s: %q is not a hex color", key, c)
		}
	}
	return nil
}

// boxStyle is the resolved look of one box kind.
type boxStyle struct {
	fill, stroke, text string
	fontSize           float64
	bold               bool
	strokeWidth        float64
}

func (t Theme) style(k layout.Kind) boxStyle {
	switch k {
	case layout.KindPanel:
		return boxStyle{t.PanelFill, t.PanelStroke, t.Text, t.FontSize * 1.25, true, 2}
	case layout.KindSubpanel:
		return boxStyle{t.SubpanelFill, t.SubpanelStroke, t.SubpanelText, t.FontSize, false, 1.5}
	default:
		return boxStyle{t.DoorFill, t.DoorStroke, t.Text, t.FontSize * 0.85, false, 1.5}
	}
}

const (
	cornerRadius   = 8.0
	lineHeight     = 1.25
	charWidthRatio = 0.55
	textPadding    = 6.0
	fontSizeMin    = 6.0
)

// fitFontSize shrinks size until lines fit inside a w×h box, using an
// average glyph width estimate.
func fitFontSize(w, h, size float64, lines []string) float64 {
	if len(lines) == 0 {
		return size
	}
	longest := 1
	for _, l := range lines {
		longest = max(longest, len([]rune(l)))
	}
	availW := w - 2*textPadding
	availH := h - 2*textPadding
	byWidth := availW / (float64(longest) * charWidthRatio)
	byHeight := availH / (float64(len(lines)) * lineHeight)
	return max(fontSizeMin, min(size, byWidth, byHeight))
}

// textLines returns the baseline-centered y of each line of a label
// vertically centered on cy.
func textLines(cy, size float64, n int) []float64 {
	ys := make([]float64, n)
	step := size * lineHeight
	top := cy - step*float64(n-1)/2
	for i := range ys {
		ys[i] = top + step*float64(i)
	}
	return ys
}
