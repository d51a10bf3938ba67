package render

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"slices"
	"strings"
	"testing"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
)

func testLayout(t *testing.T, showLines bool) *layout.Layout {
	t.Helper()
	rows := []record.Raw{
		{Line: 2, Fields: map[record.Column]string{
			record.ColPanel: "Upper School", record.ColPanelType: "1502",
			record.ColSubpanel: "0", record.ColSubpanelType: "Internal",
			record.ColDoor: "109.1 Data Room", "reader": "1", "strike": "1",
		}},
		{Line: 3, Fields: map[record.Column]string{
			record.ColPanel: "Upper School", record.ColSubpanel: "3", record.ColSubpanelType: "MR52",
			record.ColDoor: "110 <Gym> & East", "door_position": "2",
		}},
	}
	h, err := hierarchy.BuildFromRows(slices.Values(rows), record.NewNormalizer(record.DefaultOptions()), hierarchy.Options{})
	if err != nil {
		t.Fatalf("BuildFromRows() error = %v", err)
	}
	return layout.Compute(h.Panels()[0], layout.Options{ShowLines: showLines})
}

func TestPNG(t *testing.T) {
	l := testLayout(t, true)
	data, err := PNG(l, WithScale(1))
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	f := frameOf(l, DefaultTheme().Margin)
	b := img.Bounds()
	if b.Dx() < int(f.w) || b.Dy() < int(f.h) {
		t.Errorf("image %dx%d smaller than frame %.0fx%.0f", b.Dx(), b.Dy(), f.w, f.h)
	}

	// The panel box center is filled with the panel color, not background.
	cx, cy := int(f.x(l.Panel.CenterX())), int(f.y(l.Panel.Y+4))
	r, g, bl, _ := img.At(cx, cy).RGBA()
	if r == 0xffff && g == 0xffff && bl == 0xffff {
		t.Errorf("pixel at panel box (%d,%d) is background white", cx, cy)
	}
}

func TestPNGScale(t *testing.T) {
	l := testLayout(t, false)
	one, err := PNG(l, WithScale(1))
	if err != nil {
		t.Fatal(err)
	}
	two, err := PNG(l, WithScale(2))
	if err != nil {
		t.Fatal(err)
	}
	a, _ := png.DecodeConfig(bytes.NewReader(one))
	b, _ := png.DecodeConfig(bytes.NewReader(two))
	if b.Width < 2*a.Width-1 || b.Height < 2*a.Height-1 {
		t.Errorf("2x image %dx%d, 1x image %dx%d", b.Width, b.Height, a.Width, a.Height)
	}
}

func TestSVG(t *testing.T) {
	svg := string(SVG(testLayout(t, true)))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`id="panel"`,
		`id="subpanel/0"`,
		`id="door/3/110 &lt;Gym&gt; &amp; East"`,
		`>Internal SIO</tspan>`,
		`>RDR: 1</tspan>`,
		`class="edge"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if got := strings.Count(svg, `class="edge"`); got != 4 {
		t.Errorf("edges = %d, want 4", got)
	}
}

func TestSVGWithoutLines(t *testing.T) {
	on := string(SVG(testLayout(t, true)))
	off := string(SVG(testLayout(t, false)))
	if strings.Contains(off, `class="edge"`) {
		t.Error("SVG without lines contains edges")
	}
	// Box markup is identical in both modes.
	rects := func(s string) []string {
		var out []string
		for _, line := range strings.Split(s, "\n") {
			if strings.Contains(line, "<rect id=") {
				out = append(out, line)
			}
		}
		return out
	}
	if !slices.Equal(rects(on), rects(off)) {
		t.Error("box markup depends on connector lines")
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON(testLayout(t, false))
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Panel != "Upper School" {
		t.Errorf("Panel = %q", out.Panel)
	}
	if len(out.Boxes) != 5 {
		t.Errorf("boxes = %d, want 5", len(out.Boxes))
	}
	if out.Edges == nil || len(out.Edges) != 0 {
		t.Errorf("edges = %v, want empty array", out.Edges)
	}
	if !bytes.Contains(data, []byte(`"edges": []`)) {
		t.Error(`JSON should encode "edges": []`)
	}
	for _, b := range out.Boxes {
		if b.X < 0 || b.Y < 0 {
			t.Errorf("box %s at (%v,%v), want image coordinates", b.ID, b.X, b.Y)
		}
	}
	if len(out.Columns) != 2 || !slices.Equal(out.Columns[0].Doors, []string{"door/0/109.1 Data Room"}) {
		t.Errorf("columns = %+v", out.Columns)
	}
}

func TestDOT(t *testing.T) {
	dot := DOT(testLayout(t, true))

	for _, want := range []string{
		"digraph G {",
		`"panel" [label="Panel\nUpper School\n1502"`,
		`pos="0.0,-35.0!"`,
		`"panel" -> "subpanel/0";`,
		`"subpanel/3" -> "door/3/110 <Gym> & East";`,
		"fixedsize=true",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}

	if strings.Contains(DOT(testLayout(t, false)), "->") {
		t.Error("DOT without lines contains edges")
	}
}

func TestRenderDispatch(t *testing.T) {
	l := testLayout(t, false)
	ctx := context.Background()
	for _, f := range []Format{FormatPNG, FormatSVG, FormatJSON, FormatDOT} {
		data, err := Render(ctx, l, f, EngineNative)
		if err != nil {
			t.Errorf("Render(%s) error = %v", f, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("Render(%s) returned no data", f)
		}
	}
	if _, err := Render(ctx, l, "pdf", EngineNative); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(pdf) error = %v, want INVALID_FORMAT", err)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats([]string{"png", " svg", "png", "json"})
	if err != nil {
		t.Fatalf("ParseFormats() error = %v", err)
	}
	if want := []Format{FormatPNG, FormatSVG, FormatJSON}; !slices.Equal(got, want) {
		t.Errorf("ParseFormats() = %v, want %v", got, want)
	}

	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"svg", false},
		{"json", false},
		{"dot", false},
		{"pdf", true},
		{"PNG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestParseEngine(t *testing.T) {
	tests := []struct {
		in      string
		want    Engine
		wantErr bool
	}{
		{"", EngineNative, false},
		{"native", EngineNative, false},
		{"GraphViz", EngineGraphviz, false},
		{"cairo", "", true},
	}
	for _, tt := range tests {
		got, err := ParseEngine(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseEngine(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Upper School", "Upper_School"},
		{"  Lower  School ", "Lower__School"},
		{"Bldg A/B: Main", "Bldg_A_B__Main"},
		{`C:\panels\"x"?`, "C__panels__x__"},
		{"..", "__"},
		{"Café 1502", "Café_1502"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := SafeFileName(tt.in)
			if err != nil {
				t.Fatalf("SafeFileName() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SafeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	long, err := SafeFileName(strings.Repeat("é", 300))
	if err != nil {
		t.Fatalf("SafeFileName(long) error = %v", err)
	}
	if len(long) > maxNameBytes || !strings.HasPrefix(long, "é") {
		t.Errorf("long name has %d bytes", len(long))
	}

	if _, err := SafeFileName("   "); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("SafeFileName(blank) error = %v, want INVALID_PATH", err)
	}
}

func TestThemeValidate(t *testing.T) {
	if err := DefaultTheme().Validate(); err != nil {
		t.Errorf("default theme invalid: %v", err)
	}
	if err := (Theme{DoorFill: "#abc"}).Validate(); err != nil {
		t.Errorf("short hex rejected: %v", err)
	}
	if err := (Theme{Line: "red"}).Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Validate(red) error = %v, want INVALID_CONFIG", err)
	}
	th := Theme{FontSize: 9}.WithDefaults()
	if th.FontSize != 9 || th.Background != DefaultTheme().Background {
		t.Errorf("WithDefaults() = %+v", th)
	}
}

func TestFitFontSize(t *testing.T) {
	if got := fitFontSize(200, 110, 10, []string{"D1"}); got != 10 {
		t.Errorf("short label shrunk to %v", got)
	}
	long := []string{strings.Repeat("W", 80)}
	if got := fitFontSize(200, 110, 10, long); got >= 10 || got < fontSizeMin {
		t.Errorf("long label size = %v", got)
	}
}
