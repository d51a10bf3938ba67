package fonts

import (
	"testing"

	"github.com/golang/freetype/truetype"
)

func TestFonts(t *testing.T) {
	tests := []struct {
		name string
		load func() (*truetype.Font, error)
	}{
		{"regular", Regular},
		{"bold", Bold},
	}
	for _, tt := range tests {
		f, err := tt.load()
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if f.FUnitsPerEm() == 0 {
			t.Errorf("%s: units per em = 0", tt.name)
		}
	}
}

func TestFaceMetrics(t *testing.T) {
	f, err := Regular()
	if err != nil {
		t.Fatal(err)
	}
	small := Face(f, 10).Metrics().Height
	large := Face(f, 20).Metrics().Height
	if large <= small {
		t.Errorf("20pt height %v should exceed 10pt height %v", large, small)
	}
}

func TestRegularParsedOnce(t *testing.T) {
	a, _ := Regular()
	b, _ := Regular()
	if a != b {
		t.Error("Regular() should return the cached font")
	}
}
