package buildinfo

import (
	"strings"
	"testing"
)

func TestIsPackaged(t *testing.T) {
	orig := Packaged
	t.Cleanup(func() { Packaged = orig })

	tests := []struct {
		value string
		want  bool
	}{
		{"false", false},
		{"true", true},
		{"1", true},
		{"", false},
		{"yes", false},
	}
	for _, tt := range tests {
		Packaged = tt.value
		if got := IsPackaged(); got != tt.want {
			t.Errorf("IsPackaged() with %q = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"version: " + Version, "commit: " + Commit, "packaged: "} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
	if !strings.Contains(Template(), "{{.Name}}") {
		t.Error("Template() should reference the command name")
	}
}
