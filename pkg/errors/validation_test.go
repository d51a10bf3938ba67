package errors

import (
	"testing"
)

func TestValidateOutputName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Upper_School.png", false},
		{"valid with dash", "panel-1.svg", false},
		{"valid with dots", "109.1_Data_Room.png", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"dot", ".", true},
		{"dot dot", "..", true},
		{"slash", "a/b.png", true},
		{"backslash", "a\\b.png", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateInputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "Door_Config_Report.csv", false},
		{"absolute", "/tmp/report.csv", false},
		{"empty", "", true},
		{"spaces", "   ", true},
		{"null byte", "a\x00b.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
