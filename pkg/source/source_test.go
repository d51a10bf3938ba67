package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
)

const flatCSV = `Panel,Panel Type,Subpanel,Subpanel Type,Door,Door Label,Reader,Door Position,Strike,REX
P1,1502,S1,MR52,D1,Front Door,R1,,ST1,
P1,1502,S1,MR52,D2,,,DP2,,

 , , , , , , , , ,
P2,lp-1502,S9,unknown-x,D7,Back,R7,DP7,ST7,X7
`

func TestDecodeTable(t *testing.T) {
	rows, err := Decode(strings.NewReader(flatCSV), DefaultColumns())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 (blank lines skipped)", len(rows))
	}

	first := rows[0]
	if first.Line != 2 {
		t.Errorf("first.Line = %d, want 2", first.Line)
	}
	want := map[record.Column]string{
		record.ColPanel:        "P1",
		record.ColPanelType:    "1502",
		record.ColSubpanel:     "S1",
		record.ColSubpanelType: "MR52",
		record.ColDoor:         "D1",
		record.ColDoorLabel:    "Front Door",
		"reader":               "R1",
		"strike":               "ST1",
	}
	for col, v := range want {
		if got := first.Get(col); got != v {
			t.Errorf("first.Get(%s) = %q, want %q", col, got, v)
		}
	}
	if got := first.Get("door_position"); got != "" {
		t.Errorf("door_position = %q, want blank", got)
	}
	if rows[2].Line != 6 {
		t.Errorf("rows[2].Line = %d, want 6", rows[2].Line)
	}
}

func TestDecodeHeaderMatching(t *testing.T) {
	tests := []struct {
		name   string
		header string
		col    record.Column
	}{
		{"canonical", "door_position", "door_position"},
		{"spaced", "Door Position", "door_position"},
		{"camel", "doorPosition", "door_position"},
		{"alias", "DPOS", "door_position"},
		{"dashed", "sub-panel", record.ColSubpanel},
		{"punctuation", "Rex #2", "rex2"},
		{"upper", "PANEL_ID", record.ColPanel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := Decode(strings.NewReader(tt.header+"\nvalue\n"), DefaultColumns())
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got := rows[0].Get(tt.col); got != "value" {
				t.Errorf("Get(%s) = %q, want %q", tt.col, got, "value")
			}
		})
	}
}

func TestDecodeMissingAndShortColumns(t *testing.T) {
	in := "Panel,Subpanel,Door,Extra\nP1,S1\nP1,S1,D1,ignored,more\n"
	rows, err := Decode(strings.NewReader(in), DefaultColumns())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if got := rows[0].Get(record.ColDoor); got != "" {
		t.Errorf("short row door = %q, want blank", got)
	}
	if got := rows[0].Get("reader"); got != "" {
		t.Errorf("missing column reader = %q, want blank", got)
	}
	if got := rows[1].Get(record.ColDoor); got != "D1" {
		t.Errorf("door = %q, want D1", got)
	}
}

func TestDecodeDuplicateHeaderKeepsFirst(t *testing.T) {
	rows, err := Decode(strings.NewReader("Panel,Controller\nfirst,second\n"), DefaultColumns())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := rows[0].Get(record.ColPanel); got != "first" {
		t.Errorf("panel = %q, want first", got)
	}
}

func TestDecodeCustomColumns(t *testing.T) {
	cols := DefaultColumns().Merge(Columns{record.ColPanel: {"Site Controller"}})
	rows, err := Decode(strings.NewReader("Site Controller,Subpanel\nC1,3\n"), cols)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := rows[0].Get(record.ColPanel); got != "C1" {
		t.Errorf("panel = %q, want C1", got)
	}
	// Replaced aliases no longer match, the canonical name still does.
	rows, err = Decode(strings.NewReader("Panel ID,Subpanel\nC1,3\n"), cols)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := rows[0].Get(record.ColPanel); got != "" {
		t.Errorf("panel via dropped alias = %q, want blank", got)
	}
}

func TestDecodeEmpty(t *testing.T) {
	rows, err := Decode(strings.NewReader(""), DefaultColumns())
	if err != nil || len(rows) != 0 {
		t.Errorf("Decode(empty) = %v, %v; want no rows and no error", rows, err)
	}

	rows, err = Decode(strings.NewReader("Panel,Subpanel\n"), DefaultColumns())
	if err != nil || len(rows) != 0 {
		t.Errorf("Decode(header only) = %v, %v; want no rows and no error", rows, err)
	}
}

func TestDecodeUnrecognizedHeader(t *testing.T) {
	_, err := Decode(strings.NewReader("foo,bar\n1,2\n"), DefaultColumns())
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Decode() error = %v, want INVALID_FORMAT", err)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatAuto, "AUTO": FormatAuto, "table": FormatTable, " report ": FormatReport} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("xlsx"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(xlsx) error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	if err := os.WriteFile(path, []byte(flatCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, err := ReadFile(path, DefaultColumns())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("rows = %d, want 3", len(rows))
	}

	_, err = ReadFile(filepath.Join(dir, "missing.csv"), DefaultColumns())
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ReadFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}
	if !os.IsNotExist(unwrapAll(err)) {
		t.Errorf("ReadFile(missing) should keep the os error in the chain")
	}

	if _, err := ReadFile("  ", DefaultColumns()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ReadFile(blank) error = %v, want INVALID_INPUT", err)
	}
}

func unwrapAll(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok || u.Unwrap() == nil {
			return err
		}
		err = u.Unwrap()
	}
}
