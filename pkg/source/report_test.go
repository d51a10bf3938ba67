package source

import (
	"strings"
	"testing"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
)

const reportCSV = `Name,Value
109.1 Data Room,
Configuration and Communication Settings,
Panel,Upper School
Door Mode,Card Only
Hardware,
Reader,Reader on subpanel 0 Address 1
Door Position,Door Contact (Subpanel:0 Input:1)
Strike,Strike (Subpanel:0 Output:1)
Rex #1,Rex (Subpanel:0 Input:2)
110 Gym East,
Configuration and Communication Settings,
Panel,Upper School
Hardware,
Alternate Reader,Reader on subpanel 9 Address 9
Strike,Strike (Subpanel:3 Output:2)
Rex #2,Spare
Lonely Door,
Configuration and Communication Settings,
Panel,Lower School
Hardware,
Reader,not wired
`

func TestDecodeReport(t *testing.T) {
	rows, err := Decode(strings.NewReader(reportCSV), DefaultColumns())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 door blocks", len(rows))
	}

	tests := []struct {
		name string
		row  record.Raw
		want map[record.Column]string
		line int
	}{
		{
			name: "internal SIO",
			row:  rows[0],
			line: 2,
			want: map[record.Column]string{
				record.ColPanel:        "Upper School",
				record.ColPanelType:    "1502",
				record.ColSubpanel:     "0",
				record.ColSubpanelType: "MR1501-internal",
				record.ColDoor:         "109.1 Data Room",
				record.ColDoorLabel:    "109.1 Data Room",
				record.ColAddress:      "1",
				"reader":               "1",
				"door_position":        "1",
				"strike":               "1",
				"rex":                  "2",
			},
		},
		{
			name: "placement skips the alternate reader",
			row:  rows[1],
			line: 11,
			want: map[record.Column]string{
				record.ColPanel:        "Upper School",
				record.ColSubpanel:     "3",
				record.ColSubpanelType: "MR52",
				record.ColAddress:      "2",
				"alt_reader":           "9",
				"strike":               "2",
				"rex2":                 "Spare",
			},
		},
		{
			name: "unwired door keeps a blank subpanel",
			row:  rows[2],
			line: 18,
			want: map[record.Column]string{
				record.ColPanel:    "Lower School",
				record.ColSubpanel: "",
				record.ColDoor:     "Lonely Door",
				"reader":           "not wired",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.row.Line != tt.line {
				t.Errorf("Line = %d, want %d", tt.row.Line, tt.line)
			}
			for col, v := range tt.want {
				if got := tt.row.Get(col); got != v {
					t.Errorf("Get(%s) = %q, want %q", col, got, v)
				}
			}
		})
	}
}

func TestDecodeReportRejectsTableHeader(t *testing.T) {
	_, err := DecodeReport(strings.NewReader("Panel,Subpanel\nP1,S1\n"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("DecodeReport() error = %v, want INVALID_FORMAT", err)
	}
}

func TestDecodeReportForcedFormat(t *testing.T) {
	rows, err := DecodeFormat(strings.NewReader(reportCSV), DefaultColumns(), FormatReport)
	if err != nil || len(rows) != 3 {
		t.Fatalf("DecodeFormat(report) = %d rows, %v", len(rows), err)
	}
	// Read as a flat table the Name column is taken as the door label.
	rows, err = DecodeFormat(strings.NewReader(reportCSV), DefaultColumns(), FormatTable)
	if err != nil {
		t.Fatalf("DecodeFormat(table) error = %v", err)
	}
	if got := rows[0].Get(record.ColDoorLabel); got != "109.1 Data Room" {
		t.Errorf("door_label = %q", got)
	}
}

func TestParseWiring(t *testing.T) {
	tests := []struct {
		in    string
		sub   int
		addr  int
		found bool
		value string
	}{
		{"Reader on subpanel 3 Address 1", 3, 1, true, "1"},
		{"reader ON SUBPANEL 12   address 7", 12, 7, true, "7"},
		{"Door Contact (Subpanel:2 Input:4)", 2, 4, true, "4"},
		{"Strike (Subpanel:0 Output5)", 0, 5, true, "5"},
		{"  Spare input  ", 0, 0, false, "Spare input"},
		{"", 0, 0, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w := ParseWiring(tt.in)
			if w.Found != tt.found || w.Subpanel != tt.sub || w.Address != tt.addr {
				t.Errorf("ParseWiring(%q) = %+v", tt.in, w)
			}
			if got := w.Value(); got != tt.value {
				t.Errorf("Value() = %q, want %q", got, tt.value)
			}
		})
	}
}
