package record

import (
	"reflect"
	"testing"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
)

func raw(line int, kv ...string) Raw {
	fields := make(map[Column]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[Column(kv[i])] = kv[i+1]
	}
	return Raw{Line: line, Fields: fields}
}

func TestNormalizeTrimsAndCoerces(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	rec, err := n.Normalize(raw(2,
		"panel", "  Upper   School ",
		"panel_type", " lp1502 ",
		"subpanel", " 03 ",
		"subpanel_type", "mr52",
		"door", " D1 ",
		"door_label", " 109.1  Data Room ",
		"reader", " R1 ",
		"strike", "  ",
		"rex", "N/A",
		"address", " 2 ",
	))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	want := Record{
		Line:         2,
		PanelID:      "Upper School",
		PanelType:    PanelType{Kind: Panel1502, Raw: "lp1502"},
		SubpanelID:   "3",
		SubpanelType: SubpanelType{Kind: SubpanelMR52, Raw: "mr52"},
		DoorID:       "D1",
		DoorLabel:    "109.1 Data Room",
		Address:      2,
		Hardware:     Hardware{SlotReader: "R1"},
	}
	if !reflect.DeepEqual(rec, want) {
		t.Errorf("Normalize() = %+v, want %+v", rec, want)
	}
}

func TestNormalizeRejectsBlankIdentifiers(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	tests := []struct {
		name  string
		row   Raw
		field string
	}{
		{"missing panel column", raw(3, "subpanel", "S1"), "panel"},
		{"whitespace panel", raw(4, "panel", "   ", "subpanel", "S1"), "panel"},
		{"null marker panel", raw(5, "panel", "--", "subpanel", "S1"), "panel"},
		{"blank subpanel", raw(6, "panel", "P1", "subpanel", ""), "subpanel"},
		{"null marker subpanel", raw(7, "panel", "P1", "subpanel", "none"), "subpanel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.row)
			if !errors.Is(err, errors.ErrCodeMalformedRow) {
				t.Fatalf("Normalize() error = %v, want MALFORMED_ROW", err)
			}
			w := errors.AsWarning(err)
			if w.Line != tt.row.Line {
				t.Errorf("warning line = %d, want %d", w.Line, tt.row.Line)
			}
			var re *errors.RowError
			if !asRowError(err, &re) || re.Field != tt.field {
				t.Errorf("field = %v, want %q", re, tt.field)
			}
		})
	}
}

func asRowError(err error, target **errors.RowError) bool {
	re, ok := err.(*errors.RowError)
	if ok {
		*target = re
	}
	return ok
}

func TestNormalizeUnrecognizedTypesKeptVerbatim(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	rec, err := n.Normalize(raw(1,
		"panel", "P1", "panel_type", "LP4502",
		"subpanel", "S1", "subpanel_type", "MR62e",
	))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if rec.PanelType.Known() || rec.PanelType.String() != "LP4502" {
		t.Errorf("PanelType = %+v, want other LP4502", rec.PanelType)
	}
	if rec.SubpanelType.Known() || rec.SubpanelType.Caption() != "MR62e" {
		t.Errorf("SubpanelType = %+v, want other MR62e", rec.SubpanelType)
	}
}

func TestNormalizeDoorFallsBackToLabel(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	rec, err := n.Normalize(raw(1, "panel", "P1", "subpanel", "S1", "door_label", "Front  Door"))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if rec.DoorID != "Front Door" || !rec.HasDoor() {
		t.Errorf("DoorID = %q, want %q", rec.DoorID, "Front Door")
	}

	rec, err = n.Normalize(raw(1, "panel", "P1", "subpanel", "S1"))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if rec.HasDoor() {
		t.Errorf("HasDoor() = true for a subpanel-only row")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(DefaultOptions())

	rows := []Raw{
		raw(1, "panel", " P1 ", "panel_type", "1502", "subpanel", "007", "subpanel_type", "internal",
			"door", "D1", "reader", "R1", "door_position", " DP ", "rex2", "X"),
		raw(2, "panel", "P2", "panel_type", "weird", "subpanel", "S 1", "door_label", "Lobby", "address", "-4"),
		raw(3, "panel", "P3", "subpanel", "0", "subpanel_type", "", "address", "12"),
	}

	for _, r := range rows {
		first, err := n.Normalize(r)
		if err != nil {
			t.Fatalf("Normalize(%v) error = %v", r, err)
		}
		second, err := n.NormalizeRecord(first)
		if err != nil {
			t.Fatalf("NormalizeRecord() error = %v", err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("normalization not idempotent:\n first  %+v\n second %+v", first, second)
		}
	}
}

func TestStandardizeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"0", "0"},
		{"000", "0"},
		{"03", "3"},
		{"10", "10"},
		{"S01", "S01"},
		{"  Upper   School ", "Upper School"},
	}
	for _, tt := range tests {
		if got := standardizeID(tt.in); got != tt.want {
			t.Errorf("standardizeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCustomAliasesAndNullMarkers(t *testing.T) {
	n := NewNormalizer(Options{
		NullMarkers:     []string{"?"},
		PanelAliases:    map[string][]string{"1502": {"Mercury 1502"}, "bogus": {"x"}},
		SubpanelAliases: map[string][]string{"MR52": {"Mercury MR52"}},
	})

	if !n.IsBlank(" ? ") {
		t.Error("IsBlank(?) = false, want true")
	}
	if n.IsBlank("-") {
		t.Error("IsBlank(-) = true, want false with custom markers")
	}
	if got := n.ParsePanelType("mercury  1502"); got.Kind != Panel1502 {
		t.Errorf("ParsePanelType alias = %+v", got)
	}
	if got := n.ParsePanelType("1502"); got.Kind != Panel1502 {
		t.Errorf("ParsePanelType canonical = %+v", got)
	}
	if got := n.ParsePanelType("x"); got.Known() {
		t.Errorf("alias of unknown canonical type should not match: %+v", got)
	}
	if got := n.ParseSubpanelType("MERCURY MR52"); got.Kind != SubpanelMR52 {
		t.Errorf("ParseSubpanelType alias = %+v", got)
	}
	if got := n.ParseSubpanelType(""); !got.Blank() {
		t.Errorf("ParseSubpanelType(\"\") = %+v, want blank", got)
	}
}

func TestSlotOrderAndCaptions(t *testing.T) {
	got := Slots()
	want := []Slot{SlotReader, SlotDoorPosition, SlotStrike, SlotRex, SlotAltReader, SlotRex2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Slots() = %v, want %v", got, want)
	}
	if SlotDoorPosition.String() != "doorPosition" || SlotDoorPosition.Prefix() != "DPOS" {
		t.Errorf("door position slot = %s/%s", SlotDoorPosition, SlotDoorPosition.Prefix())
	}
	if Slot(99).String() != "unknown" {
		t.Errorf("out of range slot name = %q", Slot(99).String())
	}
	if (SubpanelType{Kind: SubpanelInternal}).Caption() != "Internal SIO" {
		t.Error("internal subpanel caption")
	}
	if (SubpanelType{}).Caption() != "Unknown" {
		t.Error("blank subpanel caption")
	}
}
