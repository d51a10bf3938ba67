// Package record defines the normalized input row and the normalizer that
// produces it from loosely structured CSV fields.
//
// A [Raw] row is a mapping of canonical column name to string value, as
// decoded from the configuration export. The [Normalizer] trims every field,
// maps blank and placeholder values to "absent", coerces panel and subpanel
// type strings to known variants, and rejects rows without a panel or
// subpanel identifier.
//
//	n := record.NewNormalizer(record.DefaultOptions())
//	rec, err := n.Normalize(raw)
//	if errors.Is(err, errors.ErrCodeMalformedRow) {
//	    // skip the row, keep a warning
//	}
package record

import (
	"maps"
	"strconv"
)

// Column is a canonical column name of the tabular export.
type Column string

// Canonical columns. Hardware slot columns are listed on [Slot].
const (
	ColPanel        Column = "panel"
	ColPanelType    Column = "panel_type"
	ColSubpanel     Column = "subpanel"
	ColSubpanelType Column = "subpanel_type"
	ColDoor         Column = "door"
	ColDoorLabel    Column = "door_label"
	ColAddress      Column = "address"
)

// Columns returns every canonical column in a stable order: identifiers
// first, then the hardware slots in canonical order, then the address.
func Columns() []Column {
	cols := []Column{ColPanel, ColPanelType, ColSubpanel, ColSubpanelType, ColDoor, ColDoorLabel}
	for _, s := range Slots() {
		cols = append(cols, s.Column())
	}
	return append(cols, ColAddress)
}

// Raw is one decoded input row before normalization.
// Missing columns read as blank.
type Raw struct {
	Line   int // 1-based source line, 0 when unknown
	Fields map[Column]string
}

// Get returns the value of column c, or "" if the column is missing.
func (r Raw) Get(c Column) string {
	return r.Fields[c]
}

// Hardware maps a slot to its value. A slot is present only if the source
// supplied a non-blank value for it.
type Hardware map[Slot]string

// Get returns the value of slot s and whether it is present.
func (h Hardware) Get(s Slot) (string, bool) {
	v, ok := h[s]
	return v, ok
}

// Clone returns an independent copy of h.
func (h Hardware) Clone() Hardware {
	if h == nil {
		return Hardware{}
	}
	return maps.Clone(h)
}

// Record is one normalized input row.
//
// PanelID and SubpanelID are never blank. DoorID is blank for rows that only
// describe a panel or subpanel. Address is 0 when unknown.
type Record struct {
	Line         int
	PanelID      string
	PanelType    PanelType
	SubpanelID   string
	SubpanelType SubpanelType
	DoorID       string
	DoorLabel    string
	Address      int
	Hardware     Hardware
}

// HasDoor reports whether the record references a door.
func (r Record) HasDoor() bool {
	return r.DoorID != ""
}

// Raw converts the record back into raw form. Normalizing the result yields
// a record equal to r.
func (r Record) Raw() Raw {
	fields := map[Column]string{
		ColPanel:        r.PanelID,
		ColPanelType:    r.PanelType.Raw,
		ColSubpanel:     r.SubpanelID,
		ColSubpanelType: r.SubpanelType.Raw,
		ColDoor:         r.DoorID,
		ColDoorLabel:    r.DoorLabel,
	}
	if r.Address > 0 {
		fields[ColAddress] = strconv.Itoa(r.Address)
	}
	for s, v := range r.Hardware {
		fields[s.Column()] = v
	}
	return Raw{Line: r.Line, Fields: fields}
}
