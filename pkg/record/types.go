package record

// Slot is a hardware wiring attribute of a door.
type Slot int

// Hardware slots. The order of the constants is the canonical rendering
// order; the first four are the core slots of every export, the last two
// only appear in Avigilon reports.
const (
	SlotReader Slot = iota
	SlotDoorPosition
	SlotStrike
	SlotRex
	SlotAltReader
	SlotRex2
)

var slotInfo = [...]struct {
	name   string
	column Column
	prefix string
}{
	SlotReader:       {"reader", "reader", "RDR"},
	SlotDoorPosition: {"doorPosition", "door_position", "DPOS"},
	SlotStrike:       {"strike", "strike", "LOCK"},
	SlotRex:          {"rex", "rex", "REX1"},
	SlotAltReader:    {"altReader", "alt_reader", "ALT RDR"},
	SlotRex2:         {"rex2", "rex2", "REX2"},
}

// Slots returns all hardware slots in canonical order.
func Slots() []Slot {
	return []Slot{SlotReader, SlotDoorPosition, SlotStrike, SlotRex, SlotAltReader, SlotRex2}
}

// String returns the slot name, e.g. "doorPosition".
func (s Slot) String() string {
	if s < 0 || int(s) >= len(slotInfo) {
		return "unknown"
	}
	return slotInfo[s].name
}

// Column returns the canonical column holding the slot.
func (s Slot) Column() Column {
	if s < 0 || int(s) >= len(slotInfo) {
		return ""
	}
	return slotInfo[s].column
}

// Prefix returns the short caption used in door labels, e.g. "DPOS".
func (s Slot) Prefix() string {
	if s < 0 || int(s) >= len(slotInfo) {
		return "?"
	}
	return slotInfo[s].prefix
}

// PanelKind enumerates known panel controllers.
type PanelKind int

const (
	PanelOther PanelKind = iota
	Panel1502
)

// Canonical panel type names.
const PanelType1502 = "1502"

// PanelType is a coerced panel type. Unrecognized values keep the source
// text in Raw under PanelOther.
type PanelType struct {
	Kind PanelKind
	Raw  string
}

// Known reports whether the type matched a known controller.
func (t PanelType) Known() bool { return t.Kind != PanelOther }

// Blank reports whether the source supplied no type at all.
func (t PanelType) Blank() bool { return t.Kind == PanelOther && t.Raw == "" }

// String returns the canonical name for known kinds and the source text
// otherwise.
func (t PanelType) String() string {
	switch t.Kind {
	case Panel1502:
		return PanelType1502
	default:
		return t.Raw
	}
}

// SubpanelKind enumerates known subpanel controllers.
type SubpanelKind int

const (
	SubpanelOther SubpanelKind = iota
	SubpanelMR52
	SubpanelInternal
)

// Canonical subpanel type names.
const (
	SubpanelTypeMR52     = "MR52"
	SubpanelTypeInternal = "MR1501-internal"
)

// SubpanelType is a coerced subpanel type. Unrecognized values keep the
// source text in Raw under SubpanelOther.
type SubpanelType struct {
	Kind SubpanelKind
	Raw  string
}

// Known reports whether the type matched a known controller.
func (t SubpanelType) Known() bool { return t.Kind != SubpanelOther }

// Blank reports whether the source supplied no type at all.
func (t SubpanelType) Blank() bool { return t.Kind == SubpanelOther && t.Raw == "" }

// String returns the canonical name for known kinds and the source text
// otherwise.
func (t SubpanelType) String() string {
	switch t.Kind {
	case SubpanelMR52:
		return SubpanelTypeMR52
	case SubpanelInternal:
		return SubpanelTypeInternal
	default:
		return t.Raw
	}
}

// Caption returns the type as shown on a subpanel box.
func (t SubpanelType) Caption() string {
	switch t.Kind {
	case SubpanelMR52:
		return SubpanelTypeMR52
	case SubpanelInternal:
		return "Internal SIO"
	}
	if t.Raw == "" {
		return "Unknown"
	}
	return t.Raw
}
