package source

import (
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
)

// Row names of the Avigilon Door Configuration Report.
const (
	reportBlockMarker = "Configuration and Communication Settings"
	reportPanel       = "Panel"
	reportHardware    = "Hardware"
)

// reportSlots maps hardware row names to slots.
var reportSlots = map[string]record.Slot{
	"Reader":           record.SlotReader,
	"Alternate Reader": record.SlotAltReader,
	"Door Position":    record.SlotDoorPosition,
	"Strike":           record.SlotStrike,
	"Rex #1":           record.SlotRex,
	"Rex #2":           record.SlotRex2,
}

// placementOrder lists the hardware rows consulted, in order, to find the
// subpanel a door is wired to. The alternate reader is never consulted.
var placementOrder = []record.Slot{
	record.SlotReader,
	record.SlotDoorPosition,
	record.SlotStrike,
	record.SlotRex,
	record.SlotRex2,
}

var wiringPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)subpanel\s+(\d+)\s+address\s+(\d+)`),
	regexp.MustCompile(`(?i)subpanel:(\d+)\s+\w+:?(\d+)`),
}

// Wiring is the subpanel and address parsed from a hardware value such as
// "Reader on subpanel 3 Address 1" or "Door Contact (Subpanel:3 Input:2)".
type Wiring struct {
	Subpanel int
	Address  int
	Raw      string
	Found    bool
}

// ParseWiring extracts the subpanel and address from a report value.
func ParseWiring(s string) Wiring {
	w := Wiring{Raw: strings.TrimSpace(s)}
	for _, re := range wiringPatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		sub, err1 := strconv.Atoi(m[1])
		addr, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		w.Subpanel, w.Address, w.Found = sub, addr, true
		return w
	}
	return w
}

// Value returns the text shown for the slot: the address when one was
// found, the raw text otherwise.
func (w Wiring) Value() string {
	if w.Found {
		return strconv.Itoa(w.Address)
	}
	return w.Raw
}

type reportRow struct {
	line        int
	name, value string
}

// DecodeReport reads an Avigilon Door Configuration Report.
//
// Each door block starts at the row above a "Configuration and Communication
// Settings" row, whose Name is the door name, and runs until the next block.
// The "Panel" row names the panel. Hardware rows after the "Hardware" row
// carry the wiring; the door sits on the subpanel of the first of Reader,
// Door Position, Strike, Rex #1 and Rex #2 that names one, and that row's
// address becomes the door address. Subpanel 0 is the panel's internal SIO.
//
// A block without a panel or without a wired subpanel still yields a row so
// the normalizer can report it.
func DecodeReport(r io.Reader) ([]record.Raw, error) {
	cr := newCSVReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read header")
	}
	if detect(header) != FormatReport {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "expected a Name,Value header, got %q", strings.Join(header, ","))
	}
	return decodeReport(cr, header)
}

func decodeReport(cr *csv.Reader, _ []string) ([]record.Raw, error) {
	var rows []reportRow
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read row")
		}
		line, _ := cr.FieldPos(0)
		row := reportRow{line: line, name: strings.TrimSpace(fields[0])}
		if len(fields) > 1 {
			row.value = strings.TrimSpace(fields[1])
		}
		rows = append(rows, row)
	}

	var starts []int
	for i, row := range rows {
		if row.name == reportBlockMarker && i > 0 {
			starts = append(starts, i-1)
		}
	}

	out := make([]record.Raw, 0, len(starts))
	for i, start := range starts {
		end := len(rows)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		out = append(out, reportDoor(rows[start:end]))
	}
	return out, nil
}

func reportDoor(block []reportRow) record.Raw {
	name := block[0].name
	raw := record.Raw{
		Line: block[0].line,
		Fields: map[record.Column]string{
			record.ColDoor:      name,
			record.ColDoorLabel: name,
		},
	}

	hardware := -1
	for i, row := range block {
		switch {
		case row.name == reportPanel && raw.Fields[record.ColPanel] == "":
			raw.Fields[record.ColPanel] = row.value
			raw.Fields[record.ColPanelType] = record.PanelType1502
		case row.name == reportHardware && hardware < 0:
			hardware = i
		}
	}
	if hardware < 0 {
		return raw
	}

	wiring := make(map[record.Slot]Wiring)
	for _, row := range block[hardware+1:] {
		slot, ok := reportSlots[row.name]
		if !ok {
			continue
		}
		w := ParseWiring(row.value)
		wiring[slot] = w
		if v := w.Value(); v != "" {
			raw.Fields[slot.Column()] = v
		}
	}

	for _, slot := range placementOrder {
		w, ok := wiring[slot]
		if !ok || !w.Found {
			continue
		}
		raw.Fields[record.ColSubpanel] = strconv.Itoa(w.Subpanel)
		if w.Subpanel == 0 {
			raw.Fields[record.ColSubpanelType] = record.SubpanelTypeInternal
		} else {
			raw.Fields[record.ColSubpanelType] = record.SubpanelTypeMR52
		}
		if w.Address > 0 {
			raw.Fields[record.ColAddress] = strconv.Itoa(w.Address)
		}
		break
	}
	return raw
}
