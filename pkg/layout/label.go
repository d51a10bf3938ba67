package layout

import (
	"fmt"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
)

// PanelLabel returns the caption lines of a panel box.
func PanelLabel(p *hierarchy.Panel) []string {
	lines := []string{"Panel", p.Label()}
	if !p.Type.Blank() {
		lines = append(lines, p.Type.String())
	}
	return lines
}

// SubpanelLabel returns the caption lines of a subpanel box.
func SubpanelLabel(s *hierarchy.Subpanel) []string {
	return []string{"Subpanel " + s.ID, s.Type.Caption()}
}

// DoorLabel returns the caption lines of a door box: the door label, the
// address when known, then one "PREFIX: value" line per present hardware
// slot in canonical order. Absent slots are omitted.
func DoorLabel(d *hierarchy.Door) []string {
	lines := []string{d.DisplayLabel()}
	if d.Address > 0 {
		lines = append(lines, fmt.Sprintf("Addr: %d", d.Address))
	}
	for _, s := range record.Slots() {
		if v, ok := d.Hardware.Get(s); ok {
			lines = append(lines, s.Prefix()+": "+v)
		}
	}
	return lines
}
