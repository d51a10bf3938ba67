// Package hierarchy assembles normalized records into the three-level
// Panel → Subpanel → Door tree drawn by one wiring diagram.
//
// # Ordering
//
// Panels, subpanels within a panel, and doors within a subpanel keep the
// order in which they were first seen in the input.
//
// # Identity and merging
//
// Subpanel identity is scoped to its owning panel, so the same subpanel id
// under two panels names two distinct subpanels. Doors are keyed by
// (subpanel, door id) within a panel; repeated records merge into the
// existing door, where a later non-blank slot value replaces the earlier
// one and blank values never erase recorded data.
//
// # Example
//
//	h, err := hierarchy.Build(slices.Values(records), hierarchy.Options{})
//	if errors.Is(err, errors.ErrCodeEmptyInput) {
//	    // nothing to draw; h.Warnings() explains why
//	}
//	for _, p := range h.Panels() {
//	    fmt.Println(p.ID, len(p.Subpanels()))
//	}
package hierarchy

import (
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
)

// Door is a physical door opening and its hardware assignments.
type Door struct {
	ID       string
	Label    string
	Address  int // controller address, 0 when unknown
	Hardware record.Hardware
	Line     int // line of the first record that created the door
}

// DisplayLabel returns the label, falling back to the id.
func (d *Door) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.ID
}

// Subpanel groups the doors wired to one secondary controller.
type Subpanel struct {
	ID   string
	Type record.SubpanelType

	doors []*Door
	index map[string]*Door
}

// Doors returns the doors in first-seen order.
func (s *Subpanel) Doors() []*Door { return s.doors }

// Door looks up a door by id.
func (s *Subpanel) Door(id string) (*Door, bool) {
	d, ok := s.index[id]
	return d, ok
}

// Panel is the root of one diagram.
type Panel struct {
	ID   string
	Type record.PanelType
	Line int // line of the first record that created the panel

	subpanels []*Subpanel
	index     map[string]*Subpanel
}

// Label returns the human-readable panel name used for captions and file
// names.
func (p *Panel) Label() string { return p.ID }

// Subpanels returns the subpanels in first-seen order.
func (p *Panel) Subpanels() []*Subpanel { return p.subpanels }

// Subpanel looks up a subpanel by id.
func (p *Panel) Subpanel(id string) (*Subpanel, bool) {
	s, ok := p.index[id]
	return s, ok
}

// DoorCount returns the number of doors across all subpanels.
func (p *Panel) DoorCount() int {
	n := 0
	for _, s := range p.subpanels {
		n += len(s.doors)
	}
	return n
}

// Hierarchy is the ordered mapping of panel id to panel tree, plus the
// warnings collected while building it.
type Hierarchy struct {
	panels   []*Panel
	index    map[string]*Panel
	warnings []errors.Warning
	rejected int
}

func newHierarchy() *Hierarchy {
	return &Hierarchy{index: make(map[string]*Panel)}
}

// Panels returns the panels in first-seen order.
func (h *Hierarchy) Panels() []*Panel { return h.panels }

// Panel looks up a panel by id.
func (h *Hierarchy) Panel(id string) (*Panel, bool) {
	p, ok := h.index[id]
	return p, ok
}

// Len returns the number of panels.
func (h *Hierarchy) Len() int { return len(h.panels) }

// Warnings returns the non-fatal defects found while building, in the order
// they were found.
func (h *Hierarchy) Warnings() []errors.Warning { return h.warnings }

// Rejected returns the number of input rows skipped as malformed.
func (h *Hierarchy) Rejected() int { return h.rejected }
