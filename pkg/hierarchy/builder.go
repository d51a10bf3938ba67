package hierarchy

import (
	"iter"
	"strconv"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
)

// Options configures a [Builder].
type Options struct {
	// FlagCollisions warns when one subpanel id appears under more than one
	// panel. The subpanels stay distinct either way.
	FlagCollisions bool

	// ReportConflicts warns when a later record replaces a different
	// non-blank value (slot, label, address, or type) of an earlier one.
	ReportConflicts bool
}

// Builder accumulates records into a [Hierarchy] in a single pass.
// A Builder is not safe for concurrent use.
type Builder struct {
	opts Options
	h    *Hierarchy

	owners  map[string]string // subpanel id → first owning panel id
	flagged map[string]bool   // panel/subpanel keys already reported
}

// NewBuilder returns an empty builder.
func NewBuilder(opts Options) *Builder {
	return &Builder{
		opts:    opts,
		h:       newHierarchy(),
		owners:  make(map[string]string),
		flagged: make(map[string]bool),
	}
}

// Warn records a warning.
func (b *Builder) Warn(w errors.Warning) {
	b.h.warnings = append(b.h.warnings, w)
}

// Reject records a row that failed normalization.
func (b *Builder) Reject(err error) {
	b.h.rejected++
	b.Warn(errors.AsWarning(err))
}

// Add merges one record into the tree.
func (b *Builder) Add(rec record.Record) {
	p := b.panel(rec)
	s := b.subpanel(p, rec)
	if !rec.HasDoor() {
		return
	}

	d, ok := s.index[rec.DoorID]
	if !ok {
		d = &Door{
			ID:       rec.DoorID,
			Label:    rec.DoorLabel,
			Address:  rec.Address,
			Hardware: rec.Hardware.Clone(),
			Line:     rec.Line,
		}
		s.doors = append(s.doors, d)
		s.index[d.ID] = d
		return
	}
	b.mergeDoor(p, s, d, rec)
}

// Hierarchy returns the built tree. When no panel was built it also returns
// an EMPTY_INPUT error; the returned hierarchy still carries the warnings.
func (b *Builder) Hierarchy() (*Hierarchy, error) {
	if len(b.h.panels) == 0 {
		return b.h, errors.New(errors.ErrCodeEmptyInput,
			"no valid panels found in input (%d rows skipped)", b.h.rejected)
	}
	return b.h, nil
}

func (b *Builder) panel(rec record.Record) *Panel {
	p, ok := b.h.index[rec.PanelID]
	if !ok {
		p = &Panel{ID: rec.PanelID, Type: rec.PanelType, Line: rec.Line, index: make(map[string]*Subpanel)}
		b.h.panels = append(b.h.panels, p)
		b.h.index[p.ID] = p
		b.checkPanelType(p, rec)
		return p
	}
	switch {
	case rec.PanelType.Blank():
	case p.Type.Blank():
		p.Type = rec.PanelType
		b.checkPanelType(p, rec)
	case p.Type.String() != rec.PanelType.String() && b.opts.ReportConflicts:
		b.Warn(errors.Warn(errors.ErrCodeConflictingValue, rec.Line,
			"panel %q: type %q conflicts with earlier %q; keeping %q", p.ID, rec.PanelType, p.Type, p.Type))
	}
	return p
}

func (b *Builder) checkPanelType(p *Panel, rec record.Record) {
	if p.Type.Known() || p.Type.Blank() {
		return
	}
	b.Warn(errors.Warn(errors.ErrCodeUnrecognizedType, rec.Line,
		"panel %q: unrecognized panel type %q, grouped as other", p.ID, p.Type.Raw))
}

func (b *Builder) subpanel(p *Panel, rec record.Record) *Subpanel {
	s, ok := p.index[rec.SubpanelID]
	if !ok {
		s = &Subpanel{ID: rec.SubpanelID, Type: rec.SubpanelType, index: make(map[string]*Door)}
		p.subpanels = append(p.subpanels, s)
		p.index[s.ID] = s
		b.checkSubpanelType(p, s, rec)
		b.checkCollision(p, s, rec)
		return s
	}
	switch {
	case rec.SubpanelType.Blank():
	case s.Type.Blank():
		s.Type = rec.SubpanelType
		b.checkSubpanelType(p, s, rec)
	case s.Type.String() != rec.SubpanelType.String() && b.opts.ReportConflicts:
		b.Warn(errors.Warn(errors.ErrCodeConflictingValue, rec.Line,
			"panel %q subpanel %q: type %q conflicts with earlier %q; keeping %q",
			p.ID, s.ID, rec.SubpanelType, s.Type, s.Type))
	}
	return s
}

func (b *Builder) checkSubpanelType(p *Panel, s *Subpanel, rec record.Record) {
	if s.Type.Known() || s.Type.Blank() {
		return
	}
	b.Warn(errors.Warn(errors.ErrCodeUnrecognizedType, rec.Line,
		"panel %q subpanel %q: unrecognized subpanel type %q, grouped as other", p.ID, s.ID, s.Type.Raw))
}

func (b *Builder) checkCollision(p *Panel, s *Subpanel, rec record.Record) {
	owner, seen := b.owners[s.ID]
	if !seen {
		b.owners[s.ID] = p.ID
		return
	}
	if !b.opts.FlagCollisions || owner == p.ID {
		return
	}
	key := p.ID + "\x00" + s.ID
	if b.flagged[key] {
		return
	}
	b.flagged[key] = true
	b.Warn(errors.Warn(errors.ErrCodeSubpanelCollision, rec.Line,
		"subpanel %q appears under panels %q and %q; treated as distinct subpanels", s.ID, owner, p.ID))
}

// mergeDoor applies last-non-blank-wins to every attribute of d.
func (b *Builder) mergeDoor(p *Panel, s *Subpanel, d *Door, rec record.Record) {
	conflict := func(what, old, next string) {
		if b.opts.ReportConflicts && old != next {
			b.Warn(errors.Warn(errors.ErrCodeConflictingValue, rec.Line,
				"panel %q subpanel %q door %q: %s %q replaces %q", p.ID, s.ID, d.ID, what, next, old))
		}
	}

	if rec.DoorLabel != "" {
		if d.Label != "" {
			conflict("label", d.Label, rec.DoorLabel)
		}
		d.Label = rec.DoorLabel
	}
	if rec.Address > 0 {
		if d.Address > 0 && d.Address != rec.Address {
			conflict("address", strconv.Itoa(d.Address), strconv.Itoa(rec.Address))
		}
		d.Address = rec.Address
	}
	for _, slot := range record.Slots() {
		v, ok := rec.Hardware.Get(slot)
		if !ok {
			continue
		}
		if old, had := d.Hardware.Get(slot); had {
			conflict(slot.String(), old, v)
		}
		d.Hardware[slot] = v
	}
}

// Build consumes records in a single pass and returns the hierarchy.
// See [Builder.Hierarchy] for the empty-input contract.
func Build(records iter.Seq[record.Record], opts Options) (*Hierarchy, error) {
	b := NewBuilder(opts)
	for rec := range records {
		b.Add(rec)
	}
	return b.Hierarchy()
}

// BuildFromRows normalizes each raw row with n and builds the hierarchy.
// Malformed rows are skipped and reported as warnings.
func BuildFromRows(rows iter.Seq[record.Raw], n *record.Normalizer, opts Options) (*Hierarchy, error) {
	b := NewBuilder(opts)
	for raw := range rows {
		rec, err := n.Normalize(raw)
		if err != nil {
			b.Reject(err)
			continue
		}
		b.Add(rec)
	}
	return b.Hierarchy()
}
