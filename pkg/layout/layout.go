// Package layout computes the deterministic box arrangement of one panel's
// wiring diagram.
//
// # Coordinate System
//
// Coordinates are in abstract units (pixels at scale 1) with the origin at
// the top-center of the panel box and y growing downward. Subpanel boxes form
// one row centered under the panel; door boxes stack below their subpanel.
// Renderers translate the layout using [Layout.Bounds].
//
// # Determinism
//
// [Compute] is a pure function of the panel tree and the options: the same
// inputs always produce identical coordinates. The ShowLines option only
// controls whether connector edges are emitted; box positions never depend
// on it.
package layout

import (
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy"
)

// Kind identifies what a box represents.
type Kind string

const (
	KindPanel    Kind = "panel"
	KindSubpanel Kind = "subpanel"
	KindDoor     Kind = "door"
)

// Box is one positioned rectangle with its label lines.
// X and Y locate the top-left corner.
type Box struct {
	ID    string
	Kind  Kind
	Label []string
	X, Y  float64
	W, H  float64
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// Edge is a connector line between two boxes, from the bottom of the parent
// to the top of the child.
type Edge struct {
	From, To string
	X1, Y1   float64
	X2, Y2   float64
}

// Column is one subpanel box and the door boxes stacked beneath it.
type Column struct {
	Subpanel Box
	Doors    []Box
}

// Layout is the computed arrangement of one panel.
type Layout struct {
	PanelID string
	Title   string
	Panel   Box
	Columns []Column
	Edges   []Edge
}

// Boxes returns every box in drawing order: the panel, then each subpanel
// followed by its doors.
func (l *Layout) Boxes() []Box {
	boxes := []Box{l.Panel}
	for _, c := range l.Columns {
		boxes = append(boxes, c.Subpanel)
		boxes = append(boxes, c.Doors...)
	}
	return boxes
}

// BoxCount returns the number of boxes without allocating.
func (l *Layout) BoxCount() int {
	n := 1
	for _, c := range l.Columns {
		n += 1 + len(c.Doors)
	}
	return n
}

// Rect is an axis-aligned bounding rectangle.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the smallest rectangle containing every box.
func (l *Layout) Bounds() Rect {
	r := Rect{MinX: l.Panel.X, MinY: l.Panel.Y, MaxX: l.Panel.Right(), MaxY: l.Panel.Bottom()}
	for _, b := range l.Boxes() {
		r.MinX = min(r.MinX, b.X)
		r.MinY = min(r.MinY, b.Y)
		r.MaxX = max(r.MaxX, b.Right())
		r.MaxY = max(r.MaxY, b.Bottom())
	}
	return r
}

// Box ids are stable per tree; edges refer to them.
func panelBoxID() string { return "panel" }

func subpanelBoxID(s *hierarchy.Subpanel) string { return "subpanel/" + s.ID }

func doorBoxID(s *hierarchy.Subpanel, d *hierarchy.Door) string {
	return "door/" + s.ID + "/" + d.ID
}
