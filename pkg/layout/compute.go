package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy"
)

// Geometry holds the fixed box sizes and spacings. Zero fields take the
// values of [DefaultGeometry].
type Geometry struct {
	PanelWidth     float64 `toml:"panel_width" yaml:"panel_width" json:"panel_width"`
	PanelHeight    float64 `toml:"panel_height" yaml:"panel_height" json:"panel_height"`
	SubpanelWidth  float64 `toml:"subpanel_width" yaml:"subpanel_width" json:"subpanel_width"`
	SubpanelHeight float64 `toml:"subpanel_height" yaml:"subpanel_height" json:"subpanel_height"`
	SubpanelGap    float64 `toml:"subpanel_gap" yaml:"subpanel_gap" json:"subpanel_gap"`
	LevelGap       float64 `toml:"level_gap" yaml:"level_gap" json:"level_gap"`
	DoorWidth      float64 `toml:"door_width" yaml:"door_width" json:"door_width"`
	DoorHeight     float64 `toml:"door_height" yaml:"door_height" json:"door_height"`
	DoorGap        float64 `toml:"door_gap" yaml:"door_gap" json:"door_gap"`
}

// DefaultGeometry returns the standard diagram proportions.
func DefaultGeometry() Geometry {
	return Geometry{
		PanelWidth:     320,
		PanelHeight:    70,
		SubpanelWidth:  220,
		SubpanelHeight: 60,
		SubpanelGap:    40,
		LevelGap:       80,
		DoorWidth:      200,
		DoorHeight:     110,
		DoorGap:        24,
	}
}

// WithDefaults returns g with every non-positive field replaced by its
// default.
func (g Geometry) WithDefaults() Geometry {
	d := DefaultGeometry()
	fill := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&g.PanelWidth, d.PanelWidth)
	fill(&g.PanelHeight, d.PanelHeight)
	fill(&g.SubpanelWidth, d.SubpanelWidth)
	fill(&g.SubpanelHeight, d.SubpanelHeight)
	fill(&g.SubpanelGap, d.SubpanelGap)
	fill(&g.LevelGap, d.LevelGap)
	fill(&g.DoorWidth, d.DoorWidth)
	fill(&g.DoorHeight, d.DoorHeight)
	fill(&g.DoorGap, d.DoorGap)
	return g
}

// DoorOrder selects how doors are stacked under a subpanel.
type DoorOrder int

const (
	// OrderInsertion stacks doors in first-seen order.
	OrderInsertion DoorOrder = iota
	// OrderAddress stacks doors by ascending controller address; doors
	// without an address go last, ties keep first-seen order.
	OrderAddress
)

// Options configures [Compute].
type Options struct {
	ShowLines bool
	Geometry  Geometry
	DoorOrder DoorOrder
}

// Compute lays out one panel. It never fails for a tree produced by the
// hierarchy package; a panel without subpanels yields only the panel box.
func Compute(p *hierarchy.Panel, opts Options) *Layout {
	g := opts.Geometry.WithDefaults()

	l := &Layout{
		PanelID: p.ID,
		Title:   p.Label(),
		Panel: Box{
			ID:    panelBoxID(),
			Kind:  KindPanel,
			Label: PanelLabel(p),
			X:     -g.PanelWidth / 2,
			Y:     0,
			W:     g.PanelWidth,
			H:     g.PanelHeight,
		},
	}

	subpanels := p.Subpanels()
	n := len(subpanels)
	pitch := g.SubpanelWidth + g.SubpanelGap
	rowY := g.PanelHeight + g.LevelGap
	firstDoorY := rowY + g.SubpanelHeight + g.DoorGap

	l.Columns = make([]Column, 0, n)
	for i, s := range subpanels {
		cx := (float64(i) - float64(n-1)/2) * pitch
		col := Column{
			Subpanel: Box{
				ID:    subpanelBoxID(s),
				Kind:  KindSubpanel,
				Label: SubpanelLabel(s),
				X:     cx - g.SubpanelWidth/2,
				Y:     rowY,
				W:     g.SubpanelWidth,
				H:     g.SubpanelHeight,
			},
		}

		doors := OrderDoors(s.Doors(), opts.DoorOrder)
		col.Doors = make([]Box, 0, len(doors))
		for j, d := range doors {
			col.Doors = append(col.Doors, Box{
				ID:    doorBoxID(s, d),
				Kind:  KindDoor,
				Label: DoorLabel(d),
				X:     cx - g.DoorWidth/2,
				Y:     firstDoorY + float64(j)*(g.DoorHeight+g.DoorGap),
				W:     g.DoorWidth,
				H:     g.DoorHeight,
			})
		}
		l.Columns = append(l.Columns, col)
	}

	if opts.ShowLines {
		l.Edges = connectors(l)
	}
	return l
}

// connectors emits one edge per panel→subpanel and subpanel→door pair.
func connectors(l *Layout) []Edge {
	edges := make([]Edge, 0, l.BoxCount()-1)
	for _, c := range l.Columns {
		sb := c.Subpanel
		edges = append(edges, Edge{
			From: l.Panel.ID, To: sb.ID,
			X1: sb.CenterX(), Y1: l.Panel.Bottom(),
			X2: sb.CenterX(), Y2: sb.Y,
		})
		for _, db := range c.Doors {
			edges = append(edges, Edge{
				From: sb.ID, To: db.ID,
				X1: sb.CenterX(), Y1: sb.Bottom(),
				X2: db.CenterX(), Y2: db.Y,
			})
		}
	}
	return edges
}

// OrderDoors returns doors in stacking order. OrderAddress sorts by
// ascending address with unknown addresses last; ties keep input order.
func OrderDoors(doors []*hierarchy.Door, order DoorOrder) []*hierarchy.Door {
	if order != OrderAddress {
		return doors
	}
	sorted := slices.Clone(doors)
	slices.SortStableFunc(sorted, func(a, b *hierarchy.Door) int {
		return cmp.Compare(addressKey(a), addressKey(b))
	})
	return sorted
}

func addressKey(d *hierarchy.Door) int {
	if d.Address <= 0 {
		return math.MaxInt
	}
	return d.Address
}
