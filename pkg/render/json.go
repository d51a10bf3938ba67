package render

import (
	"encoding/json"
	"fmt"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout"
)

type jsonOutput struct {
	Panel   string     `json:"panel"`
	Title   string     `json:"title"`
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Margin  float64    `json:"margin"`
	Boxes   []jsonBox  `json:"boxes"`
	Edges   []jsonEdge `json:"edges"`
	Columns []jsonCol  `json:"columns"`
}

type jsonBox struct {
	ID     string      `json:"id"`
	Kind   layout.Kind `json:"kind"`
	Label  []string    `json:"label"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
}

type jsonEdge struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
}

type jsonCol struct {
	Subpanel string   `json:"subpanel"`
	Doors    []string `json:"doors"`
}

// JSON exports the layout as a pretty-printed document in image
// coordinates: the top-left corner of the frame is (0,0). Edges is an empty
// array when connector lines are off.
//
// JSON returns an error only if marshaling fails. It does not modify l and
// is safe to call concurrently.
func JSON(l *layout.Layout, opts ...Option) ([]byte, error) {
	r := newRenderer(opts...)
	f := frameOf(l, r.theme.Margin)

	out := jsonOutput{
		Panel:   l.PanelID,
		Title:   l.Title,
		Width:   f.w,
		Height:  f.h,
		Margin:  r.theme.Margin,
		Boxes:   make([]jsonBox, 0, l.BoxCount()),
		Edges:   make([]jsonEdge, 0, len(l.Edges)),
		Columns: make([]jsonCol, 0, len(l.Columns)),
	}
	for _, b := range l.Boxes() {
		out.Boxes = append(out.Boxes, jsonBox{
			ID: b.ID, Kind: b.Kind, Label: b.Label,
			X: f.x(b.X), Y: f.y(b.Y),
			Width: b.W, Height: b.H,
		})
	}
	for _, e := range l.Edges {
		out.Edges = append(out.Edges, jsonEdge{
			From: e.From, To: e.To,
			X1: f.x(e.X1), Y1: f.y(e.Y1),
			X2: f.x(e.X2), Y2: f.y(e.Y2),
		})
	}
	for _, c := range l.Columns {
		col := jsonCol{Subpanel: c.Subpanel.ID, Doors: make([]string, 0, len(c.Doors))}
		for _, d := range c.Doors {
			col.Doors = append(col.Doors, d.ID)
		}
		out.Columns = append(out.Columns, col)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}
