// Package pkg provides the libraries behind door-diagrams, which turns a door
// hardware configuration export into one wiring diagram per panel.
//
// # Overview
//
// An access-control export lists, row by row, which panel a door is wired
// to, through which subpanel, and which reader, door position, strike and
// REX inputs it uses. The libraries group those rows into a
// panel → subpanel → door tree and draw each panel as a diagram: the panel
// box on top, its subpanels in a row beneath it and each subpanel's doors
// stacked under it.
//
// # Architecture
//
// The data flow:
//
//	CSV export (flat table or Name,Value report)
//	         ↓
//	    [source] package (decode rows, map headers to columns)
//	         ↓
//	    [record] package (trim, coerce, recognize panel/subpanel types)
//	         ↓
//	    [hierarchy] package (group, merge split rows, collect warnings)
//	         ↓
//	    [layout] package (box geometry per panel)
//	         ↓
//	    [render] package (PNG, SVG, JSON, DOT; native or Graphviz)
//
// [pipeline] runs all stages for a whole export and writes the files.
//
// # Quick Start
//
//	rows, _ := source.ReadFile("Door_Config_Report.csv", source.DefaultColumns())
//	n := record.NewNormalizer(record.DefaultOptions())
//	h, err := hierarchy.BuildFromRows(slices.Values(rows), n, hierarchy.Options{})
//	if err != nil {
//	    return err // EMPTY_INPUT when no row produced a panel
//	}
//	for _, p := range h.Panels() {
//	    l := layout.Compute(p, layout.Options{ShowLines: true})
//	    img, _ := render.PNG(l)
//	    name, _ := render.SafeFileName(p.Label())
//	    os.WriteFile(name+".png", img, 0o644)
//	}
//
// # Supporting Packages
//
// [config] - TOML and YAML configuration: column aliases, type spellings,
// geometry, theme and output settings.
//
// [errors] - Coded errors and row-level warnings shared by all stages.
//
// [observability] - Hooks for timing and tracing the pipeline stages.
//
// [fonts] - Embedded font used for text measurement and PNG output.
//
// [buildinfo] - Version and packaged-build information set through ldflags.
//
// # Testing
//
//	go test ./...
//
// [source]: https://pkg.go.dev/github.com/dylanmaniatakes/Door-Config-Generator/pkg/source
// [record]: https://pkg.go.dev/github.com/dylanmaniatakes/Door-Config-Generator/pkg/record
// [hierarchy]: https://pkg.go.dev/github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy
// [layout]: https://pkg.go.dev/github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout
// [render]: https://pkg.go.dev/github.com/dylanmaniatakes/Door-Config-Generator/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/dylanmaniatakes/Door-Config-Generator/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/dylanmaniatakes/Door-Config-Generator/pkg/config
// [errors]: https://pkg.go.dev/github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors
// [observability]: https://pkg.go.dev/github.com/dylanmaniatakes/Door-Config-Generator/pkg/observability
// [fonts]: https://pkg.go.dev/github.com/dylanmaniatakes/Door-Config-Generator/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/dylanmaniatakes/Door-Config-Generator/pkg/buildinfo
package pkg
