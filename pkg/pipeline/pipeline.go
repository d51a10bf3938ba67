// Package pipeline runs the door diagram pipeline end to end.
//
// The pipeline has four stages with explicit handoff between them:
//
//  1. Read: decode the CSV export into raw rows ([source.ReadFileFormat])
//  2. Build: normalize rows and group them into panel trees ([hierarchy.BuildFromRows])
//  3. Layout: compute one positioned layout per panel ([layout.Compute])
//  4. Render: encode each layout in every requested format and write the files
//
// Stages 1 and 2 run once per input file. Stages 3 and 4 run per panel on a
// bounded worker pool; panels share no state, so the files written do not
// depend on the number of workers.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:     "Door_Config_Report.csv",
//	    OutputDir: "diagrams",
//	    Layout:    layout.Options{ShowLines: true},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, f := range result.Files {
//	    fmt.Println(f.Panel, f.Path)
//	}
//
// Run the first two stages only:
//
//	h, err := runner.Extract(ctx, opts)
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/render"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/source"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Launcher
// =============================================================================

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = render.FormatPNG

// ReportFile is the run report written next to the diagrams when JSON
// output is requested.
const ReportFile = "report.json"

// DefaultWorkers returns the default render concurrency.
func DefaultWorkers() int {
	return max(1, runtime.GOMAXPROCS(0))
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Read options
	Input       string         // path of the CSV export
	InputLayout source.Format  // auto (default), table or report
	Columns     source.Columns // header aliases; nil uses source.DefaultColumns

	// Build options
	Normalizer *record.Options // nil uses record.DefaultOptions
	Hierarchy  hierarchy.Options

	// Layout options
	Layout layout.Options

	// Render options
	OutputDir string
	Formats   []render.Format
	Engine    render.Engine
	Theme     render.Theme
	Scale     float64 // PNG pixel density; 0 uses the theme scale
	Workers   int

	// Runtime options
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and in the run report.
	RunID string

	// Hierarchy is the built panel forest.
	Hierarchy *hierarchy.Hierarchy

	// Panels lists the rendered panels in input order.
	Panels []PanelResult

	// Files lists every written file in panel order, then format order.
	Files []File

	// Warnings aggregates row-level warnings and output naming warnings.
	Warnings []errors.Warning

	// Stats contains timing and size information.
	Stats Stats
}

// PanelResult describes one rendered panel.
type PanelResult struct {
	ID        string `json:"id"`
	Subpanels int    `json:"subpanels"`
	Doors     int    `json:"doors"`
	Boxes     int    `json:"boxes"`
	Edges     int    `json:"edges"`
}

// File is one written diagram file.
type File struct {
	Panel  string        `json:"panel"`
	Format render.Format `json:"format"`
	Path   string        `json:"path"`
	Size   int           `json:"size"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Rejected   int
	ReadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration // layout, render and write, wall clock
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForExtract(); err != nil {
		return err
	}
	if o.OutputDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output directory is required")
	}
	if err := o.SetRenderDefaults(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForExtract checks the fields needed to read and build.
func (o *Options) ValidateForExtract() error {
	if err := errors.ValidateInputPath(o.Input); err != nil {
		return err
	}
	if o.InputLayout == "" {
		o.InputLayout = source.FormatAuto
	}
	if _, err := source.ParseFormat(string(o.InputLayout)); err != nil {
		return err
	}
	if o.Columns == nil {
		o.Columns = source.DefaultColumns()
	}
	if o.Normalizer == nil {
		opts := record.DefaultOptions()
		o.Normalizer = &opts
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults fills and checks the layout and render settings.
func (o *Options) SetRenderDefaults() error {
	o.Layout.Geometry = o.Layout.Geometry.WithDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []render.Format{DefaultFormat}
	}
	for _, f := range o.Formats {
		if err := render.ValidateFormat(string(f)); err != nil {
			return err
		}
	}
	engine, err := render.ParseEngine(string(o.Engine))
	if err != nil {
		return err
	}
	o.Engine = engine
	o.Theme = o.Theme.WithDefaults()
	if err := o.Theme.Validate(); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must not be negative")
	}
	if o.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "workers must not be negative")
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// renderOptions returns the renderer options for this run.
func (o *Options) renderOptions() []render.Option {
	opts := []render.Option{render.WithTheme(o.Theme)}
	if o.Scale > 0 {
		opts = append(opts, render.WithScale(o.Scale))
	}
	return opts
}
