package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/observability"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/render"
)

// panelJob is the per-panel unit of work: one panel and the base file
// name (without extension) its outputs are written under.
type panelJob struct {
	panel *hierarchy.Panel
	name  string
}

type panelOutput struct {
	panel PanelResult
	files []File
}

// runPanel lays out one panel, renders every requested format and writes
// the files. It touches nothing shared except the output directory.
func (r *Runner) runPanel(ctx context.Context, job panelJob, opts *Options, logger *log.Logger) (panelOutput, error) {
	hooks := observability.Pipeline()

	start := time.Now()
	l := layout.Compute(job.panel, opts.Layout)
	hooks.OnLayoutComplete(ctx, job.panel.ID, l.BoxCount(), time.Since(start))
	logger.Debug("computed layout",
		"panel", job.panel.ID,
		"boxes", l.BoxCount(),
		"edges", len(l.Edges),
		"duration", time.Since(start))

	out := panelOutput{panel: PanelResult{
		ID:        job.panel.ID,
		Subpanels: len(job.panel.Subpanels()),
		Doors:     job.panel.DoorCount(),
		Boxes:     l.BoxCount(),
		Edges:     len(l.Edges),
	}}

	formats := formatNames(opts.Formats)
	hooks.OnRenderStart(ctx, job.panel.ID, formats)
	start = time.Now()
	for _, format := range opts.Formats {
		data, err := render.Render(ctx, l, format, opts.Engine, opts.renderOptions()...)
		if err != nil {
			hooks.OnRenderComplete(ctx, job.panel.ID, formats, time.Since(start), err)
			return panelOutput{}, err
		}
		path := filepath.Join(opts.OutputDir, job.name+format.Extension())
		if err := writeFile(ctx, path, data); err != nil {
			hooks.OnRenderComplete(ctx, job.panel.ID, formats, time.Since(start), err)
			return panelOutput{}, err
		}
		logger.Info("wrote diagram", "panel", job.panel.ID, "path", path, "bytes", len(data))
		out.files = append(out.files, File{
			Panel:  job.panel.ID,
			Format: format,
			Path:   path,
			Size:   len(data),
		})
	}
	hooks.OnRenderComplete(ctx, job.panel.ID, formats, time.Since(start), nil)
	return out, nil
}

func formatNames(formats []render.Format) []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}
