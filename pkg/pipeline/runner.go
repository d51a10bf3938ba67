package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy"
)

// Runner executes the pipeline. It holds no per-run state; multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner that logs to logger.
// If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete read → build → layout → render pipeline and
// writes one file per panel and format into opts.OutputDir, overwriting
// existing files.
//
// When the input yields no valid panel, Execute returns the partial result
// (hierarchy and warnings, no files) together with an EMPTY_INPUT error.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", shortID(result.RunID))

	// Stages 1 and 2: Read and Build
	h, err := r.extract(ctx, &opts, logger, result)
	if err != nil {
		return result, err
	}

	// Stages 3 and 4: Layout and Render, per panel
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("create output directory: %w", err)
	}
	renderStart := time.Now()
	jobs, warnings := planFiles(h.Panels(), &opts)
	result.Warnings = append(result.Warnings, warnings...)
	for _, w := range warnings {
		logger.Warn("renamed output", "detail", w.Message)
	}

	outputs := make([]panelOutput, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := r.runPanel(gctx, job, &opts, logger)
			if err != nil {
				return fmt.Errorf("panel %q: %w", job.panel.ID, err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	for _, out := range outputs {
		result.Panels = append(result.Panels, out.panel)
		result.Files = append(result.Files, out.files...)
	}
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered diagrams",
		"panels", len(result.Panels),
		"files", len(result.Files),
		"workers", opts.Workers,
		"duration", result.Stats.RenderTime)

	if hasJSON(opts.Formats) {
		f, err := writeReport(ctx, opts.OutputDir, opts.Input, result)
		if err != nil {
			return result, fmt.Errorf("write report: %w", err)
		}
		logger.Info("wrote report", "path", f.Path)
	}

	return result, nil
}

// Extract runs the read and build stages only. Like Execute it returns
// the hierarchy together with an EMPTY_INPUT error when no panel is valid.
func (r *Runner) Extract(ctx context.Context, opts Options) (*hierarchy.Hierarchy, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForExtract(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	result := &Result{}
	return r.extract(ctx, &opts, opts.Logger, result)
}

func (r *Runner) extract(ctx context.Context, opts *Options, logger *log.Logger, result *Result) (*hierarchy.Hierarchy, error) {
	rows, err := readRows(ctx, opts, logger, result)
	if err != nil {
		return nil, err
	}
	h, err := buildHierarchy(ctx, rows, opts, logger, result)
	result.Hierarchy = h
	if h != nil {
		result.Warnings = append(result.Warnings, h.Warnings()...)
	}
	if err != nil {
		if errors.Is(err, errors.ErrCodeEmptyInput) {
			logger.Error("no valid panels", "input", opts.Input, "rejected", result.Stats.Rejected)
		}
		return h, err
	}
	return h, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
