package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/observability"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/source"
)

// readRows decodes the CSV export named by opts.Input.
func readRows(ctx context.Context, opts *Options, logger *log.Logger, result *Result) ([]record.Raw, error) {
	hooks := observability.Pipeline()
	hooks.OnReadStart(ctx, opts.Input)

	start := time.Now()
	rows, err := source.ReadFileFormat(opts.Input, opts.Columns, opts.InputLayout)
	result.Stats.ReadTime = time.Since(start)
	result.Stats.Rows = len(rows)
	hooks.OnReadComplete(ctx, opts.Input, len(rows), result.Stats.ReadTime, err)
	if err != nil {
		return nil, err
	}

	logger.Info("read export",
		"input", opts.Input,
		"layout", opts.InputLayout,
		"rows", len(rows),
		"duration", result.Stats.ReadTime)
	return rows, nil
}

// buildHierarchy normalizes rows and groups them into panel trees.
func buildHierarchy(ctx context.Context, rows []record.Raw, opts *Options, logger *log.Logger, result *Result) (*hierarchy.Hierarchy, error) {
	start := time.Now()
	n := record.NewNormalizer(*opts.Normalizer)
	h, err := hierarchy.BuildFromRows(slices.Values(rows), n, opts.Hierarchy)
	result.Stats.BuildTime = time.Since(start)

	panels, warnings := 0, 0
	if h != nil {
		panels, warnings = h.Len(), len(h.Warnings())
		result.Stats.Rejected = h.Rejected()
	}
	observability.Pipeline().OnBuildComplete(ctx, panels, warnings, result.Stats.BuildTime, err)

	if h != nil {
		for _, w := range h.Warnings() {
			logger.Debug("row warning", "code", w.Code, "line", w.Line, "detail", w.Message)
		}
	}
	if err != nil {
		return h, err
	}

	logger.Info("built hierarchy",
		"panels", panels,
		"warnings", warnings,
		"rejected", result.Stats.Rejected,
		"duration", result.Stats.BuildTime)
	return h, nil
}
