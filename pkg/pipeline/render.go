package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/observability"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/render"
)

// planFiles assigns every panel a distinct base file name before any
// rendering starts, so names do not depend on worker scheduling. Names
// are compared case-insensitively; a clash gets a numeric suffix and a
// warning.
func planFiles(panels []*hierarchy.Panel, opts *Options) ([]panelJob, []errors.Warning) {
	var warnings []errors.Warning
	taken := make(map[string]bool, len(panels)+1)
	if hasJSON(opts.Formats) {
		taken[strings.TrimSuffix(ReportFile, filepath.Ext(ReportFile))] = true
	}

	jobs := make([]panelJob, 0, len(panels))
	for i, p := range panels {
		base, err := render.SafeFileName(p.ID)
		if err != nil {
			base = "panel_" + strconv.Itoa(i+1)
			warnings = append(warnings, errors.Warn(errors.ErrCodeOutputCollision, p.Line,
				"panel %q has no usable file name, writing %s", p.ID, base))
		}
		name := base
		for n := 2; taken[strings.ToLower(name)]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		if name != base {
			warnings = append(warnings, errors.Warn(errors.ErrCodeOutputCollision, p.Line,
				"panel %q maps to file name %s already in use, writing %s", p.ID, base, name))
		}
		taken[strings.ToLower(name)] = true
		jobs = append(jobs, panelJob{panel: p, name: name})
	}
	return jobs, warnings
}

func hasJSON(formats []render.Format) bool {
	return slices.Contains(formats, render.FormatJSON)
}

// writeFile writes data to path, replacing any existing file.
func writeFile(ctx context.Context, path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		observability.Output().OnFileError(ctx, path, err)
		return fmt.Errorf("write %s: %w", path, err)
	}
	observability.Output().OnFileWritten(ctx, path, len(data))
	return nil
}

// runReport is the JSON run summary written as ReportFile.
type runReport struct {
	RunID    string           `json:"run_id"`
	Input    string           `json:"input"`
	Panels   []PanelResult    `json:"panels"`
	Files    []File           `json:"files"`
	Warnings []errors.Warning `json:"warnings"`
}

func writeReport(ctx context.Context, dir, input string, result *Result) (File, error) {
	rep := runReport{
		RunID:    result.RunID,
		Input:    input,
		Panels:   result.Panels,
		Files:    result.Files,
		Warnings: result.Warnings,
	}
	if rep.Panels == nil {
		rep.Panels = []PanelResult{}
	}
	if rep.Files == nil {
		rep.Files = []File{}
	}
	if rep.Warnings == nil {
		rep.Warnings = []errors.Warning{}
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return File{}, err
	}
	data = append(data, '\n')

	path := filepath.Join(dir, ReportFile)
	if err := writeFile(ctx, path, data); err != nil {
		return File{}, err
	}
	return File{Format: render.FormatJSON, Path: path, Size: len(data)}, nil
}
