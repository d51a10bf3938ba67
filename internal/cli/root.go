package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/config"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/hierarchy"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/pipeline"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/render"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/source"
)

// generateFlags holds the command-line flags of the root command.
// Flags that were set explicitly override the configuration file.
type generateFlags struct {
	input          string   // CSV export path
	output         string   // output directory
	configPath     string   // optional TOML or YAML configuration
	layout         string   // input layout: auto, table, report
	formats        []string // output formats: png (default), svg, json, dot
	engine         string   // native (default) or graphviz
	workers        int      // concurrent panels, 0 = one per CPU
	showLines      bool     // draw connector lines
	orderByAddress bool     // stack doors by address instead of input order
	gui            bool     // open the interactive launcher
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "door configuration CSV export")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "directory the diagrams are written to")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "configuration file (.toml, .yaml)")
	cmd.Flags().StringVar(&f.layout, "layout", string(source.FormatAuto), "input layout: auto, table, report")
	cmd.Flags().StringSliceVarP(&f.formats, "format", "f", nil, "output format(s): png (default), svg, json, dot (comma-separated)")
	cmd.Flags().StringVar(&f.engine, "engine", string(render.EngineNative), "drawing engine: native, graphviz")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "panels rendered concurrently (default: one per CPU)")
	cmd.Flags().BoolVar(&f.showLines, "show-lines", false, "draw connector lines between panel, subpanels and doors")
	cmd.Flags().BoolVar(&f.orderByAddress, "order-by-address", false, "stack doors by controller address instead of input order")
	cmd.Flags().BoolVar(&f.gui, "gui", false, "choose the input file and output directory interactively")

	_ = cmd.MarkFlagFilename("input", "csv")
	_ = cmd.MarkFlagDirname("output")
	_ = cmd.MarkFlagFilename("config", "toml", "yaml", "yml")
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were set on the command line.
func (f *generateFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("layout") {
		cfg.Input.Layout = f.layout
	}
	if changed("format") {
		cfg.Render.Formats = f.formats
	}
	if changed("engine") {
		cfg.Render.Engine = f.engine
	}
	if changed("workers") {
		cfg.Render.Workers = f.workers
	}
	if changed("show-lines") {
		cfg.Render.ShowLines = f.showLines
	}
	if changed("order-by-address") {
		cfg.Layout.OrderByAddress = f.orderByAddress
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pipelineOptions converts a validated configuration into pipeline options.
func pipelineOptions(cfg *config.Config, input, output string) (pipeline.Options, error) {
	formats, err := render.ParseFormats(cfg.Render.Formats)
	if err != nil {
		return pipeline.Options{}, err
	}
	engine, err := render.ParseEngine(cfg.Render.Engine)
	if err != nil {
		return pipeline.Options{}, err
	}
	inputLayout, err := source.ParseFormat(cfg.Input.Layout)
	if err != nil {
		return pipeline.Options{}, err
	}
	norm := cfg.NormalizerOptions()
	return pipeline.Options{
		Input:       input,
		InputLayout: inputLayout,
		Columns:     cfg.SourceColumns(),
		Normalizer:  &norm,
		Hierarchy: hierarchy.Options{
			ReportConflicts: cfg.Hierarchy.ReportConflicts,
			FlagCollisions:  cfg.Hierarchy.FlagCollisions,
		},
		Layout:    cfg.LayoutOptions(),
		OutputDir: output,
		Formats:   formats,
		Engine:    engine,
		Theme:     cfg.Theme,
		Workers:   cfg.Render.Workers,
	}, nil
}

// shouldLaunch reports whether the interactive launcher opens: on --gui,
// or for a packaged build started without an input file.
func (c *CLI) shouldLaunch(f *generateFlags) bool {
	return f.gui || (c.packaged && f.input == "")
}

// runGenerate handles the root command.
func (c *CLI) runGenerate(cmd *cobra.Command, f *generateFlags) error {
	cfg, err := f.loadConfig(cmd)
	if err != nil {
		return err
	}

	input, output := f.input, f.output
	if c.shouldLaunch(f) {
		picked, ok, err := c.launch(launchSettings{
			Input:     input,
			Output:    output,
			ShowLines: cfg.Render.ShowLines,
		})
		if err != nil {
			return fmt.Errorf("launcher: %w", err)
		}
		if !ok {
			printInfo("Cancelled")
			return nil
		}
		input, output = picked.Input, picked.Output
		cfg.Render.ShowLines = picked.ShowLines
	}

	if input == "" || output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "--input and --output are required unless --gui is used")
	}

	opts, err := pipelineOptions(cfg, input, output)
	if err != nil {
		return err
	}
	return c.generate(cmd.Context(), opts)
}

// generate runs the pipeline and prints the summary.
func (c *CLI) generate(ctx context.Context, opts pipeline.Options) error {
	opts.Logger = loggerFromContext(ctx)

	spinner := newSpinner(ctx, fmt.Sprintf("Generating diagrams from %s...", opts.Input))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		if result != nil && errors.Is(err, errors.ErrCodeEmptyInput) {
			printWarnings(result.Warnings)
			printDetail("No panels found in %q. Check that the file matches the expected format.", opts.Input)
		}
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Wrote %d diagram(s) for %d panel(s)", len(result.Files), len(result.Panels))
	for _, f := range result.Files {
		printFile(f.Path)
	}
	printStats(result)
	if len(result.Warnings) > 0 {
		printNewline()
		printWarnings(result.Warnings)
	}
	return nil
}
