// Package config loads optional configuration files for the diagram
// generator.
//
// Files are TOML (.toml) or YAML (.yaml, .yml). Every key is optional;
// missing keys keep the built-in defaults and command-line flags override
// file values.
//
//	[columns]
//	panel = ["Controller", "Panel Name"]
//	door_position = ["DPOS", "Contact"]
//
//	null_markers = ["-", "n/a", "TBD"]
//
//	[types.subpanel]
//	MR52 = ["MR-52", "Mercury MR52"]
//
//	[layout]
//	door_height = 130
//
//	[theme]
//	door_fill = "#eaffea"
//
//	[render]
//	formats = ["png", "svg"]
//	show_lines = true
package config

import (
	"bytes"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/layout"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/render"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/source"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Config is the full file configuration.
type Config struct {
	// Columns maps a canonical column name to the CSV header aliases that
	// should resolve to it. Listed columns replace the default aliases.
	Columns     map[string][]string `toml:"columns" yaml:"columns"`
	// NullMarkers replaces the default placeholder values read as blank.
	NullMarkers []string            `toml:"null_markers" yaml:"null_markers"`
	Types       Types               `toml:"types" yaml:"types"`
	Input       Input               `toml:"input" yaml:"input"`
	Hierarchy   Builder             `toml:"hierarchy" yaml:"hierarchy"`
	Layout      Layout              `toml:"layout" yaml:"layout"`
	Theme       render.Theme        `toml:"theme" yaml:"theme"`
	Render      Render              `toml:"render" yaml:"render"`
}

// Types adds spellings for the known panel and subpanel types, keyed by
// canonical type name ("1502", "MR52", "MR1501-internal").
type Types struct {
	Panel    map[string][]string `toml:"panel" yaml:"panel"`
	Subpanel map[string][]string `toml:"subpanel" yaml:"subpanel"`
}

// Input selects the CSV layout.
type Input struct {
	Layout string `toml:"layout" yaml:"layout"` // auto, table or report
}

// Builder configures the optional hierarchy diagnostics.
type Builder struct {
	ReportConflicts bool `toml:"report_conflicts" yaml:"report_conflicts"`
	FlagCollisions  bool `toml:"flag_collisions" yaml:"flag_collisions"`
}

// Layout holds box geometry and door ordering.
type Layout struct {
	layout.Geometry `yaml:",inline"`
	OrderByAddress  bool `toml:"order_by_address" yaml:"order_by_address"`
}

// Render holds output settings.
type Render struct {
	Formats   []string `toml:"formats" yaml:"formats"`
	Engine    string   `toml:"engine" yaml:"engine"`
	ShowLines bool     `toml:"show_lines" yaml:"show_lines"`
	Workers   int      `toml:"workers" yaml:"workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input:  Input{Layout: string(source.FormatAuto)},
		Layout: Layout{Geometry: layout.DefaultGeometry()},
		Theme:  render.DefaultTheme(),
		Render: Render{
			Formats: []string{string(render.FormatPNG)},
			Engine:  string(render.EngineNative),
		},
	}
}

// Load reads and validates the configuration file at path. The syntax is
// chosen by extension.
func Load(path string) (*Config, error) {
	format, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

func formatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config file %q (use .toml, .yaml or .yml)", path)
	}
}

// Decode parses configuration data on top of [Default] and validates it.
func Decode(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks names and values that cannot be fixed by defaults.
func (c *Config) Validate() error {
	known := record.Columns()
	for col := range c.Columns {
		if !slices.Contains(known, record.Column(col)) {
			return errors.New(errors.ErrCodeInvalidConfig, "columns: unknown column %q (known: %s)", col, joinColumns(known))
		}
	}
	for name := range c.Types.Panel {
		if _, ok := record.DefaultPanelAliases[name]; !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "types.panel: unknown panel type %q", name)
		}
	}
	for name := range c.Types.Subpanel {
		if _, ok := record.DefaultSubpanelAliases[name]; !ok {
			return errors.New(errors.ErrCodeInvalidConfig, "types.subpanel: unknown subpanel type %q", name)
		}
	}
	if _, err := source.ParseFormat(c.Input.Layout); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "input.layout")
	}
	if _, err := render.ParseFormats(c.Render.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	if _, err := render.ParseEngine(c.Render.Engine); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.engine")
	}
	if c.Render.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render.workers must not be negative")
	}
	return c.Theme.Validate()
}

func joinColumns(cols []record.Column) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// SourceColumns returns the header aliases: defaults overridden by the
// configured columns.
func (c *Config) SourceColumns() source.Columns {
	override := make(source.Columns, len(c.Columns))
	for col, aliases := range c.Columns {
		override[record.Column(col)] = aliases
	}
	return source.DefaultColumns().Merge(override)
}

// NormalizerOptions returns the normalizer settings: configured null
// markers replace the defaults, configured type spellings extend them.
func (c *Config) NormalizerOptions() record.Options {
	opts := record.DefaultOptions()
	if c.NullMarkers != nil {
		opts.NullMarkers = c.NullMarkers
	}
	opts.PanelAliases = mergeAliases(opts.PanelAliases, c.Types.Panel)
	opts.SubpanelAliases = mergeAliases(opts.SubpanelAliases, c.Types.Subpanel)
	return opts
}

func mergeAliases(base, extra map[string][]string) map[string][]string {
	out := maps.Clone(base)
	for name, aliases := range extra {
		out[name] = append(slices.Clone(out[name]), aliases...)
	}
	return out
}

// LayoutOptions returns the layout engine settings.
func (c *Config) LayoutOptions() layout.Options {
	order := layout.OrderInsertion
	if c.Layout.OrderByAddress {
		order = layout.OrderAddress
	}
	return layout.Options{
		ShowLines: c.Render.ShowLines,
		Geometry:  c.Layout.Geometry.WithDefaults(),
		DoorOrder: order,
	}
}
