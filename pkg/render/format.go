package render

import (
	"slices"
	"strings"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
)

// Format is an output file format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
)

// Formats lists every supported format.
var Formats = []Format{FormatPNG, FormatSVG, FormatJSON, FormatDOT}

// Extension returns the file extension, including the dot.
func (f Format) Extension() string { return "." + string(f) }

// ValidateFormat checks that a format is supported. Names are
// case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, Format(format)) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, joinFormats())
	}
	return nil
}

// ParseFormats validates names and returns them as formats, dropping
// duplicates while keeping the first-seen order.
func ParseFormats(names []string) ([]Format, error) {
	out := make([]Format, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if err := ValidateFormat(n); err != nil {
			return nil, err
		}
		if f := Format(n); !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out, nil
}

func joinFormats() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Engine selects how raster and vector images are produced.
type Engine string

const (
	// EngineNative draws with the built-in rasterizer and SVG writer.
	EngineNative Engine = "native"
	// EngineGraphviz hands a pinned-position DOT graph to Graphviz neato.
	EngineGraphviz Engine = "graphviz"
)

// ParseEngine validates an engine name. The empty string selects
// [EngineNative].
func ParseEngine(name string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(name))); e {
	case "":
		return EngineNative, nil
	case EngineNative, EngineGraphviz:
		return e, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid engine: %q (must be one of: native, graphviz)", name)
	}
}

// String implements fmt.Stringer.
func (e Engine) String() string { return string(e) }
