package record

import (
	"strconv"
	"strings"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
)

// DefaultNullMarkers are placeholder values treated as blank, compared
// case-insensitively after trimming.
var DefaultNullMarkers = []string{"-", "--", "---", "—", "–", "n/a", "none", "null", "nil", "nan", "<none>", "(none)"}

// DefaultPanelAliases maps canonical panel types to the spellings that
// coerce to them.
var DefaultPanelAliases = map[string][]string{
	PanelType1502: {"1502", "LP1502", "LP-1502"},
}

// DefaultSubpanelAliases maps canonical subpanel types to the spellings
// that coerce to them.
var DefaultSubpanelAliases = map[string][]string{
	SubpanelTypeMR52:     {"MR52", "MR-52"},
	SubpanelTypeInternal: {"MR1501-internal", "Internal SIO", "Internal"},
}

// Options configures a [Normalizer].
type Options struct {
	// NullMarkers are extra values, besides the empty string, read as blank.
	NullMarkers []string
	// PanelAliases maps a canonical panel type to accepted spellings.
	PanelAliases map[string][]string
	// SubpanelAliases maps a canonical subpanel type to accepted spellings.
	SubpanelAliases map[string][]string
}

// DefaultOptions returns the built-in null markers and type aliases.
func DefaultOptions() Options {
	return Options{
		NullMarkers:     DefaultNullMarkers,
		PanelAliases:    DefaultPanelAliases,
		SubpanelAliases: DefaultSubpanelAliases,
	}
}

// Normalizer turns [Raw] rows into [Record] values. It holds no mutable
// state after construction and is safe for concurrent use.
type Normalizer struct {
	nulls     map[string]struct{}
	panels    map[string]PanelKind
	subpanels map[string]SubpanelKind
}

// NewNormalizer builds a normalizer from opts. Canonical type names always
// match, whether or not they appear in the alias lists. Aliases for unknown
// canonical names are ignored.
func NewNormalizer(opts Options) *Normalizer {
	n := &Normalizer{
		nulls:     make(map[string]struct{}, len(opts.NullMarkers)),
		panels:    map[string]PanelKind{fold(PanelType1502): Panel1502},
		subpanels: map[string]SubpanelKind{fold(SubpanelTypeMR52): SubpanelMR52, fold(SubpanelTypeInternal): SubpanelInternal},
	}
	for _, m := range opts.NullMarkers {
		n.nulls[fold(m)] = struct{}{}
	}
	for name, aliases := range opts.PanelAliases {
		kind, ok := n.panels[fold(name)]
		if !ok {
			continue
		}
		for _, a := range aliases {
			n.panels[fold(a)] = kind
		}
	}
	for name, aliases := range opts.SubpanelAliases {
		kind, ok := n.subpanels[fold(name)]
		if !ok {
			continue
		}
		for _, a := range aliases {
			n.subpanels[fold(a)] = kind
		}
	}
	return n
}

// IsBlank reports whether v is empty, whitespace, or a null marker.
func (n *Normalizer) IsBlank(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	_, ok := n.nulls[fold(v)]
	return ok
}

// Normalize cleans raw into a Record. It returns a *errors.RowError with
// code MALFORMED_ROW when the panel or subpanel identifier is blank.
//
// A blank door identifier falls back to the door label; when both are blank
// the record describes only its panel and subpanel.
func (n *Normalizer) Normalize(raw Raw) (Record, error) {
	get := func(c Column) string {
		v := strings.TrimSpace(raw.Get(c))
		if n.IsBlank(v) {
			return ""
		}
		return v
	}

	panelID := standardizeID(get(ColPanel))
	if panelID == "" {
		return Record{}, errors.Malformed(raw.Line, string(ColPanel), "panel id is blank")
	}
	subpanelID := standardizeID(get(ColSubpanel))
	if subpanelID == "" {
		return Record{}, errors.Malformed(raw.Line, string(ColSubpanel), "subpanel id is blank (panel %q)", panelID)
	}

	rec := Record{
		Line:         raw.Line,
		PanelID:      panelID,
		PanelType:    n.ParsePanelType(get(ColPanelType)),
		SubpanelID:   subpanelID,
		SubpanelType: n.ParseSubpanelType(get(ColSubpanelType)),
		DoorID:       standardizeID(get(ColDoor)),
		DoorLabel:    collapseSpace(get(ColDoorLabel)),
		Address:      parseAddress(get(ColAddress)),
		Hardware:     Hardware{},
	}
	if rec.DoorID == "" {
		rec.DoorID = standardizeID(rec.DoorLabel)
	}
	for _, s := range Slots() {
		if v := get(s.Column()); v != "" {
			rec.Hardware[s] = v
		}
	}
	return rec, nil
}

// NormalizeRecord re-normalizes an existing record. For a record produced
// by Normalize it returns an equal record.
func (n *Normalizer) NormalizeRecord(r Record) (Record, error) {
	return n.Normalize(r.Raw())
}

// ParsePanelType coerces s with a case-insensitive exact match against the
// configured spellings. Unrecognized values are kept as PanelOther.
func (n *Normalizer) ParsePanelType(s string) PanelType {
	s = collapseSpace(s)
	if kind, ok := n.panels[fold(s)]; ok && s != "" {
		return PanelType{Kind: kind, Raw: s}
	}
	return PanelType{Kind: PanelOther, Raw: s}
}

// ParseSubpanelType coerces s with a case-insensitive exact match against
// the configured spellings. Unrecognized values are kept as SubpanelOther.
func (n *Normalizer) ParseSubpanelType(s string) SubpanelType {
	s = collapseSpace(s)
	if kind, ok := n.subpanels[fold(s)]; ok && s != "" {
		return SubpanelType{Kind: kind, Raw: s}
	}
	return SubpanelType{Kind: SubpanelOther, Raw: s}
}

func fold(s string) string {
	return strings.ToLower(collapseSpace(s))
}

// collapseSpace trims s and replaces inner whitespace runs with one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// standardizeID collapses whitespace and strips leading zeros from purely
// numeric identifiers, so "03" and "3" name the same subpanel.
func standardizeID(s string) string {
	s = collapseSpace(s)
	if s == "" || strings.Trim(s, "0123456789") != "" {
		return s
	}
	if t := strings.TrimLeft(s, "0"); t != "" {
		return t
	}
	return "0"
}

// parseAddress returns the positive integer in s, or 0.
func parseAddress(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
