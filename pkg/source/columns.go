package source

import (
	"maps"
	"slices"
	"strings"
	"unicode"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
)

// Columns maps each canonical column to the header names accepted for it.
// The canonical name itself always matches.
type Columns map[record.Column][]string

// DefaultColumns returns the header aliases of common export tools.
func DefaultColumns() Columns {
	return Columns{
		record.ColPanel:        {"Panel", "Panel ID", "Panel Name", "Controller"},
		record.ColPanelType:    {"Panel Type", "Controller Type", "Panel Model"},
		record.ColSubpanel:     {"Subpanel", "Sub Panel", "Subpanel ID", "Subpanel Number", "SIO"},
		record.ColSubpanelType: {"Subpanel Type", "Sub Panel Type", "Subpanel Model", "SIO Type"},
		record.ColDoor:         {"Door", "Door ID", "Door Number"},
		record.ColDoorLabel:    {"Door Label", "Door Name", "Label", "Name"},
		record.ColAddress:      {"Address", "Addr", "Door Address", "Door Index"},
		"reader":               {"Reader", "RDR"},
		"door_position":        {"Door Position", "DPOS", "Door Contact", "DC"},
		"strike":               {"Strike", "Lock", "Lock Output"},
		"rex":                  {"Rex", "Rex 1", "Rex #1", "REX1", "Request to Exit"},
		"alt_reader":           {"Alt Reader", "Alternate Reader", "Alt RDR"},
		"rex2":                 {"Rex 2", "Rex #2", "REX2"},
	}
}

// Merge returns a copy of c where every column listed in other is replaced
// by other's aliases.
func (c Columns) Merge(other Columns) Columns {
	out := make(Columns, len(c)+len(other))
	for col, aliases := range c {
		out[col] = slices.Clone(aliases)
	}
	for col, aliases := range other {
		out[col] = slices.Clone(aliases)
	}
	return out
}

// matcher resolves header names to canonical columns.
type matcher map[string]record.Column

func newMatcher(c Columns) matcher {
	m := make(matcher)
	// Canonical names win over aliases; iterate in a fixed order so that an
	// alias claimed by two columns resolves the same way on every run.
	for _, col := range record.Columns() {
		m[headerKey(string(col))] = col
	}
	for _, col := range slices.Sorted(maps.Keys(c)) {
		for _, a := range c[col] {
			k := headerKey(a)
			if _, taken := m[k]; !taken && k != "" {
				m[k] = col
			}
		}
	}
	return m
}

func (m matcher) match(header string) (record.Column, bool) {
	col, ok := m[headerKey(header)]
	return col, ok
}

// headerKey folds a header to lowercase letters and digits.
func headerKey(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimPrefix(s, "\ufeff") {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
