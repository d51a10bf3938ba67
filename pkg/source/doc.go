// Package source decodes door configuration exports into raw rows.
//
// # Formats
//
// Two CSV layouts are supported and detected from the header row:
//
//   - Flat tables with one row per door (or per door fragment). Headers are
//     matched against [Columns] aliases ignoring case, spaces, underscores,
//     dashes and punctuation, so "Door Position", "door_position" and
//     "DoorPosition" all name the same column. Unknown headers are ignored
//     and missing columns read as blank.
//
//   - Avigilon "Door Configuration Report" exports with a Name,Value header
//     and one block of rows per door. See [DecodeReport].
//
// # Usage
//
//	rows, err := source.ReadFile("Door_Config_Report.csv", source.DefaultColumns())
//	if err != nil {
//	    return err
//	}
//	h, err := hierarchy.BuildFromRows(slices.Values(rows), normalizer, hierarchy.Options{})
//
// Decoding never rejects rows for missing identifiers; that is the job of
// the record normalizer, which turns such rows into warnings.
package source
