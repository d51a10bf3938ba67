package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/errors"
	"github.com/dylanmaniatakes/Door-Config-Generator/pkg/record"
)

// Format identifies an export layout.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatTable  Format = "table"
	FormatReport Format = "report"
)

// ParseFormat validates a format name. The empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatTable, FormatReport:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown input layout %q (use auto, table or report)", s)
	}
}

// Decode reads a CSV export from r, detecting its layout from the header.
// An input without any row yields no rows and no error.
func Decode(r io.Reader, cols Columns) ([]record.Raw, error) {
	return DecodeFormat(r, cols, FormatAuto)
}

// DecodeFormat reads a CSV export from r using the given layout.
func DecodeFormat(r io.Reader, cols Columns, format Format) ([]record.Raw, error) {
	cr := newCSVReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read header")
	}

	if format == FormatAuto {
		format = detect(header)
	}
	switch format {
	case FormatReport:
		return decodeReport(cr, header)
	case FormatTable:
		return decodeTable(cr, header, cols)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input layout %q", format)
	}
}

// ReadFile opens the export at path and decodes it with [Decode].
func ReadFile(path string, cols Columns) ([]record.Raw, error) {
	return ReadFileFormat(path, cols, FormatAuto)
}

// ReadFileFormat opens the export at path and decodes it with [DecodeFormat].
func ReadFileFormat(path string, cols Columns, format Format) ([]record.Raw, error) {
	if err := errors.ValidateInputPath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := DecodeFormat(f, cols, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return rows, nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// detect picks the report layout for a two-column Name,Value header.
func detect(header []string) Format {
	if len(header) >= 2 && headerKey(header[0]) == "name" && headerKey(header[1]) == "value" {
		rest := true
		for _, h := range header[2:] {
			if strings.TrimSpace(h) != "" {
				rest = false
			}
		}
		if rest {
			return FormatReport
		}
	}
	return FormatTable
}

func decodeTable(cr *csv.Reader, header []string, cols Columns) ([]record.Raw, error) {
	m := newMatcher(cols)

	index := make(map[int]record.Column, len(header))
	seen := make(map[record.Column]bool)
	for i, h := range header {
		col, ok := m.match(h)
		if !ok || seen[col] {
			continue
		}
		index[i] = col
		seen[col] = true
	}
	if len(index) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no recognized column in header %q", strings.Join(header, ","))
	}

	var rows []record.Raw
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read row")
		}
		line, _ := cr.FieldPos(0)
		if blankRow(fields) {
			continue
		}

		raw := record.Raw{Line: line, Fields: make(map[record.Column]string, len(index))}
		for i, col := range index {
			if i < len(fields) {
				raw.Fields[col] = fields[i]
			}
		}
		rows = append(rows, raw)
	}
	return rows, nil
}

func blankRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
