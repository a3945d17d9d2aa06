package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Table is a loaded grid: an optional header plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// CSVOptions controls how ReadCSV interprets its input.
type CSVOptions struct {
	HasHeader bool
	Comma     rune // Field delimiter, ',' when zero
}

// ErrEmptyFile is returned when the input holds no records.
var ErrEmptyFile = errors.New("empty file")

// ReadCSV parses all records from r. Rows may have different lengths;
// the engine narrows its column count to the shortest row.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	cr := csv.NewReader(NewCleanReader(r))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	t := &Table{}
	if opts.HasHeader {
		t.Header = records[0]
		records = records[1:]
	}
	t.Rows = records
	return t, nil
}

// LoadCSVFile opens path and reads it with ReadCSV.
func LoadCSVFile(path string, opts CSVOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f, opts)
}
