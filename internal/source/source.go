// Package source reads delimited (label, payload) rows from an input file as
// a lazy sequence. A malformed line is reported on its own row and never
// stops the rest of the file.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one input record. Err is set for rows that failed to parse; such
// rows still carry their 1-based line index for reporting.
type Row struct {
	Line    int
	Label   string
	Payload string
	Err     error
}

// Reader yields Rows from one delimited input stream.
type Reader struct {
	csv    *csv.Reader
	line   int
	header bool
}

// NewReader wraps r. When skipHeader is set the first record is discarded
// unconditionally, without validation.
func NewReader(r io.Reader, skipHeader bool) *Reader {
	cr := csv.NewReader(r)
	// Field count is validated per row so a short line becomes a row error
	// instead of aborting the reader.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr, header: skipHeader}
}

// Open opens path for reading. The caller owns the returned closer; an open
// failure is fatal for the file, not row-scoped.
func Open(path string, skipHeader bool) (*Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input %s: %w", path, err)
	}
	return NewReader(f, skipHeader), f, nil
}

// Next returns the next row. It returns ok=false when the input is
// exhausted; an empty input yields no rows and no error.
func (r *Reader) Next() (Row, bool) {
	for {
		rec, err := r.csv.Read()
		if err == io.EOF {
			return Row{}, false
		}
		r.line++
		if r.header {
			r.header = false
			continue
		}
		row := Row{Line: r.line}
		if err != nil {
			row.Err = fmt.Errorf("line %d: malformed row: %v", r.line, err)
			return row, true
		}
		if len(rec) != 2 {
			row.Err = fmt.Errorf("line %d: malformed row: expected 2 fields, got %d", r.line, len(rec))
			return row, true
		}
		row.Label = strings.TrimSpace(rec[0])
		row.Payload = strings.TrimSpace(rec[1])
		if row.Label == "" {
			row.Err = fmt.Errorf("line %d: empty label", r.line)
		}
		return row, true
	}
}
