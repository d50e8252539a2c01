package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Warning records a non-fatal problem with one source row. Bad rows never
// abort a read; they surface here and the row continues through the pass
// with whatever fields it had.
type Warning struct {
	Row     int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("row %d: %s", w.Row, w.Message)
}

// readRows parses CSV content into fixed-width rows. The header row is
// skipped (column order is fixed by convention, not self-describing), short
// rows are padded with empty fields, long rows truncated, and unparsable
// rows come back all-empty so downstream cleansing can coerce them.
func readRows(r io.Reader, width int) ([][]string, []Warning, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("empty file: no header row")
		}
		return nil, nil, fmt.Errorf("failed to read header row: %w", err)
	}

	var rows [][]string
	var warnings []Warning
	rowNum := 1 // header is row 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			warnings = append(warnings, Warning{Row: rowNum, Message: fmt.Sprintf("parse error: %v", err)})
			rows = append(rows, make([]string, width))
			continue
		}

		switch {
		case len(row) < width:
			warnings = append(warnings, Warning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(row), width),
			})
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		case len(row) > width:
			warnings = append(warnings, Warning{
				Row:     rowNum,
				Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(row), width),
			})
			row = row[:width]
		}

		rows = append(rows, row)
	}

	return rows, warnings, nil
}

// stripBOM drops a UTF-8 byte order mark from the start of the stream
func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(3); err == nil && lead[0] == 0xef && lead[1] == 0xbb && lead[2] == 0xbf {
		_, _ = br.Discard(3)
	}
	return br
}
