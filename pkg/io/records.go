package io

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/errors"
)

// ReadRecords decodes delimited rows from r. Rows may have different
// lengths; blank lines and '#' comments are skipped. JSON input is an
// array of string arrays.
func ReadRecords(r io.Reader, f Format) ([]chart.Record, error) {
	var rows [][]string
	if f == FormatJSON {
		if err := decodeJSON(r, &rows); err != nil {
			return nil, err
		}
	} else {
		var err error
		if rows, err = readDelimited(r, f); err != nil {
			return nil, err
		}
	}
	out := make([]chart.Record, len(rows))
	for i, row := range rows {
		out[i] = chart.Record(row)
	}
	return out, nil
}

// ImportRecords reads records from the file at path.
func ImportRecords(path string) ([]chart.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRecords(f, FormatFromPath(path))
}

func readDelimited(r io.Reader, f Format) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = f.comma()
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = f == FormatCSV
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return rows, nil
}
