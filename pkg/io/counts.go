package io

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/genoviz/pkg/chart/pie"
	"github.com/matzehuels/genoviz/pkg/errors"
)

// ReadCounts decodes pie counts from r, keeping input order. JSON input is
// an object mapping labels to counts; delimited input is label, count
// rows. The result is validated.
func ReadCounts(r io.Reader, f Format) (pie.Counts, error) {
	var out pie.Counts
	if f == FormatJSON {
		if err := decodeJSON(r, &out); err != nil {
			return nil, err
		}
	} else {
		rows, err := readDelimited(r, f)
		if err != nil {
			return nil, err
		}
		for i, row := range rows {
			if len(row) < 2 {
				return nil, errors.New(errors.ErrCodeInvalidColumn, "row %d: want label and count, got %d columns", i, len(row))
			}
			v, err := errors.ParseCoordinate(row[1], i, "count")
			if err != nil {
				return nil, err
			}
			out = append(out, pie.Entry{Label: strings.TrimSpace(row[0]), Value: v})
		}
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// ImportCounts reads counts from the file at path.
func ImportCounts(path string) (pie.Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCounts(f, FormatFromPath(path))
}
