package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/genoviz/pkg/chart/genome"
	"github.com/matzehuels/genoviz/pkg/errors"
)

// ReadFeatures decodes genome features from r.
//
// TSV rows are start, end, strand, feature and an optional name. JSON input
// is an array of objects with "start", "end", "strand", "feature" and
// "name" keys. Every decoded feature is validated with its row index.
func ReadFeatures(r io.Reader, f Format) ([]genome.Feature, error) {
	var out []genome.Feature
	if f == FormatJSON {
		if err := decodeJSON(r, &out); err != nil {
			return nil, err
		}
	} else {
		rows, err := readDelimited(r, f)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "start") {
			rows = rows[1:]
		}
		out = make([]genome.Feature, 0, len(rows))
		for i, row := range rows {
			ft, err := parseFeatureRow(row, i)
			if err != nil {
				return nil, err
			}
			out = append(out, ft)
		}
	}

	for i, ft := range out {
		if err := ft.Validate(i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ImportFeatures reads features from the file at path.
func ImportFeatures(path string) ([]genome.Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadFeatures(f, FormatFromPath(path))
}

func parseFeatureRow(row []string, i int) (genome.Feature, error) {
	if len(row) < 4 {
		return genome.Feature{}, errors.New(errors.ErrCodeInvalidColumn,
			"row %d: want start, end, strand, feature[, name], got %d columns", i, len(row))
	}
	start, err := errors.ParseCoordinate(row[0], i, "start")
	if err != nil {
		return genome.Feature{}, err
	}
	end, err := errors.ParseCoordinate(row[1], i, "end")
	if err != nil {
		return genome.Feature{}, err
	}
	strand, err := genome.ParseStrand(row[2])
	if err != nil {
		return genome.Feature{}, errors.Wrap(errors.ErrCodeInvalidStrand, err, "row %d", i)
	}
	typ, err := genome.ParseFeatureType(strings.TrimSpace(row[3]))
	if err != nil {
		return genome.Feature{}, errors.Wrap(errors.ErrCodeUnknownFeature, err, "row %d", i)
	}
	ft := genome.Feature{Start: start, End: end, Strand: strand, Type: typ}
	if len(row) > 4 {
		ft.Name = strings.TrimSpace(row[4])
	}
	return ft, nil
}

func decodeJSON(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return nil
}
