package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/genoviz/pkg/errors"
)

// Format is an input encoding.
type Format string

const (
	FormatTSV  Format = "tsv"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Formats lists the supported input encodings.
var Formats = []Format{FormatTSV, FormatCSV, FormatJSON}

// ParseFormat resolves a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q (want tsv, csv or json)", s)
}

// FormatFromPath infers the format from the file extension. Unknown
// extensions (including .txt) are read as TSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".csv":
		return FormatCSV
	}
	return FormatTSV
}

func (f Format) comma() rune {
	if f == FormatCSV {
		return ','
	}
	return '\t'
}
