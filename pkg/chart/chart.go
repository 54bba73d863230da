// Package chart holds the types shared by the genoviz chart renderers:
// styles with per-kind defaults, tabular records, interaction callbacks and
// the chart kind enumeration.
//
// The renderers themselves live in the subpackages genome, pie, scatter and
// violin. Each exposes a Create function that validates its input, builds a
// session object owning all chart state, and appends the session's SVG to a
// mount.Mount.
package chart

import (
	"strconv"
	"strings"

	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/mount"
)

// Kind identifies a chart renderer.
type Kind string

const (
	KindGenome  Kind = "genome"
	KindPie     Kind = "pie"
	KindScatter Kind = "tsne"
	KindViolin  Kind = "violin"
)

// Kinds lists every chart kind in display order.
var Kinds = []Kind{KindGenome, KindPie, KindScatter, KindViolin}

// ParseKind resolves a kind name. "scatter" is accepted for tsne.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindGenome, KindPie, KindScatter, KindViolin:
		return k, nil
	case "scatter":
		return KindScatter, nil
	}
	return "", errors.New(errors.ErrCodeInvalidKind, "unknown chart kind %q (want genome, pie, tsne or violin)", s)
}

// Chart is a rendered chart session attached to a mount.
type Chart interface {
	mount.Node
	Kind() Kind
	// SVG returns the chart document reflecting the current session state.
	SVG() []byte
}

// Record is one row of tabular input.
type Record []string

// Float parses column col as a finite number. row is used for error
// context.
func (r Record) Float(col, row int) (float64, error) {
	if err := errors.ValidateColumn(col, len(r), row); err != nil {
		return 0, err
	}
	return errors.ParseCoordinate(r[col], row, columnName(col))
}

// Col returns column col, or "" when the record is too short.
func (r Record) Col(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

func columnName(col int) string {
	switch col {
	case 0:
		return "x"
	case 1:
		return "y"
	}
	return "column " + strconv.Itoa(col)
}

// Callback receives the record behind an element a user interacted with.
type Callback func(Record)

// Noop is the default callback.
func Noop(Record) {}
