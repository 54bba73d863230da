package genome

import (
	"strings"

	"github.com/matzehuels/genoviz/pkg/errors"
)

// Strand is the orientation of a feature on the chromosome.
type Strand string

const (
	Forward Strand = "+"
	Reverse Strand = "-"
)

// ParseStrand accepts "+" or "-".
func ParseStrand(s string) (Strand, error) {
	switch st := Strand(strings.TrimSpace(s)); st {
	case Forward, Reverse:
		return st, nil
	}
	return "", errors.New(errors.ErrCodeInvalidStrand, "strand %q must be + or -", s)
}

// FeatureType is the kind of a genomic feature. It selects the glyph used to
// draw it.
type FeatureType int

const (
	unknownFeature FeatureType = iota
	Exon
	Gene
	Transcript
	CDS
	StopCodon
	ThreePrimeUTR
	TE
	GRNA
)

var featureNames = [...]string{
	unknownFeature: "",
	Exon:          "exon",
	Gene:          "gene",
	Transcript:    "transcript",
	CDS:           "CDS",
	StopCodon:     "stop_codon",
	ThreePrimeUTR: "three_prime_utr",
	TE:            "te",
	GRNA:          "grna",
}

func (t FeatureType) String() string {
	if t <= unknownFeature || int(t) >= len(featureNames) {
		return "unknown"
	}
	return featureNames[t]
}

// ParseFeatureType resolves a feature name as written in annotation files.
// Matching is exact except that "cds" is accepted for CDS.
func ParseFeatureType(s string) (FeatureType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return unknownFeature, errors.New(errors.ErrCodeUnknownFeature, "feature type is empty")
	}
	for i, name := range featureNames[1:] {
		if s == name {
			return FeatureType(i + 1), nil
		}
	}
	if strings.EqualFold(s, "cds") {
		return CDS, nil
	}
	return unknownFeature, errors.New(errors.ErrCodeUnknownFeature, "unknown feature type %q", s)
}

func (t FeatureType) MarshalText() ([]byte, error) {
	if t <= unknownFeature || int(t) >= len(featureNames) {
		return nil, errors.New(errors.ErrCodeUnknownFeature, "unknown feature type %d", int(t))
	}
	return []byte(featureNames[t]), nil
}

func (t *FeatureType) UnmarshalText(b []byte) error {
	v, err := ParseFeatureType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Glyph is how a feature type is drawn: a rectangle whose top sits at
// Offset on the 0-100 track scale, Height pixels tall.
type Glyph struct {
	Offset float64
	Height float64
	Fill   string
}

var glyphs = map[FeatureType]Glyph{
	Exon:          {Offset: 20, Height: 10, Fill: "#0E0080"},
	Gene:          {Offset: 20, Height: 10, Fill: "#0E0080"},
	Transcript:    {Offset: 20, Height: 10, Fill: "#0E0080"},
	CDS:           {Offset: 20, Height: 15, Fill: "#0E0080"},
	StopCodon:     {Offset: 20, Height: 15, Fill: "#000"},
	ThreePrimeUTR: {Offset: 20, Height: 10, Fill: "#000"},
	TE:            {Offset: 40, Height: 10, Fill: "#479AB3"},
	GRNA:          {Offset: 10, Height: 5, Fill: "red"},
}

// GlyphFor returns the glyph of t. The zero FeatureType, left by input
// without a feature type, has none.
func GlyphFor(t FeatureType) (Glyph, error) {
	if t == unknownFeature {
		return Glyph{}, errors.New(errors.ErrCodeUnknownFeature, "feature type is missing")
	}
	g, ok := glyphs[t]
	if !ok {
		return Glyph{}, errors.New(errors.ErrCodeUnknownFeature, "no glyph for feature type %d", int(t))
	}
	return g, nil
}

// Feature is one annotated interval.
type Feature struct {
	Start  float64     `json:"start"`
	End    float64     `json:"end"`
	Strand Strand      `json:"strand"`
	Type   FeatureType `json:"feature"`
	Name   string      `json:"name"`
}

// Validate checks f for use at input row row.
func (f Feature) Validate(row int) error {
	_, err := f.validate(row)
	return err
}

// validate checks f and returns the glyph it is drawn with.
func (f Feature) validate(row int) (Glyph, error) {
	if err := errors.ValidateFinite(f.Start, row, "start"); err != nil {
		return Glyph{}, err
	}
	if err := errors.ValidateFinite(f.End, row, "end"); err != nil {
		return Glyph{}, err
	}
	if err := errors.ValidateInterval(f.Start, f.End, row); err != nil {
		return Glyph{}, err
	}
	if _, err := ParseStrand(string(f.Strand)); err != nil {
		return Glyph{}, errors.Wrap(errors.ErrCodeInvalidStrand, err, "row %d", row)
	}
	g, err := GlyphFor(f.Type)
	if err != nil {
		return Glyph{}, errors.Wrap(errors.ErrCodeUnknownFeature, err, "row %d", row)
	}
	return g, nil
}
