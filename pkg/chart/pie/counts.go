package pie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/matzehuels/genoviz/pkg/errors"
)

// Entry is one category and its count.
type Entry struct {
	Label string
	Value float64
}

// Counts is an ordered category-to-count mapping. Order is significant: it
// is the order slices are laid out in.
type Counts []Entry

// Total returns the sum of all values.
func (c Counts) Total() float64 {
	total := 0.0
	for _, e := range c {
		total += e.Value
	}
	return total
}

// Values returns the counts in order.
func (c Counts) Values() []float64 {
	vs := make([]float64, len(c))
	for i, e := range c {
		vs[i] = e.Value
	}
	return vs
}

// Validate rejects duplicate labels, negative or non-finite counts, and a
// total that is not a positive finite number.
func (c Counts) Validate() error {
	seen := make(map[string]int, len(c))
	for i, e := range c {
		if j, ok := seen[e.Label]; ok {
			return errors.New(errors.ErrCodeDuplicateCategory, "category %q appears at rows %d and %d", e.Label, j, i)
		}
		seen[e.Label] = i
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return errors.New(errors.ErrCodeNonFiniteTotal, "category %q: count %v is not finite", e.Label, e.Value)
		}
		if e.Value < 0 {
			return errors.New(errors.ErrCodeNegativeCount, "category %q: count %v is negative", e.Label, e.Value)
		}
	}
	total := c.Total()
	if !(total > 0) || math.IsInf(total, 0) {
		return errors.New(errors.ErrCodeNonFiniteTotal, "total count must be positive and finite, got %v", total)
	}
	return nil
}

// UnmarshalJSON decodes a JSON object keeping its key order.
func (c *Counts) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("counts: expected JSON object, got %v", tok)
	}
	var out Counts
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var v float64
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("counts: value for %q: %w", key, err)
		}
		out = append(out, Entry{Label: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

// MarshalJSON encodes c as a JSON object in order.
func (c Counts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Label)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
