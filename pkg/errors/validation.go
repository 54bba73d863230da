package errors

import (
	"math"
	"strconv"
	"strings"
)

// ParseCoordinate parses s as a finite float64.
// Row and column identify the offending cell in the error message so a caller
// can point at the bad record instead of rendering NaN geometry.
func ParseCoordinate(s string, row int, column string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidCoordinate, err, "row %d: %s %q is not a number", row, column, s)
	}
	if err := ValidateFinite(v, row, column); err != nil {
		return 0, err
	}
	return v, nil
}

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(v float64, row int, column string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidCoordinate, "row %d: %s is not finite (%v)", row, column, v)
	}
	return nil
}

// ValidateInterval checks that start <= end and both bounds are finite.
func ValidateInterval(start, end float64, row int) error {
	if err := ValidateFinite(start, row, "start"); err != nil {
		return err
	}
	if err := ValidateFinite(end, row, "end"); err != nil {
		return err
	}
	if start > end {
		return New(ErrCodeInvalidRange, "row %d: start %v is after end %v", row, start, end)
	}
	return nil
}

// ValidateDomain checks that [min, max] is a finite, non-empty interval.
func ValidateDomain(min, max float64) error {
	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) {
		return New(ErrCodeInvalidRange, "domain [%v, %v] is not finite", min, max)
	}
	if min >= max {
		return New(ErrCodeInvalidRange, "domain minimum %v must be below maximum %v", min, max)
	}
	return nil
}

// ValidateColumn checks that a record with n columns has column index col.
func ValidateColumn(col, n, row int) error {
	if col < 0 || col >= n {
		return New(ErrCodeInvalidColumn, "row %d: column %d out of range (record has %d columns)", row, col, n)
	}
	return nil
}

// ValidateDimensions rejects non-positive or non-finite chart sizes.
func ValidateDimensions(width, height float64) error {
	if !(width > 0) || math.IsInf(width, 0) {
		return New(ErrCodeInvalidStyle, "width must be positive, got %v", width)
	}
	if !(height > 0) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidStyle, "height must be positive, got %v", height)
	}
	return nil
}
