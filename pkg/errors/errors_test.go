package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := errors.New("unexpected EOF")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeNegativeCount, "category %q: count %v is negative", "Klf1", -2), `NEGATIVE_COUNT: category "Klf1": count -2 is negative`},
		{"wrapped", Wrap(ErrCodeInvalidFormat, cause, "decode %s", "counts.json"), "INVALID_FORMAT: decode counts.json: unexpected EOF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	w := Wrap(ErrCodeInvalidFormat, cause, "decode")
	if !errors.Is(w, cause) || errors.Unwrap(w) != cause {
		t.Error("Wrap should keep the cause reachable")
	}
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeInvalidRange, "row 3: start 9 is after end 2")
	tests := []struct {
		name    string
		err     error
		code    Code
		message string
	}{
		{"direct", inner, ErrCodeInvalidRange, "row 3: start 9 is after end 2"},
		{"fmt wrapped", fmt.Errorf("import features.tsv: %w", inner), ErrCodeInvalidRange, "row 3: start 9 is after end 2"},
		{"outermost wins", Wrap(ErrCodeInvalidFormat, inner, "decode features.tsv"), ErrCodeInvalidFormat, "decode features.tsv"},
		{"uncoded", errors.New("disk full"), "", "disk full"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
		})
	}

	if Is(nil, ErrCodeInvalidRange) || GetCode(nil) != "" {
		t.Error("nil error should carry no code")
	}
	if Is(Wrap(ErrCodeInvalidFormat, inner, "x"), ErrCodeInvalidRange) {
		t.Error("Is should only match the outermost code")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err        error
		class      Class
		status     int
		validation bool
		notFound   bool
	}{
		{New(ErrCodeInvalidCoordinate, "x"), ClassValidation, http.StatusBadRequest, true, false},
		{New(ErrCodeNonFiniteTotal, "x"), ClassValidation, http.StatusBadRequest, true, false},
		{fmt.Errorf("event: %w", New(ErrCodeInvalidEvent, "x")), ClassValidation, http.StatusBadRequest, true, false},
		{New(ErrCodeSessionNotFound, "x"), ClassNotFound, http.StatusNotFound, false, true},
		{New(ErrCodeNotFound, "x"), ClassNotFound, http.StatusNotFound, false, true},
		{New(ErrCodeUnsupported, "x"), ClassUnsupported, http.StatusNotImplemented, false, false},
		{New(ErrCodeInternal, "x"), ClassInternal, http.StatusInternalServerError, false, false},
		{New(Code("SOMETHING_NEW"), "x"), ClassInternal, http.StatusInternalServerError, false, false},
		{errors.New("plain"), ClassInternal, http.StatusInternalServerError, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := ClassOf(tt.err); got != tt.class {
				t.Errorf("ClassOf() = %v, want %v", got, tt.class)
			}
			if got := HTTPStatus(tt.err); got != tt.status {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.status)
			}
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation() = %v, want %v", got, tt.validation)
			}
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound() = %v, want %v", got, tt.notFound)
			}
		})
	}
}
