package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/genoviz/pkg/errors"
)

const sample = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`

func TestMissingToolIsUnsupported(t *testing.T) {
	old := Tool
	Tool = "genoviz-no-such-converter"
	defer func() { Tool = old }()

	if Available() {
		t.Fatal("Available() = true for a missing tool")
	}
	_, err := ToPDF(context.Background(), []byte(sample))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG(context.Background(), []byte(sample), 2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF(context.Background(), []byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}
