package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/genoviz/pkg/errors"
)

// Tool is the converter binary looked up on PATH.
var Tool = "rsvg-convert"

// Available reports whether the converter is installed.
func Available() bool {
	_, err := exec.LookPath(Tool)
	return err == nil
}

// ToPNG rasterizes svg at the given scale (1.0 is the SVG's own size).
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', -1, 64))
}

// ToPDF converts svg to a single-page PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

func convert(ctx context.Context, svg []byte, format string, extra ...string) ([]byte, error) {
	path, err := exec.LookPath(Tool)
	if err != nil {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s output needs %s (brew install librsvg, or apt install librsvg2-bin)", format, Tool)
	}

	args := append([]string{"-f", format}, extra...)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		return nil, fmt.Errorf("%s to %s: %w: %s", Tool, format, err, msg)
	}
	return stdout.Bytes(), nil
}
