package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	errs "github.com/cim-modules/modgraph/pkg/errors"
)

// rsvgBinary is the converter looked up on PATH.
const rsvgBinary = "rsvg-convert"

// ConverterAvailable reports whether rsvg-convert is installed.
func ConverterAvailable() bool {
	_, err := exec.LookPath(rsvgBinary)
	return err == nil
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

// ToPNG converts SVG bytes to PNG using rsvg-convert with the given scale factor.
// Scale of 2.0 produces a 2x resolution image.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(ctx, svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !ConverterAvailable() {
		return nil, errs.New(errs.ErrCodeInternal,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, rsvgBinary, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "%s: %s", rsvgBinary, errBuf.String())
	}
	return out.Bytes(), nil
}
