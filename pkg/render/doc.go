// Package render converts rendered SVG charts to raster and print formats.
//
// [ToPNG] and [ToPDF] pipe the SVG through the external rsvg-convert tool
// from librsvg:
//
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//	pdf, err := render.ToPDF(ctx, svg)
//
// Install it with `brew install librsvg` (macOS) or
// `apt install librsvg2-bin` (Debian/Ubuntu). [Available] reports whether
// the tool is on PATH so callers can fail early with a clear message.
//
// Embedded scripts are ignored by rsvg-convert, so converted charts show
// their initial state without interaction.
package render
