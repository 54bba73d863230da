// Package pkg provides the core libraries for genoviz interactive genomics
// charts.
//
// # Overview
//
// genoviz draws four chart kinds from tabular input and keeps each one as a
// session that answers pointer events with DOM patches:
//
//   - genome: a feature track over one chromosome with brush zoom
//   - pie: category counts with hover tooltips
//   - tsne: a scatter of embedded cells colored by a category column
//   - violin: per-category value distributions with jittered points
//
// # Architecture
//
// The typical data flow:
//
//	TSV / CSV / JSON input
//	         ↓
//	    [io] package (decode features, counts or records)
//	         ↓
//	    [chart] subpackages (validate, lay out, attach to a mount)
//	         ↓
//	    [pipeline] package (render svg, html, png, pdf, json; cache)
//	         ↓
//	    CLI output or [server] session
//
// # Quick Start
//
//	m := mount.New("genoviz")
//	features, _ := io.ImportFeatures("features.tsv")
//	track, _ := genome.Create(m, "2L", 0, 20000, features)
//
//	// Hover the first feature and zoom to a window.
//	patches, _ := track.Hover(0)
//	patches, _ = track.ZoomTo(1000, 5000)
//
//	svg := track.SVG()
//
// # Main Packages
//
// ## Charts
//
// [chart] - Shared kinds, styles, records and callbacks. The renderers live in
// chart/genome, chart/pie, chart/scatter and chart/violin.
//
// [scale], [shape], [density], [palette] - Linear, band and ordinal scales,
// arc and area path generators, histogram binning with kernel smoothing, and
// color schemes.
//
// [svg], [mount], [interact] - Markup helpers, the page a chart is mounted
// into, and the patch and idle-guard types every event returns.
//
// ## Infrastructure
//
// [pipeline] - Decode, build and render used by the CLI and the server.
// [pipeline.Runner] adds the artifact cache.
//
// [cache] - Artifact caches: file (CLI), Redis (server) and null.
//
// [session] - Interactive chart sessions with memory, file and MongoDB stores.
//
// [server] - HTTP render endpoint and websocket event sessions.
//
// [config], [observability], [render], [errors] - Style files and server
// environment, hooks and counters, SVG to PNG/PDF conversion, coded errors.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/chart/...     # Chart renderers
//	go test -run Example        # Examples only
//
// [io]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/io
// [chart]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/chart
// [scale]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/scale
// [shape]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/shape
// [density]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/density
// [palette]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/palette
// [svg]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/svg
// [mount]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/mount
// [interact]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/interact
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/session
// [server]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/observability
// [render]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/genoviz/pkg/errors
package pkg
