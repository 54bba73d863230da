// Package io reads chart inputs from files and request bodies.
//
// # Formats
//
// Three kinds of input are supported, each in more than one encoding:
//
//   - Features (genome track): TSV with columns start, end, strand, feature
//     and an optional name, or a JSON array of objects with the same keys.
//   - Counts (pie chart): a JSON object whose key order is kept, or TSV
//     rows of label and count.
//   - Records (scatter and violin): CSV or TSV rows of string columns. No
//     header is expected; the charts interpret columns by position.
//
// Lines starting with '#' are comments in every delimited format, and a
// first TSV feature row whose start column reads "start" is treated as a
// header.
//
// # Read and Import
//
// Every input has a Read variant taking an [io.Reader] and an explicit
// [Format], and an Import variant taking a path whose extension selects the
// format:
//
//	features, err := io.ImportFeatures("chr2L.tsv")
//	counts, err := io.ReadCounts(r, io.FormatJSON)
//
// Decoding errors carry the INVALID_FORMAT code. Values that decode but are
// out of range (an unknown feature type, a non-numeric count) carry the code
// of the chart-level check that rejects them, with the row index.
package io
