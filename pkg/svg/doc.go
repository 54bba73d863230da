// Package svg holds the low-level SVG writing helpers shared by the chart
// renderers: document framing, axes with optional gridlines, embedded
// style/script blocks, XML escaping and en-US number formatting.
//
// Everything writes into a *bytes.Buffer with fmt.Fprintf; there is no
// intermediate DOM. Charts regenerate their whole document from session
// state whenever it is requested.
package svg
