package mount

import (
	"bytes"
	"fmt"
	"html"
)

const pageCSS = `
    body { font-family: sans-serif; margin: 16px; }
    .hov-tooltip { background: #fff; border: 1px solid #ccc; border-radius: 4px; padding: 4px 8px; font-size: 12px; transition: opacity 0.2s; }`

// PageOption configures Page.
type PageOption func(*page)

type page struct {
	title   string
	scripts []string
}

// WithTitle sets the document title.
func WithTitle(title string) PageOption { return func(p *page) { p.title = title } }

// WithScript appends an inline script after the mount.
func WithScript(js string) PageOption {
	return func(p *page) { p.scripts = append(p.scripts, js) }
}

// Page returns a standalone HTML document hosting m.
func (m *Mount) Page(opts ...PageOption) []byte {
	p := page{title: "genoviz"}
	for _, opt := range opts {
		opt(&p)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(p.title))
	fmt.Fprintf(&buf, "<style>%s\n</style>\n</head>\n<body>\n", pageCSS)
	buf.Write(m.HTML())
	for _, js := range p.scripts {
		fmt.Fprintf(&buf, "<script>%s\n</script>\n", js)
	}
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes()
}
