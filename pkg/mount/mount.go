// Package mount provides the container charts are rendered into.
//
// A [Mount] stands in for the page element a chart attaches to: an ordered
// list of child nodes (SVG documents and tooltip divs) that can be
// serialized as an HTML fragment or a standalone host page, and emptied with
// Clear. Creating two charts on one mount appends both.
package mount

import (
	"bytes"
	"fmt"
	"sync"
)

// Node is a child of a mount.
type Node interface {
	// NodeID returns the element id, unique within the mount.
	NodeID() string
	// Markup returns the node's current serialized form.
	Markup() []byte
}

// Mount is an ordered container of nodes.
type Mount struct {
	mu    sync.Mutex
	id    string
	nodes []Node
	seq   map[string]int
}

// New returns an empty mount whose container element has the given id.
func New(id string) *Mount {
	return &Mount{id: id, seq: make(map[string]int)}
}

// ID returns the container element id.
func (m *Mount) ID() string { return m.id }

// NextID returns a fresh element id with the given prefix ("pie-1",
// "pie-2", ...). Ids keep increasing across Clear.
func (m *Mount) NextID(prefix string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq[prefix]++
	return fmt.Sprintf("%s-%d", prefix, m.seq[prefix])
}

// Append adds n after the existing children.
func (m *Mount) Append(n Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes = append(m.nodes, n)
}

// Children returns the current children in order.
func (m *Mount) Children() []Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Node(nil), m.nodes...)
}

// Len returns the number of children.
func (m *Mount) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.nodes)
}

// Clear removes every child.
func (m *Mount) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes = nil
}

// HTML returns the container div with every child's markup.
func (m *Mount) HTML() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<div id=\"%s\" class=\"genoviz-mount\" style=\"position:relative\">\n", m.id)
	for _, n := range m.Children() {
		buf.Write(n.Markup())
	}
	buf.WriteString("</div>\n")
	return buf.Bytes()
}
