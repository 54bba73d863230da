package scale

import "sync"

// Ordinal maps categories to output values (usually colors) by position.
//
// Categories not yet in the domain are appended on first lookup, so a scale
// shared between several charts assigns each category the same color
// everywhere. The range cycles when the domain is longer than the range.
// Ordinal is safe for concurrent use because one instance may back charts
// rendered by different requests.
type Ordinal struct {
	mu     sync.Mutex
	domain []string
	index  map[string]int
	rng    []string
}

// NewOrdinal returns an ordinal scale over rng with an initially empty
// domain.
func NewOrdinal(rng []string) *Ordinal {
	o := &Ordinal{index: make(map[string]int)}
	o.rng = append([]string(nil), rng...)
	return o
}

// WithDomain sets the domain explicitly, keeping the first occurrence of
// duplicates, and returns o.
func (o *Ordinal) WithDomain(domain []string) *Ordinal {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.domain = o.domain[:0]
	o.index = make(map[string]int, len(domain))
	for _, d := range domain {
		if _, ok := o.index[d]; ok {
			continue
		}
		o.index[d] = len(o.domain)
		o.domain = append(o.domain, d)
	}
	return o
}

// SetRange replaces the output values.
func (o *Ordinal) SetRange(rng []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rng = append(o.rng[:0], rng...)
}

// Range returns a copy of the output values.
func (o *Ordinal) Range() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.rng...)
}

// Domain returns a copy of the categories seen so far.
func (o *Ordinal) Domain() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.domain...)
}

// Map returns the output value for category.
func (o *Ordinal) Map(category string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.rng) == 0 {
		return ""
	}
	i, ok := o.index[category]
	if !ok {
		i = len(o.domain)
		o.index[category] = i
		o.domain = append(o.domain, category)
	}
	return o.rng[i%len(o.rng)]
}
