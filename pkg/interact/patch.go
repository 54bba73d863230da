package interact

import (
	"encoding/json"
	"maps"
	"time"
)

// AttrMarkup is the pseudo-attribute of a patch whose Value replaces the
// target element's markup outright, used for axes whose tick set changes.
const AttrMarkup = "outerHTML"

// Patch sets Attr on the element with id Target to Value, animated over
// Duration.
type Patch struct {
	Target   string
	Attr     string
	Value    string
	Duration time.Duration
}

type patchJSON struct {
	Target     string `json:"target"`
	Attr       string `json:"attr"`
	Value      string `json:"value"`
	DurationMS int64  `json:"duration_ms"`
}

func (p Patch) MarshalJSON() ([]byte, error) {
	return json.Marshal(patchJSON{p.Target, p.Attr, p.Value, p.Duration.Milliseconds()})
}

func (p *Patch) UnmarshalJSON(data []byte) error {
	var v patchJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Patch{Target: v.Target, Attr: v.Attr, Value: v.Value, Duration: time.Duration(v.DurationMS) * time.Millisecond}
	return nil
}

// Attrs is the mutable attribute state of a rendered chart, keyed by element
// id then attribute name.
type Attrs struct {
	m map[string]map[string]string
}

// NewAttrs returns an empty store.
func NewAttrs() *Attrs {
	return &Attrs{m: make(map[string]map[string]string)}
}

// Set records one attribute value.
func (a *Attrs) Set(target, attr, value string) {
	el, ok := a.m[target]
	if !ok {
		el = make(map[string]string)
		a.m[target] = el
	}
	el[attr] = value
}

// Get returns an attribute value, or def when it was never set.
func (a *Attrs) Get(target, attr, def string) string {
	if v, ok := a.m[target][attr]; ok {
		return v
	}
	return def
}

// Apply records every patch and returns them unchanged.
func (a *Attrs) Apply(ps []Patch) []Patch {
	for _, p := range ps {
		a.Set(p.Target, p.Attr, p.Value)
	}
	return ps
}

// Snapshot returns a deep copy of the store.
func (a *Attrs) Snapshot() map[string]map[string]string {
	out := make(map[string]map[string]string, len(a.m))
	for k, v := range a.m {
		out[k] = maps.Clone(v)
	}
	return out
}
