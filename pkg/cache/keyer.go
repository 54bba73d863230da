package cache

// ArtifactKeyOpts are the render parameters that change an artifact's
// bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Chrom       string  `json:"chrom,omitempty"`
	Min         float64 `json:"min,omitempty"`
	Max         float64 `json:"max,omitempty"`
	ColorBy     int     `json:"color_by,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Seed        uint64  `json:"seed,omitempty"`
	// Style is any JSON-encodable style value.
	Style any `json:"style,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey identifies one rendered output of a chart kind over an
	// input identified by its content hash.
	ArtifactKey(kind, inputHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<kind>:<hash>".
func (DefaultKeyer) ArtifactKey(kind, inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+kind, inputHash, opts)
}
