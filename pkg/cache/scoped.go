package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants (or the CLI
// and a server sharing one Redis) keep separate namespaces.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "genoviz:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses the
// default.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(kind, inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(kind, inputHash, opts)
}
