package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants or chart
// sets can share one backend without colliding.
//
// Example usage:
//
//	// Per-dashboard keys on a shared redis
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "dashboard:sales:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(optionHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(optionHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
