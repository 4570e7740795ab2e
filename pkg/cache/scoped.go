package cache

// ScopedKeyer wraps a Keyer with a prefix for per-client isolation.
// The HTTP server scopes keys by client so one client clearing its cache
// entries cannot evict another's.
//
// Example usage:
//
//	clientKeyer := NewScopedKeyer(NewDefaultKeyer(), "client:6f1c...:")
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

// LayoutKey generates a prefixed key for a plate calculation.
func (k *ScopedKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutKey, opts)
}

// TraceKey generates a prefixed key for trace diagrams.
func (k *ScopedKeyer) TraceKey(layoutKey, format string) string {
	return k.prefix + k.inner.TraceKey(layoutKey, format)
}
