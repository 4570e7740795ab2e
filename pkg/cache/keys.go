package cache

import (
	"strings"
)

// LayoutKeyOpts are the inputs of a plate calculation.
type LayoutKeyOpts struct {
	Target    float64 `json:"target"`
	Bar       float64 `json:"bar"`
	Inventory string  `json:"inventory"` // canonical "45=4,35=3,..." form
}

// ArtifactKeyOpts are the render options that change the output bytes.
type ArtifactKeyOpts struct {
	Style     string  `json:"style"`
	Format    string  `json:"format"`
	Scale     float64 `json:"scale,omitempty"`
	EmbedFont bool    `json:"embed_font,omitempty"`
	Title     string  `json:"title,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey identifies a plate calculation.
	LayoutKey(opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output of a calculation.
	ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string
	// TraceKey identifies a rendered trace diagram of a calculation.
	TraceKey(layoutKey, format string) string
}

// DefaultKeyer hashes inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey(KindLayout, opts)
}

func (DefaultKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return hashKey(KindArtifact, layoutKey, opts)
}

func (DefaultKeyer) TraceKey(layoutKey, format string) string {
	return hashKey(KindTrace, layoutKey, strings.ToLower(format))
}

// KeyType returns the prefix of a generated key ("layout", "artifact",
// "trace"), for metrics labels.
func KeyType(key string) string {
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		key = key[:i]
	}
	if i := strings.LastIndexByte(key, ':'); i >= 0 {
		key = key[i+1:]
	}
	return key
}
