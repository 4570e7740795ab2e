// Package prefs persists the calculator's last-used form and the saved
// quick-stock preset.
//
// Persistence is best effort. [Prefs] wraps an optional [Storage]; a nil
// storage disables persistence, and every storage failure degrades to
// defaults (on read) or a logged no-op (on write). Nothing in this package
// returns an error to the caller except opening a backend.
//
// # Keys
//
// Two string keys hold JSON documents:
//
//	bpc_state_v1  the form: target, bar, plate pair counts, zoom
//	bpc_quick_v1  the quick-stock preset: denomination -> pair count
//
// The server namespaces both per client with [Scoped].
//
// # Backends
//
//   - memory: process-local map, for tests and --storage=memory
//   - file:   one file per key in a directory (CLI default)
//   - bolt:   a single bbolt database file
//   - redis:  shared storage for multi-instance servers
//   - mongo:  shared storage for multi-instance servers
//
// Use [Open] to create a backend from a [Config].
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/barbell/pkg/plates"
)

// Storage keys.
const (
	KeyState = "bpc_state_v1"
	KeyQuick = "bpc_quick_v1"
)

// Storage is a string key/value store.
type Storage interface {
	// Get returns the value for key. A missing key is ("", false, nil).
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// Prefs reads and writes preferences through a Storage.
// The zero value and a Prefs with nil storage persist nothing.
type Prefs struct {
	store  Storage
	logger *log.Logger
}

// New creates a Prefs over s. s may be nil.
func New(s Storage, logger *log.Logger) *Prefs {
	if logger == nil {
		logger = log.Default()
	}
	return &Prefs{store: s, logger: logger}
}

// Enabled reports whether a storage backend is attached.
func (p *Prefs) Enabled() bool { return p != nil && p.store != nil }

// LoadState returns the saved form, or nil when nothing usable is stored.
func (p *Prefs) LoadState(ctx context.Context) *FormState {
	raw, ok := p.get(ctx, KeyState)
	if !ok {
		return nil
	}
	var st *FormState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		p.logger.Debug("ignoring saved state", "error", err)
		return nil
	}
	if st == nil {
		// A stored JSON null.
		return nil
	}
	st.normalize()
	return st
}

// SaveState stores the form.
func (p *Prefs) SaveState(ctx context.Context, st FormState) {
	st.normalize()
	data, err := json.Marshal(st)
	if err != nil {
		p.logger.Warn("encode state", "error", err)
		return
	}
	p.set(ctx, KeyState, string(data))
}

// ClearState forgets the saved form.
func (p *Prefs) ClearState(ctx context.Context) {
	if !p.Enabled() {
		return
	}
	if err := p.store.Delete(ctx, KeyState); err != nil {
		p.logger.Warn("clear state", "error", err)
	}
}

// LoadQuickStock returns the saved preset, or [DefaultQuickStock] when
// nothing usable is stored. The result always holds every default
// denomination.
func (p *Prefs) LoadQuickStock(ctx context.Context) Preset {
	raw, ok := p.get(ctx, KeyQuick)
	if !ok {
		return DefaultQuickStock()
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		p.logger.Debug("ignoring saved quick stock", "error", err)
		return DefaultQuickStock()
	}
	if parsed == nil {
		return DefaultQuickStock()
	}
	out := make(Preset, len(plates.DefaultPlates))
	for _, d := range plates.DefaultPlates {
		out[d.String()] = normalizeCount(parsed[d.String()])
	}
	return out
}

// SaveQuickStock stores preset, normalizing counts and keeping only the
// default denominations.
func (p *Prefs) SaveQuickStock(ctx context.Context, preset Preset) {
	out := make(Preset, len(plates.DefaultPlates))
	for _, d := range plates.DefaultPlates {
		out[d.String()] = normalizeCount(preset[d.String()])
	}
	data, err := json.Marshal(out)
	if err != nil {
		p.logger.Warn("encode quick stock", "error", err)
		return
	}
	p.set(ctx, KeyQuick, string(data))
}

func (p *Prefs) get(ctx context.Context, key string) (string, bool) {
	if !p.Enabled() {
		return "", false
	}
	raw, ok, err := p.store.Get(ctx, key)
	if err != nil {
		p.logger.Warn("read preferences", "key", key, "error", err)
		return "", false
	}
	return raw, ok && raw != ""
}

func (p *Prefs) set(ctx context.Context, key, value string) {
	if !p.Enabled() {
		return
	}
	if err := p.store.Set(ctx, key, value); err != nil {
		p.logger.Warn("write preferences", "key", key, "error", err)
	}
}

// normalizeCount coerces a stored count (string, number, or missing) to a
// non-negative integer string.
func normalizeCount(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		s = "0"
	case string:
		s = x
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		s = fmt.Sprint(x)
	}
	return strconv.Itoa(plates.ParseNonNegInt(s, 0))
}
