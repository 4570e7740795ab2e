package prefs

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/barbell/pkg/plates"
)

var quiet = log.New(io.Discard)

// failingStorage fails every operation.
type failingStorage struct{}

var errBackend = errors.New("backend down")

func (failingStorage) Get(context.Context, string) (string, bool, error) { return "", false, errBackend }
func (failingStorage) Set(context.Context, string, string) error         { return errBackend }
func (failingStorage) Delete(context.Context, string) error              { return errBackend }
func (failingStorage) Close() error                                      { return nil }

func TestDefaultQuickStock(t *testing.T) {
	want := Preset{"45": "4", "35": "3", "25": "2", "10": "2", "5": "2", "2.5": "2"}
	if diff := cmp.Diff(want, DefaultQuickStock()); diff != "" {
		t.Errorf("DefaultQuickStock mismatch (-want +got):\n%s", diff)
	}
}

func TestPrefsNilStorage(t *testing.T) {
	ctx := context.Background()
	p := New(nil, quiet)
	if p.Enabled() {
		t.Error("nil storage should be disabled")
	}
	p.SaveState(ctx, DefaultFormState())
	p.SaveQuickStock(ctx, Preset{"45": "9"})
	p.ClearState(ctx)
	if st := p.LoadState(ctx); st != nil {
		t.Errorf("LoadState = %+v, want nil", st)
	}
	if diff := cmp.Diff(DefaultQuickStock(), p.LoadQuickStock(ctx)); diff != "" {
		t.Errorf("LoadQuickStock mismatch (-want +got):\n%s", diff)
	}
}

func TestPrefsFailingStorage(t *testing.T) {
	ctx := context.Background()
	p := New(failingStorage{}, quiet)

	// Writes are silent no-ops, reads fall back.
	p.SaveState(ctx, DefaultFormState())
	p.SaveQuickStock(ctx, DefaultQuickStock())
	p.ClearState(ctx)
	if st := p.LoadState(ctx); st != nil {
		t.Errorf("LoadState = %+v, want nil", st)
	}
	if diff := cmp.Diff(DefaultQuickStock(), p.LoadQuickStock(ctx)); diff != "" {
		t.Errorf("LoadQuickStock mismatch (-want +got):\n%s", diff)
	}
}

func TestPrefsStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := New(NewMemoryStorage(), quiet)

	st := FormState{
		Target: "315",
		Bar:    "35",
		Plates: map[string]string{"45": "3", "2.5": "abc"},
		Zoom:   500,
	}
	p.SaveState(ctx, st)

	got := p.LoadState(ctx)
	if got == nil {
		t.Fatal("LoadState = nil")
	}
	want := st
	want.Zoom = MaxZoom
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Errorf("LoadState mismatch (-want +got):\n%s", diff)
	}
	if got.TargetWeight() != 315 || got.BarWeight() != 35 {
		t.Errorf("weights = %v, %v", got.TargetWeight(), got.BarWeight())
	}
	if diff := cmp.Diff(plates.Inventory{45: 3, 35: 0, 25: 0, 10: 0, 5: 0, 2.5: 0}, got.Inventory()); diff != "" {
		t.Errorf("Inventory mismatch (-want +got):\n%s", diff)
	}

	p.ClearState(ctx)
	if p.LoadState(ctx) != nil {
		t.Error("LoadState after ClearState should be nil")
	}
}

func TestPrefsGarbage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	p := New(s, quiet)

	for _, raw := range []string{"{not json", "[1,2]", "", "null", " null\n", "42", `"45=4"`} {
		_ = s.Set(ctx, KeyState, raw)
		_ = s.Set(ctx, KeyQuick, raw)
		if st := p.LoadState(ctx); st != nil {
			t.Errorf("LoadState(%q) = %+v, want nil", raw, st)
		}
		if diff := cmp.Diff(DefaultQuickStock(), p.LoadQuickStock(ctx)); diff != "" {
			t.Errorf("LoadQuickStock(%q) mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestLoadQuickStockNormalizes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	p := New(s, quiet)

	_ = s.Set(ctx, KeyQuick, `{"45": 6, "35": "2.9", "25": "-1", "10": "x", "7": "5"}`)
	want := Preset{"45": "6", "35": "2", "25": "0", "10": "0", "5": "0", "2.5": "0"}
	if diff := cmp.Diff(want, p.LoadQuickStock(ctx)); diff != "" {
		t.Errorf("LoadQuickStock mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveQuickStockNormalizes(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	p := New(s, quiet)

	p.SaveQuickStock(ctx, Preset{"45": " 3", "2.5": "1.7", "7": "9"})
	raw, _, _ := s.Get(ctx, KeyQuick)
	want := `{"10":"0","2.5":"1","25":"0","35":"0","45":"3","5":"0"}`
	if raw != want {
		t.Errorf("stored %s, want %s", raw, want)
	}

	inv := p.LoadQuickStock(ctx).Inventory()
	if inv[2.5] != 1 || len(inv) != len(plates.DefaultPlates) {
		t.Errorf("Inventory = %v", inv)
	}
}

func TestDefaultFormState(t *testing.T) {
	st := DefaultFormState()
	if st.TargetWeight() != 225 || st.BarWeight() != 45 || st.Zoom != DefaultZoom {
		t.Errorf("DefaultFormState = %+v", st)
	}
	if diff := cmp.Diff(plates.FullStock(4), st.Inventory()); diff != "" {
		t.Errorf("Inventory mismatch (-want +got):\n%s", diff)
	}

	empty := FormState{Bar: "heavy"}
	if empty.BarWeight() != 45 {
		t.Error("unusable bar should fall back to 45")
	}
}
