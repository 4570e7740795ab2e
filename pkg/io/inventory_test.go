package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/plates"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"stock.json", FormatJSON, false},
		{"stock.TOML", FormatTOML, false},
		{"a/b/stock.yml", FormatYAML, false},
		{"stock.yaml", FormatYAML, false},
		{"stock.csv", "", true},
		{"stock", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, %v", tt.path, got, err)
		}
	}
}

func TestRead(t *testing.T) {
	want := Document{Bar: 45, Plates: plates.Inventory{45: 4, 2.5: 2}}
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `{"bar": 45, "plates": {"45": 4, "2.5": 2}}`},
		{"toml", FormatTOML, "bar = 45.0\n[plates]\n\"45\" = 4\n\"2.5\" = 2\n"},
		{"yaml", FormatYAML, "bar: 45\nplates:\n  45: 4\n  2.5: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Read mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadInvalid(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"malformed json", FormatJSON, `{"plates": `},
		{"negative pairs", FormatJSON, `{"plates": {"45": -1}}`},
		{"zero plate", FormatYAML, "plates:\n  0: 1\n"},
		{"bad key", FormatTOML, "[plates]\nheavy = 1\n"},
		{"too many", FormatYAML, "plates:\n  45: 1000\n"},
		{"negative bar", FormatJSON, `{"bar": -5, "plates": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Read() = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestReadEmpty(t *testing.T) {
	doc, err := Read(strings.NewReader("{}"), FormatJSON)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if doc.Plates == nil || len(doc.Plates) != 0 {
		t.Errorf("Plates = %v, want empty inventory", doc.Plates)
	}
}

func TestRoundTrip(t *testing.T) {
	doc := Document{Bar: 35, Plates: plates.QuickStock()}
	for _, f := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, doc, f); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, err := Read(&buf, f)
			if err != nil {
				t.Fatalf("Read: %v\n%s", err, buf.String())
			}
			if diff := cmp.Diff(doc, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	doc := Document{Bar: 45, Plates: plates.Inventory{45: 2, 10: 1}}
	for _, name := range []string{"stock.json", "stock.toml", "stock.yaml"} {
		path := filepath.Join(dir, name)
		if err := Export(doc, path); err != nil {
			t.Fatalf("Export(%s): %v", name, err)
		}
		got, err := Import(path)
		if err != nil {
			t.Fatalf("Import(%s): %v", name, err)
		}
		if diff := cmp.Diff(doc, got); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}

	if _, err := Import(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Import of a missing file should fail")
	}
	if err := Export(doc, filepath.Join(dir, "stock.txt")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Export(.txt) = %v, want INVALID_FORMAT", err)
	}
}
