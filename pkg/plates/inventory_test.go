package plates

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQuickStock(t *testing.T) {
	want := Inventory{45: 4, 35: 3, 25: 2, 10: 2, 5: 2, 2.5: 2}
	if diff := cmp.Diff(want, QuickStock()); diff != "" {
		t.Errorf("QuickStock() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInventory(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Inventory
		wantErr bool
	}{
		{name: "basic", in: "45=4,25=2,2.5=1", want: Inventory{45: 4, 25: 2, 2.5: 1}},
		{name: "spaces", in: " 45 = 2 , 10=1 ", want: Inventory{45: 2, 10: 1}},
		{name: "empty", in: "", want: Inventory{}},
		{name: "bad count coerced", in: "45=x,35=-2", want: Inventory{45: 0, 35: 0}},
		{name: "missing equals", in: "45", wantErr: true},
		{name: "bad weight", in: "heavy=2", wantErr: true},
		{name: "zero weight", in: "0=2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInventory(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInventory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseInventory(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestInventoryString(t *testing.T) {
	inv := Inventory{2.5: 1, 45: 4, 10: 2}
	if got, want := inv.String(), "45=4,10=2,2.5=1"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	back, err := ParseInventory(inv.String())
	if err != nil {
		t.Fatalf("ParseInventory(String()) error: %v", err)
	}
	if diff := cmp.Diff(inv, back); diff != "" {
		t.Errorf("String round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromStrings(t *testing.T) {
	raw := map[string]string{"45": "4", "35": "", "25": "two", "10": "-1", "2.5": "3.7"}
	want := Inventory{45: 4, 35: 0, 25: 0, 10: 0, 5: 0, 2.5: 3}
	got := FromStrings(raw)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FromStrings() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"45": "4", "35": "0", "25": "0", "10": "0", "5": "0", "2.5": "3"}, got.ToStrings()); diff != "" {
		t.Errorf("ToStrings() mismatch (-want +got):\n%s", diff)
	}
}

func TestInventoryUnsupported(t *testing.T) {
	tests := []struct {
		name string
		inv  Inventory
		want []Denomination
	}{
		{"defaults only", QuickStock(), nil},
		{"custom plates", Inventory{45: 2, 20: 3, 1.25: 1, 15: 0}, []Denomination{20, 1.25}},
		{"negative custom", Inventory{20: -1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.inv.Unsupported()); diff != "" {
				t.Errorf("Unsupported() mismatch (-want +got):\n%s", diff)
			}
			for _, d := range tt.want {
				if _, ok := FromStrings(tt.inv.ToStrings())[d]; ok {
					t.Errorf("%v survived ToStrings", d)
				}
			}
		})
	}
}

func TestColorFor(t *testing.T) {
	tests := []struct {
		d    Denomination
		want string
	}{
		{45, "#60a5fa"},
		{35, "#34d399"},
		{2.5, "#f472b6"},
		{100, "#60a5fa"},
	}
	for _, tt := range tests {
		if got := ColorFor(tt.d); got != tt.want {
			t.Errorf("ColorFor(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDenominationJSON(t *testing.T) {
	l := ComputeLayout(230, 45, FullStock(4))
	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var back Layout
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v\n%s", err, data)
	}
	if diff := cmp.Diff(l, back); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}

	var d Denomination
	if err := json.Unmarshal([]byte(`"2.5"`), &d); err != nil || d != 2.5 {
		t.Errorf("Unmarshal quoted = %v, %v", d, err)
	}
	if err := json.Unmarshal([]byte(`-1`), &d); err == nil {
		t.Error("Unmarshal(-1) should fail")
	}
}
