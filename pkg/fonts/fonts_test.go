package fonts

import (
	"encoding/base64"
	"testing"
)

func TestFont(t *testing.T) {
	for _, w := range []Weight{Regular, Bold} {
		f, err := Font(w)
		if err != nil {
			t.Fatalf("Font(%d) error: %v", w, err)
		}
		if f == nil {
			t.Fatalf("Font(%d) = nil", w)
		}
	}
}

func TestMeasureString(t *testing.T) {
	short := MeasureString(Bold, 30, "5")
	long := MeasureString(Bold, 30, "2.5")
	if short <= 0 {
		t.Fatalf("MeasureString(\"5\") = %v, want > 0", short)
	}
	if long <= short {
		t.Errorf("\"2.5\" (%v) should be wider than \"5\" (%v)", long, short)
	}
	if big := MeasureString(Bold, 60, "5"); big <= short {
		t.Errorf("size 60 (%v) should be wider than size 30 (%v)", big, short)
	}
	if got := MeasureString(Regular, 30, ""); got != 0 {
		t.Errorf("empty string width = %v, want 0", got)
	}
}

func TestForCSS(t *testing.T) {
	tests := []struct {
		css  int
		want Weight
	}{
		{400, Regular},
		{500, Regular},
		{600, Bold},
		{900, Bold},
	}
	for _, tt := range tests {
		if got := ForCSS(tt.css); got != tt.want {
			t.Errorf("ForCSS(%d) = %d, want %d", tt.css, got, tt.want)
		}
	}
}

func TestTTFBase64(t *testing.T) {
	enc := TTFBase64(Bold)
	dec, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(dec) != len(TTF(Bold)) {
		t.Errorf("decoded %d bytes, want %d", len(dec), len(TTF(Bold)))
	}
	if TTFBase64(Bold) != enc {
		t.Error("TTFBase64 should be stable")
	}
}
