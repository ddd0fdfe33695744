package key_test

import (
	"strings"
	"testing"

	"github.com/artpar/thermogate/domain/key"
)

func TestFormat_Valid(t *testing.T) {
	f := key.DefaultFormat()
	body := strings.Repeat("a1", 16)

	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"well formed", "tg_" + body, true},
		{"missing prefix", body, false},
		{"wrong prefix", "ak_" + body, false},
		{"too short", "tg_" + body[:31], false},
		{"too long", "tg_" + body + "0", false},
		{"uppercase hex", "tg_" + strings.ToUpper(body), false},
		{"non hex", "tg_" + strings.Repeat("zz", 16), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Valid(tt.raw); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormat_Valid_NoPrefix(t *testing.T) {
	f := key.Format{Length: 8}
	if !f.Valid("0123abcd") {
		t.Error("expected bare 8-char hex token to be valid")
	}
	if f.Valid("0123abc") {
		t.Error("expected 7-char token to be invalid")
	}
}

func TestFormat_Compose(t *testing.T) {
	f := key.DefaultFormat()
	if got := f.Compose("abcd"); got != "tg_abcd" {
		t.Errorf("Compose = %q, want tg_abcd", got)
	}
}

func TestFormat_Redact(t *testing.T) {
	f := key.DefaultFormat()

	got := f.Redact("tg_0123456789abcdef")
	if got != "tg_0123****" {
		t.Errorf("Redact = %q, want tg_0123****", got)
	}
	if got := f.Redact("tg_0"); got != "****" {
		t.Errorf("short Redact = %q, want ****", got)
	}
}
