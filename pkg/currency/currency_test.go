package currency

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		code   string
		amount float64
		want   string
	}{
		{"USD", 1234.5, "$1,234.50"},
		{"USD", 0.01, "$0.01"},
		{"JPY", 500, "¥500"},
		{"ZZZ", 1, "$1.00"}, // unknown code falls back to USD
	}
	for _, tt := range tests {
		if got := Format(tt.code, tt.amount); got != tt.want {
			t.Errorf("Format(%q, %v) = %q, want %q", tt.code, tt.amount, got, tt.want)
		}
	}
}

func TestSymbol(t *testing.T) {
	if got := Symbol("EUR"); got != "€" {
		t.Errorf("Symbol(EUR) = %q, want €", got)
	}
	if got := Symbol("ZZZ"); got != "$" {
		t.Errorf("Symbol(ZZZ) = %q, want $", got)
	}
}

func TestValid(t *testing.T) {
	if !Valid("USD") || Valid("ZZZ") {
		t.Error("Valid misclassified a currency code")
	}
}
