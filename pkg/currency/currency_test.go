package currency

import "testing"

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{123456, "1234.56"},
		{-250, "-2.50"},
	}
	for _, tt := range tests {
		if got := FormatCents(tt.cents); got != tt.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	if got := Format(123456, "KES"); got != "KES 1234.56" {
		t.Errorf("Format = %q, want %q", got, "KES 1234.56")
	}
	if got := Format(100, ""); got != "1.00" {
		t.Errorf("Format with empty code = %q, want %q", got, "1.00")
	}
}

func TestToCents(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{0, 0},
		{10.55, 1055},
		{0.1, 10},
		{19.999, 2000},
		{-2.51, -251},
	}
	for _, tt := range tests {
		if got := ToCents(tt.amount); got != tt.want {
			t.Errorf("ToCents(%v) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}
