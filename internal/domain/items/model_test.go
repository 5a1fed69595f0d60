package items

import "testing"

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{123456, "1,234.56"},
		{100000000, "1,000,000.00"},
		{-2550, "-25.50"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.minor); got != tt.want {
			t.Errorf("FormatPrice(%d) = %q, want %q", tt.minor, got, tt.want)
		}
	}
}
