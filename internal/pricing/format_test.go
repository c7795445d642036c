package pricing

import (
	"math"
	"testing"
)

func TestFormatRupiah(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "Rp 0"},
		{"nan", math.NaN(), "Rp 0"},
		{"rounds to zero", 0.4, "Rp 0"},
		{"single digit", 5, "Rp 5"},
		{"three digits", 950, "Rp 950"},
		{"four digits", 5750, "Rp 5.750"},
		{"rounds up", 9583.33, "Rp 9.583"},
		{"rounds half up", 9583.5, "Rp 9.584"},
		{"six digits", 125000, "Rp 125.000"},
		{"seven digits", 1250000, "Rp 1.250.000"},
		{"negative", -1234, "Rp -1.234"},
		{"exact thousand", 1000, "Rp 1.000"},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatRupiah(tt.amount); got != tt.want {
				t.Fatalf("FormatRupiah(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
