package dashstate

import (
	"math"
	"testing"
)

func TestQuantityOf(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"12", 12},
		{" 7 ", 7},
		{"0", 0},
		{"3.7", 3},
		{"-4", 0},
		{"-0.5", 0},
		{"1e3", 1000},
		{"", 0},
		{"abc", 0},
		{"12abc", 0},
		{"99999999999999", math.MaxInt32},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := QuantityOf(ParseAmount(tt.raw)); got != tt.want {
				t.Errorf("QuantityOf(ParseAmount(%q)) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"3000", "3000"},
		{"2500.50", "2500.5"},
		{"-20", "-20"},
		{"", "0"},
		{"$300", "0"},
		{"1.5e3", "1500"},
		{"0.000000000001", "0.000000000001"},
		{"1e-2000000", "0"},
		{"1e-13", "0"},
		{"5e400", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseAmount(tt.raw)
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}
