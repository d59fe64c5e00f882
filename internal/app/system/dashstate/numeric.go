package dashstate

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// maxExponent bounds the decimal exponent of accepted input. Values like
// "1e-2000000" would otherwise be kept at full precision in every snapshot.
const maxExponent = 12

// ParseAmount reads a numeric form value. Blank or non-numeric input is 0,
// as is input whose exponent lies outside ±maxExponent; it is never an error.
func ParseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	if exp := d.Exponent(); exp < -maxExponent || exp > maxExponent {
		return decimal.Zero
	}
	return d
}

// QuantityOf converts a number to a stock quantity: negatives become 0,
// fractions truncate toward zero and values beyond MaxInt32 are clamped.
func QuantityOf(d decimal.Decimal) int {
	if !d.IsPositive() {
		return 0
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return math.MaxInt32
	}
	return int(d.IntPart())
}
