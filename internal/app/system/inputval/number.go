package inputval

import (
	"bytes"
	"encoding/json"

	"github.com/dalemusser/opsdash/internal/app/system/dashstate"
	"github.com/shopspring/decimal"
)

// Number is a lenient numeric form field. It decodes a JSON number or a
// JSON string; anything dashstate.ParseAmount does not accept decodes to 0
// and never fails the request.
type Number struct {
	decimal.Decimal
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	n.Decimal = decimal.Zero

	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		raw = s
	}

	n.Decimal = dashstate.ParseAmount(raw)
	return nil
}

// String renders the number the way it would be typed into the form.
func (n Number) String() string {
	return n.Decimal.String()
}
