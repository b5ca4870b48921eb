package nutrition

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a numeric record field decoded leniently. The diet API sometimes
// sends numbers as strings (e.g. "12.50") and omits fields entirely.
type Amount float64

// Value returns the amount, mapping negative and non-finite values to zero.
func (a Amount) Value() float64 {
	v := float64(a)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// UnmarshalJSON accepts numbers, numeric strings and null. Anything else decodes to zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = 0
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil
		}
		*a = ParseAmount(raw)
		return nil
	}
	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil
	}
	*a = Amount(Amount(v).Value())
	return nil
}

// MarshalJSON writes the sanitized value.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(a.Value(), 'f', -1, 64)), nil
}

// ParseAmount converts free text to an Amount, returning zero when unparsable.
func ParseAmount(raw string) Amount {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return Amount(Amount(v).Value())
}
