package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Text is a spreadsheet cell decoded as a trimmed string. The store returns
// cells as strings, numbers, booleans or null depending on how the sheet was
// typed, so all of them are accepted.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
	default:
		*t = Text(strings.TrimSpace(string(data)))
	}
	return nil
}

// String returns the cell content.
func (t Text) String() string { return string(t) }

// OrNA renders blank values as N/A.
func (t Text) OrNA() string {
	if t == "" {
		return "N/A"
	}
	return string(t)
}

// Number is a numeric spreadsheet cell. Blank, null and non-numeric values
// decode as zero.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	raw := strings.TrimSuffix(strings.TrimSpace(t.String()), "%")
	raw = strings.ReplaceAll(raw, ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}

// Int returns the value truncated to an integer count.
func (n Number) Int() int { return int(n) }
