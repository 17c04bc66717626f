package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NumericInput is a caller-supplied number as it arrived on the wire.
//
// Decoding never fails: a JSON number or a numeric string sets Numeric, anything
// else is recorded as present but not numeric so that validation can report it
// alongside the other field errors. JSON null counts as absent.
type NumericInput struct {
	Value   float64
	Present bool
	Numeric bool
}

// Number returns a present, numeric input holding v.
func Number(v float64) NumericInput {
	return NumericInput{Value: v, Present: true, Numeric: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumericInput) UnmarshalJSON(data []byte) error {
	*n = NumericInput{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	n.Present = true

	var raw string
	switch data[0] {
	case '"':
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		raw = strings.TrimSpace(raw)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		raw = string(data)
	default:
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	n.Value = v
	n.Numeric = true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NumericInput) MarshalJSON() ([]byte, error) {
	if !n.Present || !n.Numeric {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
