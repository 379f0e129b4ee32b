package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// Float is a float64 whose undefined values (NaN, ±Inf) encode as JSON null
type Float float64

// NaN returns an undefined Float
func NaN() Float {
	return Float(math.NaN())
}

// Valid reports whether the value is defined
func (f Float) Valid() bool {
	v := float64(f)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// MarshalJSON implements json.Marshaler
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

// UnmarshalJSON implements json.Unmarshaler
func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = NaN()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// String formats the value for tabular output, undefined values become empty
func (f Float) String() string {
	if !f.Valid() {
		return ""
	}
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

// Floats converts a float64 slice
func Floats(values []float64) []Float {
	out := make([]Float, len(values))
	for i, v := range values {
		out[i] = Float(v)
	}
	return out
}
