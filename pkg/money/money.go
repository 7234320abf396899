// Package money holds the amount arithmetic shared by orders, cash entries and the ledger.
// Every amount is a non-negative decimal rounded to two places.
package money

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept for every amount.
const Places = 2

// Coerce converts a decoded JSON value into an amount.
// Numbers and numeric strings parse; anything else becomes zero and negatives clamp to zero.
func Coerce(v any) decimal.Decimal {
	switch x := v.(type) {
	case decimal.Decimal:
		return Normalize(x)
	case float64:
		return fromFloat(x)
	case float32:
		return fromFloat(float64(x))
	case int:
		return Normalize(decimal.NewFromInt(int64(x)))
	case int64:
		return Normalize(decimal.NewFromInt(x))
	case json.Number:
		return Parse(x.String())
	case string:
		return Parse(x)
	default:
		return decimal.Zero
	}
}

// Parse reads an amount from text, returning zero for anything that is not a number.
func Parse(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return Normalize(d)
}

// Normalize clamps negatives to zero and rounds to Places.
func Normalize(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(Places)
}

// NonNegative returns d, or zero when d is below zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sum adds amounts after normalizing each one, so a negative entry counts as zero.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(Normalize(v))
	}
	return total
}

// Float returns the amount as a JSON-friendly float.
func Float(d decimal.Decimal) float64 {
	return d.Round(Places).InexactFloat64()
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return Normalize(decimal.NewFromFloat(f))
}

// Lenient is an amount field in a request body. Decoding never fails:
// malformed values become zero. Set reports whether the field was present and not null.
type Lenient struct {
	Value decimal.Decimal
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Lenient) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		l.Value, l.Set = decimal.Zero, false
		return nil
	}

	l.Set = true
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		l.Value = decimal.Zero
		return nil
	}
	l.Value = Coerce(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Lenient) MarshalJSON() ([]byte, error) {
	return json.Marshal(Float(l.Value))
}

// Ptr returns the amount when it was supplied, nil otherwise.
func (l Lenient) Ptr() *decimal.Decimal {
	if !l.Set {
		return nil
	}
	v := l.Value
	return &v
}

// NewLenient builds a present amount, mostly for tests and internal callers.
func NewLenient(v float64) Lenient {
	return Lenient{Value: fromFloat(v), Set: true}
}
