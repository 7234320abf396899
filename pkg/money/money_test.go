package money

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"float", 12.5, "12.5"},
		{"int", 800, "800"},
		{"numeric string", " 300.456 ", "300.46"},
		{"garbage string", "abc", "0"},
		{"negative", -5.0, "0"},
		{"negative string", "-10", "0"},
		{"nil", nil, "0"},
		{"bool", true, "0"},
		{"nan", math.NaN(), "0"},
		{"inf", math.Inf(1), "0"},
		{"json number", json.Number("42"), "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.in).String())
		})
	}
}

func TestSum(t *testing.T) {
	got := Sum(decimal.NewFromInt(100), decimal.RequireFromString("0.25"), decimal.Zero)
	assert.True(t, got.Equal(decimal.RequireFromString("100.25")))
	assert.True(t, Sum().IsZero())
	assert.True(t, Sum(decimal.NewFromInt(50), decimal.NewFromInt(-20)).Equal(decimal.NewFromInt(50)))
}

func TestNonNegative(t *testing.T) {
	assert.True(t, NonNegative(decimal.NewFromInt(-3)).IsZero())
	assert.True(t, NonNegative(decimal.NewFromInt(3)).Equal(decimal.NewFromInt(3)))
}

func TestLenient_Unmarshal(t *testing.T) {
	var body struct {
		Amount  Lenient `json:"amount"`
		Advance Lenient `json:"advance"`
		Missing Lenient `json:"missing"`
		Null    Lenient `json:"null"`
		Object  Lenient `json:"object"`
	}

	err := json.Unmarshal([]byte(`{"amount":"800","advance":"oops","null":null,"object":{"a":1}}`), &body)
	require.NoError(t, err)

	assert.True(t, body.Amount.Set)
	assert.Equal(t, "800", body.Amount.Value.String())

	assert.True(t, body.Advance.Set)
	assert.True(t, body.Advance.Value.IsZero())

	assert.False(t, body.Missing.Set)
	assert.Nil(t, body.Missing.Ptr())

	assert.False(t, body.Null.Set)

	assert.True(t, body.Object.Set)
	assert.True(t, body.Object.Value.IsZero())
}

func TestLenient_MarshalAsNumber(t *testing.T) {
	data, err := json.Marshal(NewLenient(12.345))
	require.NoError(t, err)
	assert.JSONEq(t, `12.35`, string(data))
}
