package request

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuyList_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		cats  []string
		qty   []int
		price []int64
	}{
		{
			name:  "line items",
			body:  `{"buy":[{"category":"Card Printing","qty":100,"unitPrice":"5"},{"category":"Banner Printing","qty":1,"unitPrice":1500}]}`,
			cats:  []string{"Card Printing", "Banner Printing"},
			qty:   []int{100, 1},
			price: []int64{5, 1500},
		},
		{
			name:  "single label",
			body:  `{"buy":"Flag Printing"}`,
			cats:  []string{"Flag Printing"},
			qty:   []int{1},
			price: []int64{0},
		},
		{
			name:  "list of labels",
			body:  `{"buy":["Glass Printing","Sticker Printing"]}`,
			cats:  []string{"Glass Printing", "Sticker Printing"},
			qty:   []int{1, 1},
			price: []int64{0, 0},
		},
		{
			name:  "mixed",
			body:  `{"buy":["Glass Printing",{"category":"Card Printing","qty":2,"unitPrice":"abc"}]}`,
			cats:  []string{"Glass Printing", "Card Printing"},
			qty:   []int{1, 2},
			price: []int64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateProductRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			require.Len(t, req.Buy, len(tt.cats))
			for i, item := range req.Buy {
				assert.Equal(t, tt.cats[i], item.Category)
				assert.Equal(t, tt.qty[i], item.Qty)
				assert.True(t, item.UnitPrice.Value.Equal(decimal.NewFromInt(tt.price[i])), "price %s", item.UnitPrice.Value)
			}
		})
	}
}

func TestBuyList_AbsentAndNull(t *testing.T) {
	var req UpdateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ali"}`), &req))
	assert.Nil(t, req.Buy)

	require.NoError(t, json.Unmarshal([]byte(`{"buy":null}`), &req))
	assert.Nil(t, req.Buy)

	require.NoError(t, json.Unmarshal([]byte(`{"buy":[]}`), &req))
	assert.NotNil(t, req.Buy)
	assert.Empty(t, req.Buy)
}

func TestBuyList_Rejects(t *testing.T) {
	var req CreateProductRequest
	assert.Error(t, json.Unmarshal([]byte(`{"buy":42}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"buy":[true]}`), &req))
}

func TestCreateProductRequest_LenientAmounts(t *testing.T) {
	var req CreateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ali","amount":"800","advanceAmount":"oops"}`), &req))

	require.NotNil(t, req.Amount.Ptr())
	assert.True(t, req.Amount.Ptr().Equal(decimal.NewFromInt(800)))
	require.NotNil(t, req.AdvanceAmount.Ptr())
	assert.True(t, req.AdvanceAmount.Ptr().IsZero())

	var empty CreateProductRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ali"}`), &empty))
	assert.Nil(t, empty.Amount.Ptr())
}
