package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	lines := []Line{
		{Side: SideTop, Quantity: 2, PricePolyester: 45, PriceEpoxy: 55},
		{Side: SideTop, Quantity: 1, PricePolyester: 95, PriceEpoxy: 105},
		{Side: SideBottom, Quantity: 1, PricePolyester: 65, PriceEpoxy: 75},
	}

	tests := []struct {
		name          string
		construction  string
		discountType  string
		discountValue float64
		wantSubtotal  float64
		wantDiscount  float64
		wantTotal     float64
	}{
		{
			name:         "polyester no discount",
			construction: Polyester,
			discountType: DiscountPercentage,
			wantSubtotal: 250,
			wantTotal:    250,
		},
		{
			name:         "epoxy price column",
			construction: Epoxy,
			discountType: DiscountPercentage,
			wantSubtotal: 290,
			wantTotal:    290,
		},
		{
			name:          "percentage discount",
			construction:  Polyester,
			discountType:  DiscountPercentage,
			discountValue: 10,
			wantSubtotal:  250,
			wantDiscount:  25,
			wantTotal:     225,
		},
		{
			name:          "amount discount",
			construction:  Polyester,
			discountType:  DiscountAmount,
			discountValue: 15,
			wantSubtotal:  250,
			wantDiscount:  15,
			wantTotal:     235,
		},
		{
			name:          "amount discount beyond subtotal goes negative",
			construction:  Polyester,
			discountType:  DiscountAmount,
			discountValue: 300,
			wantSubtotal:  250,
			wantDiscount:  300,
			wantTotal:     -50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := Calculate(lines, tt.construction, tt.discountType, tt.discountValue)
			assert.Equal(t, tt.wantSubtotal, quote.Subtotal)
			assert.Equal(t, tt.wantDiscount, quote.DiscountAmount)
			assert.Equal(t, tt.wantTotal, quote.Total)
			assert.Equal(t, quote.TopSubtotal+quote.BottomSubtotal, quote.Subtotal)
		})
	}
}

func TestCalculateDefaultsUnknownDiscountType(t *testing.T) {
	lines := []Line{{Side: SideTop, Quantity: 1, PricePolyester: 100, PriceEpoxy: 120}}

	quote := Calculate(lines, Polyester, "", 10)

	assert.Equal(t, DiscountPercentage, quote.DiscountType)
	assert.Equal(t, 10.0, quote.DiscountAmount)
	assert.Equal(t, 90.0, quote.Total)
}

func TestCalculateEmptyLines(t *testing.T) {
	quote := Calculate(nil, Polyester, DiscountPercentage, 10)

	assert.Zero(t, quote.Subtotal)
	assert.Zero(t, quote.Total)
}

func TestSideSubtotal(t *testing.T) {
	lines := []Line{
		{Side: SideTop, Quantity: 3, PricePolyester: 45, PriceEpoxy: 55},
		{Side: SideBottom, Quantity: 2, PricePolyester: 85, PriceEpoxy: 95},
	}

	assert.Equal(t, 135.0, SideSubtotal(lines, Polyester, SideTop))
	assert.Equal(t, 190.0, SideSubtotal(lines, Epoxy, SideBottom))
	assert.Zero(t, SideSubtotal(nil, Polyester, SideTop))
}

func TestLineUnitPriceFallsBackToPolyester(t *testing.T) {
	line := Line{PricePolyester: 45, PriceEpoxy: 55}

	assert.Equal(t, 55.0, line.UnitPrice(Epoxy))
	assert.Equal(t, 45.0, line.UnitPrice(Polyester))
	assert.Equal(t, 45.0, line.UnitPrice("carbon"))
}
