package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func carpetDims() ProductDimensions {
	return ProductDimensions{ProductType: ProductCarpet, Width: Float(180), Height: Float(270)}
}

func TestCalculatePerPiece(t *testing.T) {
	item := LineItem{PricingUnit: UnitPiece, UnitPrice: 500, Quantity: 3}

	r := Validate(item, Calculate(item))

	assert.Equal(t, 1.0, r.UnitValue)
	assert.Equal(t, 3.0, r.TotalValue)
	assert.Equal(t, 1500.0, r.TotalPrice)
	assert.True(t, r.IsValid)
	assert.Empty(t, r.ErrorMessage)
	assert.NoError(t, r.Err())
}

func TestCalculatePerSquareMeter(t *testing.T) {
	item := LineItem{PricingUnit: UnitSqm, UnitPrice: 200, Quantity: 2, Dimensions: carpetDims()}

	r := Validate(item, Calculate(item))

	assert.InDelta(t, 4.86, r.UnitValue, delta)
	assert.InDelta(t, 9.72, r.TotalValue, delta)
	assert.InDelta(t, 1944.00, r.TotalPrice, delta)
	assert.True(t, r.IsValid)
}

func TestCalculateDerivedUnits(t *testing.T) {
	dims := ProductDimensions{
		ProductType: ProductCarpet,
		Width:       Float(200),
		Height:      Float(300),
		Weight:      Float(12.5),
		GSM:         Float(1500),
	}
	tests := []struct {
		unit        PricingUnit
		productType ProductType
		unitValue   float64
	}{
		{UnitKg, ProductCarpet, 12.5},
		{UnitGram, ProductCarpet, 12500},
		{UnitMeter, ProductCarpet, 3},
		{UnitYard, ProductCarpet, 3 / 0.9144},
		{UnitSqm, ProductCarpet, 6},
		{UnitSqft, ProductCarpet, 6 * 10.7639},
		{UnitLiter, ProductRawMaterial, 12.5},
		{UnitGSM, ProductCarpet, 6 * 1500 / 1000.0},
	}
	for _, tt := range tests {
		t.Run(string(tt.unit), func(t *testing.T) {
			d := dims
			d.ProductType = tt.productType
			item := LineItem{PricingUnit: tt.unit, UnitPrice: 10, Quantity: 4, Dimensions: d}
			r := Calculate(item)
			require.True(t, r.IsValid, r.ErrorMessage)
			assert.InDelta(t, tt.unitValue, r.UnitValue, delta)
			assert.InDelta(t, tt.unitValue*4, r.TotalValue, delta)
			assert.InDelta(t, tt.unitValue*4*10, r.TotalPrice, 1e-6)
		})
	}
}

func TestCalculateMissingDimension(t *testing.T) {
	item := LineItem{
		PricingUnit: UnitSqm,
		UnitPrice:   200,
		Quantity:    2,
		Dimensions:  ProductDimensions{ProductType: ProductCarpet, Height: Float(270)},
	}

	r := Validate(item, Calculate(item))

	assert.False(t, r.IsValid)
	assert.Contains(t, r.ErrorMessage, "width")
	assert.Zero(t, r.UnitValue)
	assert.Zero(t, r.TotalValue)
	assert.Zero(t, r.TotalPrice)

	var missing MissingDimensionError
	require.ErrorAs(t, r.Err(), &missing)
	assert.Equal(t, FieldWidth, missing.Field)
	assert.Equal(t, UnitSqm, missing.Unit)
}

func TestCalculateUnitNotOfferedForProductType(t *testing.T) {
	tests := []struct {
		name string
		item LineItem
	}{
		{"gsm on raw material", LineItem{
			PricingUnit: UnitGSM, UnitPrice: 100, Quantity: 2,
			Dimensions: ProductDimensions{
				ProductType: ProductRawMaterial, Width: Float(200), Height: Float(300), GSM: Float(1500),
			},
		}},
		{"liter on carpet", LineItem{
			PricingUnit: UnitLiter, UnitPrice: 50, Quantity: 1,
			Dimensions:  ProductDimensions{ProductType: ProductCarpet, Weight: Float(10)},
		}},
		{"derived unit without product type", LineItem{
			PricingUnit: UnitKg, UnitPrice: 50, Quantity: 1,
			Dimensions:  ProductDimensions{Weight: Float(10)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Validate(tt.item, Calculate(tt.item))

			assert.False(t, r.IsValid)
			assert.Contains(t, r.ErrorMessage, "not available")
			assert.Zero(t, r.UnitValue)
			assert.Zero(t, r.TotalValue)
			assert.Zero(t, r.TotalPrice)

			var notOffered UnitNotOfferedError
			require.ErrorAs(t, r.Err(), &notOffered)
			assert.Equal(t, tt.item.PricingUnit, notOffered.Unit)
			assert.Equal(t, tt.item.Dimensions.ProductType, notOffered.ProductType)
		})
	}
}

func TestCalculateZeroDimensionIsMissing(t *testing.T) {
	dims := ProductDimensions{ProductType: ProductCarpet, Weight: Float(0)}
	r := Calculate(LineItem{PricingUnit: UnitKg, UnitPrice: 10, Quantity: 1, Dimensions: dims})
	assert.False(t, r.IsValid)
	assert.Contains(t, r.ErrorMessage, "weight")
	assert.Zero(t, r.TotalPrice)
}

func TestCalculateCountIgnoresDimensions(t *testing.T) {
	dimsCases := []ProductDimensions{
		{},
		{ProductType: ProductCarpet},
		carpetDims(),
		{ProductType: ProductRawMaterial, Width: Float(-1), Weight: Float(0)},
	}
	for _, unit := range []PricingUnit{UnitPiece, UnitRoll, UnitUnit} {
		for _, dims := range dimsCases {
			for _, qty := range []int{0, 1, 7, 250} {
				item := LineItem{PricingUnit: unit, UnitPrice: 123.45, Quantity: qty, Dimensions: dims}
				r := Calculate(item)
				assert.True(t, r.IsValid)
				assert.Equal(t, 123.45*float64(qty), r.TotalPrice)
			}
		}
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	items := []LineItem{
		{PricingUnit: UnitSqft, UnitPrice: 17.3, Quantity: 9, Dimensions: carpetDims()},
		{PricingUnit: UnitGSM, UnitPrice: 480, Quantity: 3, Dimensions: ProductDimensions{
			ProductType: ProductCarpet, Width: Float(244), Height: Float(305), GSM: Float(2100),
		}},
		{PricingUnit: UnitKg, UnitPrice: 90, Quantity: 2, Dimensions: ProductDimensions{
			ProductType: ProductRawMaterial, Weight: Float(2.5),
		}},
		{PricingUnit: UnitLiter, UnitPrice: 40, Quantity: 1, Dimensions: carpetDims()},
	}
	for _, item := range items {
		first := Calculate(item)
		for i := 0; i < 100; i++ {
			assert.Equal(t, first, Calculate(item))
		}
	}
}

func TestCalculateMonotonicInQuantity(t *testing.T) {
	for _, unit := range []PricingUnit{UnitPiece, UnitSqm, UnitSqft, UnitMeter, UnitYard} {
		prev := -1.0
		for qty := 0; qty <= 50; qty++ {
			r := Calculate(LineItem{PricingUnit: unit, UnitPrice: 199.99, Quantity: qty, Dimensions: carpetDims()})
			assert.GreaterOrEqual(t, r.TotalPrice, prev, "unit %s qty %d", unit, qty)
			prev = r.TotalPrice
		}
	}
}

func TestCalculatePanicsOnDefects(t *testing.T) {
	assert.Panics(t, func() {
		Calculate(LineItem{PricingUnit: "bale", UnitPrice: 1, Quantity: 1})
	})
	assert.Panics(t, func() {
		Calculate(LineItem{PricingUnit: UnitPiece, UnitPrice: 1, Quantity: -1})
	})
	assert.Panics(t, func() {
		Calculate(LineItem{PricingUnit: UnitPiece, UnitPrice: -1, Quantity: 1})
	})
}
