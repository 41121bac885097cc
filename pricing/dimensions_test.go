package pricing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpet-erp/models"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  *float64
	}{
		{"nil", nil, nil},
		{"float", 180.5, Float(180.5)},
		{"int", 270, Float(270)},
		{"json number", json.Number("12.5"), Float(12.5)},
		{"decorated cm", "120 cm", Float(120)},
		{"decorated mm", "12mm", Float(12)},
		{"padded", "  2.75 kg ", Float(2.75)},
		{"negative", "-3", Float(-3)},
		{"not available", "N/A", nil},
		{"empty", "", nil},
		{"two points", "1.2.3", nil},
		{"lone minus", "-", nil},
		{"nan float", math.NaN(), nil},
		{"inf float", math.Inf(1), nil},
		{"bool", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDimension(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestResolve(t *testing.T) {
	record := models.CatalogRecord{
		ID:     "CP-001",
		Width:  "180 cm",
		Height: 270.0,
		Weight: "N/A",
		GSM:    "1800 gsm",
	}

	dims := Resolve(record, ProductCarpet)

	assert.Equal(t, ProductCarpet, dims.ProductType)
	require.NotNil(t, dims.Width)
	assert.Equal(t, 180.0, *dims.Width)
	require.NotNil(t, dims.Height)
	assert.Equal(t, 270.0, *dims.Height)
	assert.Nil(t, dims.Weight, "unparseable weight must be absent, not zero")
	require.NotNil(t, dims.GSM)
	assert.Equal(t, 1800.0, *dims.GSM)
	assert.Nil(t, dims.Denier)
	assert.Nil(t, dims.ThreadCount)
}

func TestResolveCarriesProductType(t *testing.T) {
	dims := Resolve(models.CatalogRecord{ProductType: "carpet"}, ProductRawMaterial)
	assert.Equal(t, ProductRawMaterial, dims.ProductType)
}

func TestHas(t *testing.T) {
	dims := ProductDimensions{Width: Float(0), Height: Float(-5), Weight: Float(2)}
	assert.False(t, dims.Has(FieldWidth))
	assert.False(t, dims.Has(FieldHeight))
	assert.True(t, dims.Has(FieldWeight))
	assert.False(t, dims.Has(FieldGSM))
}

func TestEqual(t *testing.T) {
	a := ProductDimensions{ProductType: ProductCarpet, Width: Float(180), Height: Float(270)}
	b := ProductDimensions{ProductType: ProductCarpet, Width: Float(180), Height: Float(270)}
	assert.True(t, a.Equal(b))

	b.Weight = Float(3)
	assert.False(t, a.Equal(b))

	c := a
	c.ProductType = ProductRawMaterial
	assert.False(t, a.Equal(c))
}
