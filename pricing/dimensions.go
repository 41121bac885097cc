package pricing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"carpet-erp/models"
)

// ProductDimensions holds the physical attributes of a product in base units:
// width and height in centimeters, weight in kilograms. A nil field was not
// supplied or could not be parsed; it is never the same as zero.
type ProductDimensions struct {
	ProductType ProductType `json:"productType"`
	Width       *float64    `json:"width,omitempty"`
	Height      *float64    `json:"height,omitempty"`
	Weight      *float64    `json:"weight,omitempty"`
	GSM         *float64    `json:"gsm,omitempty"`
	Denier      *float64    `json:"denier,omitempty"`
	ThreadCount *float64    `json:"threadCount,omitempty"`
}

// Resolve normalizes a catalog record into ProductDimensions
func Resolve(record models.CatalogRecord, productType ProductType) ProductDimensions {
	return ProductDimensions{
		ProductType: productType,
		Width:       parseDimension(record.Width),
		Height:      parseDimension(record.Height),
		Weight:      parseDimension(record.Weight),
		GSM:         parseDimension(record.GSM),
		Denier:      parseDimension(record.Denier),
		ThreadCount: parseDimension(record.ThreadCount),
	}
}

// Field returns the value of a dimension field, or nil when absent
func (d ProductDimensions) Field(field DimensionField) *float64 {
	switch field {
	case FieldWidth:
		return d.Width
	case FieldHeight:
		return d.Height
	case FieldWeight:
		return d.Weight
	case FieldGSM:
		return d.GSM
	case FieldDenier:
		return d.Denier
	case FieldThreadCount:
		return d.ThreadCount
	}
	return nil
}

// Has reports whether field is present and usable for a computation
func (d ProductDimensions) Has(field DimensionField) bool {
	v := d.Field(field)
	return v != nil && *v > 0
}

// Equal compares two dimension values field by field
func (d ProductDimensions) Equal(o ProductDimensions) bool {
	if d.ProductType != o.ProductType {
		return false
	}
	for _, f := range []DimensionField{FieldWidth, FieldHeight, FieldWeight, FieldGSM, FieldDenier, FieldThreadCount} {
		a, b := d.Field(f), o.Field(f)
		if (a == nil) != (b == nil) {
			return false
		}
		if a != nil && *a != *b {
			return false
		}
	}
	return true
}

// Float returns a pointer to v, for building dimensions by hand
func Float(v float64) *float64 {
	return &v
}

func parseDimension(raw any) *float64 {
	var v float64
	switch t := raw.(type) {
	case nil:
		return nil
	case float64:
		v = t
	case float32:
		v = float64(t)
	case int:
		v = float64(t)
	case int64:
		v = float64(t)
	case int32:
		v = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil
		}
		v = f
	case string:
		f, ok := parseDecoratedNumber(t)
		if !ok {
			return nil
		}
		v = f
	default:
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseDecoratedNumber keeps digits, '.' and '-' and parses what is left,
// so "120 cm" reads as 120 and "N/A" does not parse at all.
func parseDecoratedNumber(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
