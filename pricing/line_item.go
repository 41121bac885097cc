package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrInvalidUnitPrice = errors.New("unit price must be a finite number not below 0")
)

// LineItem is one product row of an order being built. Derived fields are
// recomputed from scratch by every mutator; the zero value is the empty row.
type LineItem struct {
	ProductID    string            `json:"productId"`
	ProductType  ProductType       `json:"productType"`
	Quantity     int               `json:"quantity"`
	UnitPrice    float64           `json:"unitPrice"`
	PricingUnit  PricingUnit       `json:"pricingUnit"`
	Dimensions   ProductDimensions `json:"dimensions"`
	UnitValue    float64           `json:"unitValue"`
	TotalValue   float64           `json:"totalValue"`
	TotalPrice   float64           `json:"totalPrice"`
	IsValid      bool              `json:"isValid"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
}

// NewLineItem starts a row for a selected product with quantity 1, no price
// and the suggested unit for its dimensions
func NewLineItem(productID string, dims ProductDimensions) LineItem {
	item := LineItem{
		ProductID:   productID,
		ProductType: dims.ProductType,
		Quantity:    1,
		UnitPrice:   0,
		PricingUnit: Suggest(dims),
		Dimensions:  dims,
	}
	return item.Recompute()
}

// Result prices the item and applies the business rules
func (item LineItem) Result() PriceResult {
	return Validate(item, Calculate(item))
}

// Recompute returns a copy with the derived fields refreshed
func (item LineItem) Recompute() LineItem {
	r := item.Result()
	item.UnitValue = r.UnitValue
	item.TotalValue = r.TotalValue
	item.TotalPrice = r.TotalPrice
	item.IsValid = r.IsValid
	item.ErrorMessage = r.ErrorMessage
	return item
}

// WithQuantity returns a recomputed copy with a new quantity
func (item LineItem) WithQuantity(qty int) (LineItem, error) {
	if qty < 0 {
		return item, ErrNegativeQuantity
	}
	item.Quantity = qty
	return item.Recompute(), nil
}

// WithUnitPrice returns a recomputed copy with a new unit price
func (item LineItem) WithUnitPrice(price float64) (LineItem, error) {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return item, ErrInvalidUnitPrice
	}
	item.UnitPrice = price
	return item.Recompute(), nil
}

// WithPricingUnit returns a recomputed copy priced in another unit
func (item LineItem) WithPricingUnit(unit PricingUnit) (LineItem, error) {
	if _, err := Describe(unit); err != nil {
		return item, err
	}
	item.PricingUnit = unit
	return item.Recompute(), nil
}

// WithDimensions returns a recomputed copy for re-resolved dimensions. The
// pricing unit is kept; an unusable unit shows up as a validation error.
func (item LineItem) WithDimensions(dims ProductDimensions) LineItem {
	item.Dimensions = dims
	item.ProductType = dims.ProductType
	return item.Recompute()
}

// Edit is a set of user changes to apply to a line item in one step
type Edit struct {
	Quantity    *int
	UnitPrice   *float64
	PricingUnit *PricingUnit
}

// Apply applies every change in e and recomputes once. On error the item
// is returned unchanged.
func (item LineItem) Apply(e Edit) (LineItem, error) {
	orig := item
	if e.Quantity != nil {
		if *e.Quantity < 0 {
			return orig, ErrNegativeQuantity
		}
		item.Quantity = *e.Quantity
	}
	if e.UnitPrice != nil {
		p := *e.UnitPrice
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return orig, ErrInvalidUnitPrice
		}
		item.UnitPrice = p
	}
	if e.PricingUnit != nil {
		if _, err := Describe(*e.PricingUnit); err != nil {
			return orig, fmt.Errorf("pricing unit: %w", err)
		}
		item.PricingUnit = *e.PricingUnit
	}
	return item.Recompute(), nil
}
