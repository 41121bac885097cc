package pricing

import (
	"errors"
	"fmt"
)

// Conversion constants
const (
	cmPerMeter    = 100.0
	sqcmPerSqm    = cmPerMeter * cmPerMeter
	sqftPerSqm    = 10.7639
	metersPerYard = 0.9144
	gramsPerKg    = 1000.0
	kgPerLiter    = 1.0
	gsmToKgPerSqm = 1000.0
)

var (
	ErrNonPositivePrice    = errors.New("enter a price for this item")
	ErrNonPositiveQuantity = errors.New("enter a quantity greater than 0")
)

// MissingDimensionError reports a derived unit whose dimension was not supplied
type MissingDimensionError struct {
	Field DimensionField
	Unit  PricingUnit
}

func (e MissingDimensionError) Error() string {
	return fmt.Sprintf("%s is required to price this item per %s", e.Field, e.Unit)
}

// UnitNotOfferedError reports a derived unit the registry does not offer
// for the item's product type
type UnitNotOfferedError struct {
	Unit        PricingUnit
	ProductType ProductType
}

func (e UnitNotOfferedError) Error() string {
	return fmt.Sprintf("%s pricing is not available for %s products", e.Unit, e.ProductType)
}

// PriceResult is the outcome of pricing one line item
type PriceResult struct {
	UnitValue    float64 `json:"unitValue"`
	TotalValue   float64 `json:"totalValue"`
	TotalPrice   float64 `json:"totalPrice"`
	IsValid      bool    `json:"isValid"`
	ErrorMessage string  `json:"errorMessage"`

	err error
}

// Err returns the reason the result is invalid, or nil
func (r PriceResult) Err() error {
	return r.err
}

func invalidResult(err error) PriceResult {
	return PriceResult{IsValid: false, ErrorMessage: err.Error(), err: err}
}

// Calculate prices a line item. User-facing problems come back in the
// result; an unknown unit or a negative quantity or price panics.
func Calculate(item LineItem) PriceResult {
	desc := mustDescribe(item.PricingUnit)
	if item.Quantity < 0 {
		panic(fmt.Sprintf("pricing: negative quantity %d reached the calculator", item.Quantity))
	}
	if item.UnitPrice < 0 {
		panic(fmt.Sprintf("pricing: negative unit price %v reached the calculator", item.UnitPrice))
	}

	qty := float64(item.Quantity)
	if desc.Kind == KindCount {
		return PriceResult{
			UnitValue:  1,
			TotalValue: qty,
			TotalPrice: item.UnitPrice * qty,
			IsValid:    true,
		}
	}

	if !desc.OfferedFor(item.Dimensions.ProductType) {
		return invalidResult(UnitNotOfferedError{Unit: desc.Unit, ProductType: item.Dimensions.ProductType})
	}
	for _, f := range desc.RequiredFields {
		if !item.Dimensions.Has(f) {
			return invalidResult(MissingDimensionError{Field: f, Unit: desc.Unit})
		}
	}

	unitValue := unitValueFor(desc.Unit, item.Dimensions)
	totalValue := unitValue * qty
	return PriceResult{
		UnitValue:  unitValue,
		TotalValue: totalValue,
		TotalPrice: totalValue * item.UnitPrice,
		IsValid:    true,
	}
}

// unitValueFor assumes every required field of unit is present in d
func unitValueFor(unit PricingUnit, d ProductDimensions) float64 {
	switch unit {
	case UnitKg:
		return *d.Weight
	case UnitGram:
		return *d.Weight * gramsPerKg
	case UnitMeter:
		return *d.Height / cmPerMeter
	case UnitYard:
		return *d.Height / cmPerMeter / metersPerYard
	case UnitSqm:
		return areaSqm(d)
	case UnitSqft:
		return areaSqm(d) * sqftPerSqm
	case UnitLiter:
		return *d.Weight / kgPerLiter
	case UnitGSM:
		return areaSqm(d) * *d.GSM / gsmToKgPerSqm
	}
	panic(fmt.Errorf("%w: no conversion for %q", ErrUnknownUnit, unit))
}

func areaSqm(d ProductDimensions) float64 {
	return *d.Width * *d.Height / sqcmPerSqm
}
