package pricing

import (
	"errors"
	"fmt"
)

// PricingUnit is the unit of measure a price is quoted against
type PricingUnit string

const (
	UnitPiece PricingUnit = "piece"
	UnitRoll  PricingUnit = "roll"
	UnitUnit  PricingUnit = "unit"
	UnitKg    PricingUnit = "kg"
	UnitGram  PricingUnit = "gram"
	UnitMeter PricingUnit = "meter"
	UnitSqm   PricingUnit = "sqm"
	UnitSqft  PricingUnit = "sqft"
	UnitYard  PricingUnit = "yard"
	UnitLiter PricingUnit = "liter"
	UnitGSM   PricingUnit = "gsm"
)

// Kind groups pricing units by the physical quantity they measure
type Kind string

const (
	KindCount   Kind = "count"
	KindWeight  Kind = "weight"
	KindLength  Kind = "length"
	KindArea    Kind = "area"
	KindVolume  Kind = "volume"
	KindDensity Kind = "density"
)

// DimensionField names one optional field of ProductDimensions
type DimensionField string

const (
	FieldWidth       DimensionField = "width"
	FieldHeight      DimensionField = "height"
	FieldWeight      DimensionField = "weight"
	FieldGSM         DimensionField = "gsm"
	FieldDenier      DimensionField = "denier"
	FieldThreadCount DimensionField = "threadCount"
)

// ProductType distinguishes finished carpets from raw materials
type ProductType string

const (
	ProductCarpet      ProductType = "carpet"
	ProductRawMaterial ProductType = "raw_material"
)

// ErrUnknownUnit is returned when a unit is not in the registry
var ErrUnknownUnit = errors.New("unknown pricing unit")

// UnitDescriptor describes a registered pricing unit
type UnitDescriptor struct {
	Unit           PricingUnit      `json:"unit"`
	Label          string           `json:"label"`
	Description    string           `json:"description"`
	Kind           Kind             `json:"kind"`
	RequiredFields []DimensionField `json:"requiredFields"`
	// ProductTypes lists the product types the unit is offered for
	ProductTypes []ProductType `json:"productTypes"`
}

// Requires reports whether the unit needs the given dimension field
func (d UnitDescriptor) Requires(field DimensionField) bool {
	for _, f := range d.RequiredFields {
		if f == field {
			return true
		}
	}
	return false
}

// OfferedFor reports whether the unit may be offered for a product type
func (d UnitDescriptor) OfferedFor(productType ProductType) bool {
	for _, pt := range d.ProductTypes {
		if pt == productType {
			return true
		}
	}
	return false
}

var allProducts = []ProductType{ProductCarpet, ProductRawMaterial}

// registry is ordered the way units are listed to the user
var registry = []UnitDescriptor{
	{Unit: UnitPiece, Label: "Per Piece", Description: "Price per physical piece", Kind: KindCount, ProductTypes: allProducts},
	{Unit: UnitRoll, Label: "Per Roll", Description: "Price per roll as supplied", Kind: KindCount, ProductTypes: allProducts},
	{Unit: UnitUnit, Label: "Per Unit", Description: "Price per catalog unit", Kind: KindCount, ProductTypes: allProducts},
	{Unit: UnitKg, Label: "Per Kilogram", Description: "Price per kilogram of product weight", Kind: KindWeight,
		RequiredFields: []DimensionField{FieldWeight}, ProductTypes: allProducts},
	{Unit: UnitGram, Label: "Per Gram", Description: "Price per gram of product weight", Kind: KindWeight,
		RequiredFields: []DimensionField{FieldWeight}, ProductTypes: allProducts},
	{Unit: UnitMeter, Label: "Per Running Meter", Description: "Price per meter of length", Kind: KindLength,
		RequiredFields: []DimensionField{FieldHeight}, ProductTypes: allProducts},
	{Unit: UnitSqm, Label: "Per Square Meter", Description: "Price per square meter of area", Kind: KindArea,
		RequiredFields: []DimensionField{FieldWidth, FieldHeight}, ProductTypes: allProducts},
	{Unit: UnitSqft, Label: "Per Square Foot", Description: "Price per square foot of area", Kind: KindArea,
		RequiredFields: []DimensionField{FieldWidth, FieldHeight}, ProductTypes: allProducts},
	{Unit: UnitYard, Label: "Per Running Yard", Description: "Price per yard of length", Kind: KindLength,
		RequiredFields: []DimensionField{FieldHeight}, ProductTypes: allProducts},
	{Unit: UnitLiter, Label: "Per Liter", Description: "Price per liter of liquid material", Kind: KindVolume,
		RequiredFields: []DimensionField{FieldWeight}, ProductTypes: []ProductType{ProductRawMaterial}},
	{Unit: UnitGSM, Label: "Per Kg Face Weight (GSM)", Description: "Price per kilogram of pile implied by area and GSM", Kind: KindDensity,
		RequiredFields: []DimensionField{FieldWidth, FieldHeight, FieldGSM}, ProductTypes: []ProductType{ProductCarpet}},
}

var registryIndex = func() map[PricingUnit]int {
	idx := make(map[PricingUnit]int, len(registry))
	for i, d := range registry {
		idx[d.Unit] = i
	}
	return idx
}()

// ListUnits returns every registered unit in display order
func ListUnits() []UnitDescriptor {
	out := make([]UnitDescriptor, len(registry))
	for i, d := range registry {
		out[i] = d.clone()
	}
	return out
}

// Describe returns the descriptor for unit
func Describe(unit PricingUnit) (UnitDescriptor, error) {
	i, ok := registryIndex[unit]
	if !ok {
		return UnitDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return registry[i].clone(), nil
}

// ParseUnit validates a unit name coming from outside the process
func ParseUnit(s string) (PricingUnit, error) {
	u := PricingUnit(s)
	if _, ok := registryIndex[u]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// ParseProductType validates a product type name. Empty defaults to carpet.
func ParseProductType(s string) (ProductType, error) {
	switch ProductType(s) {
	case "", ProductCarpet:
		return ProductCarpet, nil
	case ProductRawMaterial:
		return ProductRawMaterial, nil
	}
	return "", fmt.Errorf("unknown product type %q", s)
}

// mustDescribe panics on units the registry does not know. Reaching it with
// such a unit means the calculator and the registry have drifted apart.
func mustDescribe(unit PricingUnit) UnitDescriptor {
	i, ok := registryIndex[unit]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownUnit, unit))
	}
	return registry[i]
}

func (d UnitDescriptor) clone() UnitDescriptor {
	d.RequiredFields = append(make([]DimensionField, 0, len(d.RequiredFields)), d.RequiredFields...)
	d.ProductTypes = append(make([]ProductType, 0, len(d.ProductTypes)), d.ProductTypes...)
	return d
}
