package pricing

import "encoding/json"

// UnitSet is an ordered set of pricing units. Each unit appears at most once
// and iteration follows registry order.
type UnitSet struct {
	units []PricingUnit
	seen  map[PricingUnit]struct{}
}

func (s *UnitSet) add(u PricingUnit) {
	if s.seen == nil {
		s.seen = make(map[PricingUnit]struct{})
	}
	if _, ok := s.seen[u]; ok {
		return
	}
	s.seen[u] = struct{}{}
	s.units = append(s.units, u)
}

// Contains reports whether u is in the set
func (s UnitSet) Contains(u PricingUnit) bool {
	_, ok := s.seen[u]
	return ok
}

// Len returns the number of units in the set
func (s UnitSet) Len() int {
	return len(s.units)
}

// Units returns the members in registry order
func (s UnitSet) Units() []PricingUnit {
	return append([]PricingUnit(nil), s.units...)
}

// MarshalJSON encodes the set as a JSON array
func (s UnitSet) MarshalJSON() ([]byte, error) {
	if s.units == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.units)
}

// UnmarshalJSON decodes a JSON array of unit names. Unknown units are
// rejected and duplicates collapse.
func (s *UnitSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = UnitSet{}
	for _, name := range names {
		u, err := ParseUnit(name)
		if err != nil {
			return err
		}
		s.add(u)
	}
	return nil
}

// satisfies reports whether dims carries every field the unit needs and the
// unit is offered for the product type
func satisfies(desc UnitDescriptor, dims ProductDimensions) bool {
	if !desc.OfferedFor(dims.ProductType) {
		return false
	}
	for _, f := range desc.RequiredFields {
		if !dims.Has(f) {
			return false
		}
	}
	return true
}

// Available returns the units that can be computed for dims
func Available(dims ProductDimensions) UnitSet {
	var set UnitSet
	for _, desc := range registry {
		if desc.Kind == KindCount || satisfies(desc, dims) {
			set.add(desc.Unit)
		}
	}
	if set.Len() == 0 {
		set.add(UnitPiece)
	}
	return set
}

// suggestionOrder is the fixed tie-break: area, then weight, then density,
// falling back to count
var suggestionOrder = []struct {
	unit       PricingUnit
	carpetOnly bool
}{
	{UnitSqm, true},
	{UnitKg, false},
	{UnitGSM, true},
}

// Suggest returns the default pricing unit for dims
func Suggest(dims ProductDimensions) PricingUnit {
	for _, s := range suggestionOrder {
		if s.carpetOnly && dims.ProductType != ProductCarpet {
			continue
		}
		if satisfies(mustDescribe(s.unit), dims) {
			return s.unit
		}
	}
	return UnitPiece
}
