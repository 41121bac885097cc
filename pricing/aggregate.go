package pricing

// Summary is the order-level view of a set of line items
type Summary struct {
	Subtotal        float64 `json:"subtotal"`
	ValidLines      int     `json:"validLines"`
	UnresolvedLines int     `json:"unresolvedLines"`
}

// Total sums TotalPrice over the valid items. Invalid items add nothing.
func Total(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		if it.IsValid {
			total += it.TotalPrice
		}
	}
	return total
}

// Summarize totals items and counts the lines still needing attention
func Summarize(items []LineItem) Summary {
	s := Summary{Subtotal: Total(items)}
	for _, it := range items {
		if it.IsValid {
			s.ValidLines++
		} else {
			s.UnresolvedLines++
		}
	}
	return s
}
