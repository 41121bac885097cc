package pricing

// Validate applies the business rules to a calculator result. The first
// failing rule wins: price, then quantity, then the calculator's own error.
func Validate(item LineItem, result PriceResult) PriceResult {
	switch {
	case !(item.UnitPrice > 0):
		return withError(result, ErrNonPositivePrice)
	case item.Quantity <= 0:
		return withError(result, ErrNonPositiveQuantity)
	case result.err != nil:
		return result
	}
	result.IsValid = true
	result.ErrorMessage = ""
	return result
}

func withError(r PriceResult, err error) PriceResult {
	r.IsValid = false
	r.ErrorMessage = err.Error()
	r.err = err
	return r
}
