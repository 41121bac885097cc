package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundMoney rounds an amount to 2 decimal places, half away from zero.
// Use it only when presenting a value, never on stored intermediates.
func RoundMoney(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// FormatINR formats an amount as rupees with Indian digit grouping,
// e.g. 1944000 -> "₹19,44,000.00".
func FormatINR(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	s := d.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	b.Grow(len(s) + len(s)/2 + 4)
	if neg {
		b.WriteString("-")
	}
	b.WriteString("₹")

	// Last three digits form one group, every group before it has two.
	if len(intPart) <= 3 {
		b.WriteString(intPart)
	} else {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		rem := len(head) % 2
		if rem == 0 {
			rem = 2
		}
		b.WriteString(head[:rem])
		for i := rem; i < len(head); i += 2 {
			b.WriteByte(',')
			b.WriteString(head[i : i+2])
		}
		b.WriteByte(',')
		b.WriteString(tail)
	}

	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
