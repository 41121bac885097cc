package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "₹0.00"},
		{5, "₹5.00"},
		{999.999, "₹1,000.00"},
		{1944, "₹1,944.00"},
		{1944.0000000000002, "₹1,944.00"},
		{12345.675, "₹12,345.68"},
		{100000, "₹1,00,000.00"},
		{1944000, "₹19,44,000.00"},
		{123456789.5, "₹12,34,56,789.50"},
		{-1500, "-₹1,500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatINR(tt.amount))
		})
	}
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 1944.0, RoundMoney(1944.0000000000002))
	assert.Equal(t, 4.86, RoundMoney(4.860000000000001))
	assert.Equal(t, 0.13, RoundMoney(0.125))
	assert.Equal(t, -0.13, RoundMoney(-0.125))
}
