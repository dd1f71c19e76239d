package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateCommission(t *testing.T) {
	tests := []struct {
		name       string
		baseAmount float64
		percentage float64
		expected   float64
	}{
		{"whole amounts", 1000, 40, 400},
		{"ten percent", 1000, 10, 100},
		{"fractional base", 2499.50, 40, 999.80},
		{"fractional percentage", 1000, 2.5, 25},
		{"small amount", 1, 10, 0.10},
		{"zero percentage", 1000, 0, 0},
		{"zero amount", 0, 40, 0},
		{"negative amount", -100, 40, 0},
		{"negative percentage", 1000, -10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CalculateCommission(tc.baseAmount, tc.percentage))
		})
	}
}

func TestCalculateCommission_HalfEvenRounding(t *testing.T) {
	// 0.25 * 10% = 2.5 cents: 2 is even, rounds down
	assert.Equal(t, 0.02, CalculateCommission(0.25, 10))
	// 0.35 * 10% = 3.5 cents: 3 is odd, rounds up
	assert.Equal(t, 0.04, CalculateCommission(0.35, 10))
	// 0.45 * 10% = 4.5 cents: 4 is even, rounds down
	assert.Equal(t, 0.04, CalculateCommission(0.45, 10))
}

func TestCalculateCommission_NoDriftAcrossRepeats(t *testing.T) {
	// The same inputs must always produce the same payout
	first := CalculateCommission(333.33, 33.3)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, CalculateCommission(333.33, 33.3))
	}
}
