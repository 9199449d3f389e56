package entity

import (
	"errors"
	"math"
)

var ErrAmountTooLarge = errors.New("amount is too large")

// addAmount sums two non-negative amounts.
func addAmount(a, b int64) (int64, error) {
	if b > math.MaxInt64-a {
		return 0, ErrAmountTooLarge
	}
	return a + b, nil
}

// mulAmount multiplies two non-negative amounts.
func mulAmount(a, b int64) (int64, error) {
	if a != 0 && b > math.MaxInt64/a {
		return 0, ErrAmountTooLarge
	}
	return a * b, nil
}

// AddQuantity sums two positive quantities, failing instead of wrapping.
func AddQuantity(a, b int64) (int64, error) {
	return addAmount(a, b)
}
