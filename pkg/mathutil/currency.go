// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves are rounded away from zero on the shortest decimal representation
// of val, so 1.005 becomes 1.01 rather than the 1.00 a binary rounding gives.
func Round(val float64) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	return decimal.NewFromFloat(val).Round(constants.DecimalPlaces).InexactFloat64()
}

// Sum adds every value of vals. An empty slice sums to 0.
func Sum(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return floats.Sum(vals)
}

// RoundedSum adds every value of vals and rounds the total to cents.
func RoundedSum(vals []float64) float64 {
	return Round(Sum(vals))
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsPositive checks if a value is positive (greater than tolerance)
func IsPositive(val float64) bool {
	return val > constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// AtLeastOne returns n, or 1 when n is zero or negative. It guards divisors
// such as a useful life or an amortization term.
func AtLeastOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
