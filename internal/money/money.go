// Package money provides the exact decimal arithmetic used for line
// totals and order amounts. Binary floating point is never used for
// money values: summing hundreds of line items must not drift.
package money

import "github.com/shopspring/decimal"

// LineTotal returns unitCost * quantity.
func LineTotal(unitCost decimal.Decimal, quantity int) decimal.Decimal {
	return unitCost.Mul(decimal.NewFromInt(int64(quantity)))
}

// Sum returns the exact sum of the given totals. An empty input sums
// to zero.
func Sum(totals ...decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum
}
