package core

import "github.com/shopspring/decimal"

// Round2 rounds to two decimal places with half-even ties, the convention
// used for published card totals, currency rates and stock prices.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).RoundBank(2).Float64()
	return f
}
