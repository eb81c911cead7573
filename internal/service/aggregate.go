package service

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ProgressPercent is current / goal * 100 rounded to two decimals. A goal of
// zero or less yields 0.
func ProgressPercent(current, goal decimal.Decimal) float64 {
	if goal.Sign() <= 0 {
		return 0
	}
	pct, _ := current.Mul(hundred).Div(goal).Round(2).Float64()
	return pct
}
