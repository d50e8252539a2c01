package warehouse

import "github.com/shopspring/decimal"

func mustDecimal(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
