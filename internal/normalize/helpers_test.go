package normalize

import (
	"strconv"

	"github.com/shopspring/decimal"
)

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

func formatIntPtr(n *int64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatInt(*n, 10)
}

func formatDecimalPtr(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func formatDatePtr(d *Date) string {
	if d == nil {
		return ""
	}
	return strconv.Itoa(d.Int())
}

func mustDecimal(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
