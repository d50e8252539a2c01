package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Sales cleanses the CRM sales extract. Dates are accepted only as positive
// 8-digit integers and ship/due dates may not precede the order date; the
// sales amount is forced consistent with quantity × |price|, recomputing it
// whenever the stored value is missing, non-positive, or contradicts the
// other two columns. A price that is missing or non-positive is rebuilt from
// sales / quantity afterwards, so a negative unit price comes out as its
// absolute value. Every malformed field is coerced to NULL; no row is ever
// dropped.
func Sales(in []RawSale) []Sale {
	out := make([]Sale, 0, len(in))
	for _, raw := range in {
		s := Sale{
			OrderNumber: strings.TrimSpace(raw.OrderNumber),
			ProductKey:  strings.TrimSpace(raw.ProductKey),
			CustomerID:  parseInt(raw.CustomerID),
			OrderDate:   ParseDateKey(raw.OrderDate),
			ShipDate:    ParseDateKey(raw.ShipDate),
			DueDate:     ParseDateKey(raw.DueDate),
			Sales:       parseDecimal(raw.Sales),
			Quantity:    parseInt(raw.Quantity),
			Price:       parseDecimal(raw.Price),
		}

		// A shipment or due date before the order date is impossible
		if s.OrderDate != nil {
			if s.ShipDate != nil && s.ShipDate.Before(*s.OrderDate) {
				s.ShipDate = nil
			}
			if s.DueDate != nil && s.DueDate.Before(*s.OrderDate) {
				s.DueDate = nil
			}
		}

		reconcileAmounts(&s)
		out = append(out, s)
	}
	return out
}

// reconcileAmounts enforces sales = quantity × |price|, then rebuilds a
// missing or non-positive price from |sales / quantity|. A non-terminating
// division rounds the derived price, so sales is re-anchored to the
// quantity × price product afterwards; the invariant holds on every output
// and a rerun over the result is a no-op.
func reconcileAmounts(s *Sale) {
	if s.Quantity != nil && s.Price != nil {
		expected := decimal.NewFromInt(*s.Quantity).Mul(s.Price.Abs())
		if s.Sales == nil || s.Sales.Sign() <= 0 || !s.Sales.Equal(expected) {
			s.Sales = &expected
		}
	} else if s.Sales != nil && s.Sales.Sign() <= 0 {
		s.Sales = nil
	}

	if s.Price == nil || s.Price.Sign() <= 0 {
		if s.Sales != nil && s.Quantity != nil && *s.Quantity != 0 {
			derived := s.Sales.Div(decimal.NewFromInt(*s.Quantity)).Abs()
			s.Price = &derived

			product := decimal.NewFromInt(*s.Quantity).Mul(derived)
			if !s.Sales.Equal(product) {
				s.Sales = &product
			}
		} else {
			s.Price = nil
		}
	}
}
