package normalize

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Products cleanses the CRM product extract. The compound product key is
// split into a category id (first five characters, '-' replaced with '_')
// and the remaining product key; validity ranges are rebuilt per product key
// so each version ends the day before its successor starts. The stored end
// date from the extract is ignored, it is known to be unreliable upstream.
func Products(in []RawProduct) []Product {
	out := make([]Product, 0, len(in))
	for _, raw := range in {
		compound := strings.TrimSpace(raw.Key)

		out = append(out, Product{
			ID:         parseInt(raw.ID),
			CategoryID: categoryID(compound),
			Key:        productKey(compound),
			Name:       strings.TrimSpace(raw.Name),
			Cost:       parseDecimal(raw.Cost),
			Line:       ProductLineMap.Normalize(raw.Line),
			StartDate:  parseDay(raw.StartDate),
		})
	}

	deriveEndDates(out)
	return out
}

// categoryID extracts the category portion of the compound key
func categoryID(compound string) string {
	if len(compound) < 5 {
		return strings.ReplaceAll(compound, "-", "_")
	}
	return strings.ReplaceAll(compound[:5], "-", "_")
}

// productKey extracts the remainder of the compound key past the separator
func productKey(compound string) string {
	if len(compound) <= 6 {
		return ""
	}
	return compound[6:]
}

// deriveEndDates closes each product version the day before the next version
// of the same key starts. The chronologically last version stays open.
// Output order is untouched; the sort happens on an index.
func deriveEndDates(products []Product) {
	groups := make(map[string][]int)
	for i, p := range products {
		if p.StartDate == nil {
			continue
		}
		groups[p.Key] = append(groups[p.Key], i)
	}

	for _, idxs := range groups {
		sort.SliceStable(idxs, func(a, b int) bool {
			return products[idxs[a]].StartDate.Before(*products[idxs[b]].StartDate)
		})
		for n := 0; n < len(idxs)-1; n++ {
			end := products[idxs[n+1]].StartDate.AddDate(0, 0, -1)
			products[idxs[n]].EndDate = &end
		}
		products[idxs[len(idxs)-1]].EndDate = nil
	}
}

func parseInt(raw string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func parseDecimal(raw string) *decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
