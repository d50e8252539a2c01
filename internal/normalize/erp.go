package normalize

import (
	"strings"
	"time"
	"unicode"
)

// ErpCustomers cleanses the ERP customer demographics extract. Legacy ids
// carry a "NAS" prefix which is stripped, and birth dates in the future are
// nulled out.
func ErpCustomers(in []RawErpCustomer, now time.Time) []ErpCustomer {
	out := make([]ErpCustomer, 0, len(in))
	for _, raw := range in {
		id := strings.TrimSpace(raw.ID)
		id = strings.TrimPrefix(id, "NAS")

		birth := parseDay(raw.BirthDate)
		if birth != nil && birth.After(now) {
			birth = nil
		}

		out = append(out, ErpCustomer{
			ID:        id,
			BirthDate: birth,
			Gender:    GenderMap.Normalize(raw.Gender),
		})
	}
	return out
}

// ErpLocations cleanses the ERP location extract. Customer ids lose their
// punctuation so they join against the CRM key, and countries run through
// the closed country table.
func ErpLocations(in []RawErpLocation) []ErpLocation {
	out := make([]ErpLocation, 0, len(in))
	for _, raw := range in {
		out = append(out, ErpLocation{
			ID:      stripPunctuation(raw.ID),
			Country: CountryMap.Normalize(raw.Country),
		})
	}
	return out
}

// ErpCategories cleanses the ERP category extract. The maintenance flag and
// the text columns arrive with embedded carriage returns from the upstream
// export, so everything is control-stripped and trimmed.
func ErpCategories(in []RawErpCategory) []ErpCategory {
	out := make([]ErpCategory, 0, len(in))
	for _, raw := range in {
		out = append(out, ErpCategory{
			ID:          cleanText(raw.ID),
			Category:    cleanText(raw.Category),
			Subcategory: cleanText(raw.Subcategory),
			Maintenance: cleanText(raw.Maintenance),
		})
	}
	return out
}

// stripPunctuation removes hyphens, whitespace, and control characters from
// an identifier
func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '-' || unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
