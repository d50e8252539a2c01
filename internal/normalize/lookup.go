package normalize

import "strings"

// NotAvailable is the default label for empty or unmapped categorical codes
const NotAvailable = "n/a"

// CodeMap is a closed lookup table from source codes to business labels.
// Lookups trim, strip embedded line breaks, and compare case-insensitively;
// anything outside the table falls through to the default arm.
type CodeMap struct {
	labels   map[string]string
	fallback string
	// passthrough keeps the cleaned original value for unmapped non-empty
	// inputs instead of the fallback (used by the country map)
	passthrough bool
}

// Normalize maps a raw code to its label
func (m CodeMap) Normalize(raw string) string {
	cleaned := cleanText(raw)
	if cleaned == "" {
		return m.fallback
	}
	if label, ok := m.labels[strings.ToUpper(cleaned)]; ok {
		return label
	}
	if m.passthrough {
		return cleaned
	}
	return m.fallback
}

var (
	// MaritalStatusMap maps CRM marital-status codes. Output labels map to
	// themselves so an already-cleaned value survives a rerun unchanged.
	MaritalStatusMap = CodeMap{
		labels: map[string]string{
			"S":       "Single",
			"SINGLE":  "Single",
			"M":       "Married",
			"MARRIED": "Married",
			"N/A":     NotAvailable,
		},
		fallback: NotAvailable,
	}

	// GenderMap maps CRM gender codes and ERP free-text gender values
	GenderMap = CodeMap{
		labels: map[string]string{
			"F":      "Female",
			"FEMALE": "Female",
			"M":      "Male",
			"MALE":   "Male",
			"N/A":    NotAvailable,
		},
		fallback: NotAvailable,
	}

	// ProductLineMap maps CRM product-line codes
	ProductLineMap = CodeMap{
		labels: map[string]string{
			"M":           "Mountain",
			"MOUNTAIN":    "Mountain",
			"R":           "Road",
			"ROAD":        "Road",
			"S":           "Other Sales",
			"OTHER SALES": "Other Sales",
			"T":           "Touring",
			"TOURING":     "Touring",
			"N/A":         NotAvailable,
		},
		fallback: NotAvailable,
	}

	// CountryMap normalizes ERP country codes; unmapped non-empty values
	// keep their cleaned original spelling
	CountryMap = CodeMap{
		labels: map[string]string{
			"US":            "United States",
			"USA":           "United States",
			"UNITED STATES": "United States",
			"DE":            "Germany",
			"GERMANY":       "Germany",
		},
		fallback:    NotAvailable,
		passthrough: true,
	}
)

// cleanText trims leading/trailing whitespace and strips embedded carriage
// returns, line feeds, and other control characters
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
