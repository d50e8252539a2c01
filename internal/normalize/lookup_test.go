package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenderMap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"code female", "F", "Female"},
		{"code male", "M", "Male"},
		{"lowercase with padding", " m ", "Male"},
		{"free text", "Female", "Female"},
		{"free text uppercase", "MALE", "Male"},
		{"unmapped", "X", NotAvailable},
		{"empty", "", NotAvailable},
		{"whitespace only", "   ", NotAvailable},
		{"embedded carriage return", "F\r", "Female"},
		{"already cleaned default", "n/a", NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GenderMap.Normalize(tt.input))
		})
	}
}

func TestMaritalStatusMap(t *testing.T) {
	assert.Equal(t, "Single", MaritalStatusMap.Normalize("S"))
	assert.Equal(t, "Married", MaritalStatusMap.Normalize(" m "))
	assert.Equal(t, NotAvailable, MaritalStatusMap.Normalize("D"))
	assert.Equal(t, NotAvailable, MaritalStatusMap.Normalize(""))
}

func TestProductLineMap(t *testing.T) {
	tests := map[string]string{
		"M":  "Mountain",
		"R":  "Road",
		"S":  "Other Sales",
		"T":  "Touring",
		"t ": "Touring",
		"Z":  NotAvailable,
		"":   NotAvailable,
	}
	for input, expected := range tests {
		assert.Equal(t, expected, ProductLineMap.Normalize(input), "input %q", input)
	}
}

func TestCountryMap(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"US", "United States"},
		{"USA", "United States"},
		{"usa", "United States"},
		{"United States", "United States"},
		{"DE", "Germany"},
		{"Germany", "Germany"},
		{"", NotAvailable},
		{"  ", NotAvailable},
		{"Australia", "Australia"},
		{"France\r\n", "France"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CountryMap.Normalize(tt.input), "input %q", tt.input)
	}
}

func TestCodeMapIdempotence(t *testing.T) {
	maps := map[string]CodeMap{
		"marital": MaritalStatusMap,
		"gender":  GenderMap,
		"line":    ProductLineMap,
		"country": CountryMap,
	}
	inputs := []string{"S", "M", "F", "R", "T", "US", "DE", "X", "", "Australia"}

	for name, m := range maps {
		for _, input := range inputs {
			once := m.Normalize(input)
			assert.Equal(t, once, m.Normalize(once), "%s map not a fixed point for %q", name, input)
		}
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Yes", cleanText("Yes\r\n"))
	assert.Equal(t, "Bikes", cleanText("  Bikes  "))
	assert.Equal(t, "ab", cleanText("a\rb"))
	assert.Equal(t, "", cleanText("\r\n\t "))
}
