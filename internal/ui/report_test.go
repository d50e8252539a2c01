package ui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunReportRender(t *testing.T) {
	report := NewRunReport(false)

	out := report.Render([]EntityReport{
		{
			Entity:      "customers",
			RowsRead:    100,
			RowsKept:    97,
			RowsDropped: 3,
			Warnings:    1,
			RowsLoaded:  97,
			Duration:    1200 * time.Millisecond,
		},
		{
			Entity:   "sales",
			RowsRead: 50,
			Err:      fmt.Errorf("insert failed"),
		},
	})

	assert.Contains(t, out, "customers")
	assert.Contains(t, out, "97")
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "sales")
	assert.Contains(t, out, "FAILED")
}

func TestRunReportRenderFailures(t *testing.T) {
	report := NewRunReport(false)

	out := report.RenderFailures([]EntityReport{
		{Entity: "customers"},
		{Entity: "sales", Err: fmt.Errorf("insert failed")},
	})

	assert.Contains(t, out, "sales: insert failed")
	assert.NotContains(t, out, "customers")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90 * time.Second, "1m30s"},
		{2*time.Hour + 5*time.Minute, "2h5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.in))
	}
}

func TestGetSuggestion(t *testing.T) {
	assert.Contains(t, getSuggestion("Authentication FAILED for user"), "username and password")
	assert.Contains(t, getSuggestion("open data: no such file or directory"), "source directory")
	assert.Empty(t, getSuggestion("something else entirely"))
}
