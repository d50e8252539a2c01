package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// EntityReport summarizes the outcome of a single entity load
type EntityReport struct {
	Entity      string
	RowsRead    int
	RowsKept    int
	RowsDropped int
	Warnings    int
	RowsLoaded  int
	Duration    time.Duration
	Err         error
}

// RunReport renders the per-entity summary of a load run
type RunReport struct {
	useColor bool
}

// NewRunReport creates a run report renderer
func NewRunReport(useColor bool) *RunReport {
	return &RunReport{useColor: useColor}
}

// Render builds the summary table for a set of entity results
func (r *RunReport) Render(results []EntityReport) string {
	var buf strings.Builder

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Entity", "Read", "Kept", "Dropped", "Warnings", "Loaded", "Duration", "Status"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, res := range results {
		status := "OK"
		if r.useColor {
			status = color.GreenString("OK")
		}
		if res.Err != nil {
			status = "FAILED"
			if r.useColor {
				status = color.RedString("FAILED")
			}
		}

		warnings := fmt.Sprintf("%d", res.Warnings)
		if res.Warnings > 0 && r.useColor {
			warnings = color.YellowString(warnings)
		}

		table.Append([]string{
			res.Entity,
			fmt.Sprintf("%d", res.RowsRead),
			fmt.Sprintf("%d", res.RowsKept),
			fmt.Sprintf("%d", res.RowsDropped),
			warnings,
			fmt.Sprintf("%d", res.RowsLoaded),
			formatDuration(res.Duration),
			status,
		})
	}

	table.Render()
	return buf.String()
}

// RenderFailures lists the errors of failed entities below the table
func (r *RunReport) RenderFailures(results []EntityReport) string {
	var buf strings.Builder

	for _, res := range results {
		if res.Err == nil {
			continue
		}
		line := fmt.Sprintf("  %s: %v\n", res.Entity, res.Err)
		if r.useColor {
			line = color.RedString(line)
		}
		buf.WriteString(line)
	}

	return buf.String()
}
