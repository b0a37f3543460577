// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"strconv"

	"github.com/upenn-libraries/libhours"
	"github.com/upenn-libraries/libhours/pkg/render"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// LocationsToTableData converts locations to table format.
func LocationsToTableData(locations []libhours.Location, wide bool) Data {
	headers := []string{"Key", "LID", "Name", "Hours", "Chart"}
	align := []Align{AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignCenter}
	if wide {
		headers = append(headers, "Calendar", "Detail")
		align = append(align, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(locations))
	for _, loc := range locations {
		lid := "-"
		if loc.LID != 0 {
			lid = strconv.Itoa(loc.LID)
		}
		hours := loc.Hours
		if len(hours) > 2 {
			hours = hours[2:]
		}
		if loc.Manual {
			hours += " (manual)"
		}
		chart := ""
		if loc.InChart {
			chart = "✓"
		}

		row := []string{loc.Key, lid, loc.Name, hours, chart}
		if wide {
			row = append(row, loc.CalendarURL, loc.DetailURL)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// PlaceholdersToTableData converts placeholder results to table format.
func PlaceholdersToTableData(results []render.Result) Data {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		detail := ""
		switch {
		case r.Err != nil:
			detail = r.Err.Error()
		case r.Outcome == render.OutcomeChart:
			detail = strconv.Itoa(r.Entries) + " entries"
		}
		rows = append(rows, []string{r.Marker, string(r.Outcome), detail})
	}
	return Data{Headers: []string{"Marker", "Outcome", "Detail"}, Rows: rows}
}

// DiagnosticsToTableData converts diagnostics to table format.
func DiagnosticsToTableData(diags []render.Diagnostic) Data {
	rows := make([][]string, 0, len(diags))
	for _, d := range diags {
		lid := ""
		if d.RemoteID != 0 {
			lid = strconv.Itoa(d.RemoteID)
		}
		rows = append(rows, []string{string(d.Kind), d.Key, lid, d.Message})
	}
	return Data{
		Headers:         []string{"Diagnostic", "Key", "LID", "Message"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft},
	}
}
