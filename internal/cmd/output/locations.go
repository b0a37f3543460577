package output

import (
	"io"

	"github.com/upenn-libraries/libhours"
	"github.com/upenn-libraries/libhours/internal/cmd/table"
	"github.com/upenn-libraries/libhours/pkg/render"
)

// FormatLocations writes locations in the requested format.
func FormatLocations(w io.Writer, locations []libhours.Location, format Format) error {
	formatter := NewFormatter(format)

	var outputData any
	switch format {
	case FormatTable, FormatWide, "":
		outputData = table.LocationsToTableData(locations, format == FormatWide)
	default:
		outputData = locations
	}
	return formatter.Format(w, outputData)
}

// FormatReport writes a render report in the requested format. Tables show
// one row per placeholder followed by the diagnostics.
func FormatReport(w io.Writer, report *render.Report, format Format) error {
	formatter := NewFormatter(format)

	switch format {
	case FormatTable, FormatWide, "":
		if err := formatter.Format(w, table.PlaceholdersToTableData(report.Placeholders)); err != nil {
			return err
		}
		if len(report.Diagnostics) == 0 {
			return nil
		}
		return formatter.Format(w, table.DiagnosticsToTableData(report.Diagnostics))
	default:
		return formatter.Format(w, report)
	}
}

// FormatAny formats any data type for output.
func FormatAny(w io.Writer, data any, format Format) error {
	return NewFormatter(format).Format(w, data)
}
