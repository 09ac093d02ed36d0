// Package export renders a filtered appointment subset as CSV text or a
// paginated PDF. Both renderers take the subset as given: they never
// re-filter, reorder, add or drop records.
package export

import (
	"fmt"
	"strings"

	"github.com/clinicdesk/clinicdesk/internal/appointment"
	"github.com/clinicdesk/clinicdesk/internal/calendar"
)

// csvHeader is the fixed column order of every export.
const csvHeader = "Date,Time,Patient,Reason,Status,Notes,Patient ID"

// CSV renders appointments as CSV text with a header row. Free-text
// columns (Patient, Reason, Notes) are always quoted so embedded commas
// survive, with embedded quotes doubled per RFC 4180. Missing notes render
// as an empty quoted field. Empty input yields header-only output.
func CSV(appts []appointment.Appointment) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteString("\r\n")

	for _, a := range appts {
		notes := ""
		if a.Notes != nil {
			notes = *a.Notes
		}
		b.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s\r\n",
			a.Date,
			a.Time,
			quote(a.PatientName),
			quote(a.Reason),
			a.Status,
			quote(notes),
			a.PatientID,
		))
	}
	return b.String()
}

// quote wraps a free-text field in double quotes, doubling any embedded
// quote characters. encoding/csv only quotes when it must; the export
// format quotes these columns unconditionally, so it is done by hand here.
// The output stays parseable by any RFC 4180 reader.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// CSVFilename is the download name for a window's CSV export.
func CSVFilename(g calendar.Granularity, refDate string) string {
	return fmt.Sprintf("appointments-%s-%s.csv", g, refDate)
}

// PDFFilename is the download name for a window's PDF export.
func PDFFilename(g calendar.Granularity, refDate string) string {
	return fmt.Sprintf("calendar-%s-%s.pdf", g, refDate)
}
