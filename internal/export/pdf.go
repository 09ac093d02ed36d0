package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/clinicdesk/clinicdesk/internal/appointment"
	"github.com/clinicdesk/clinicdesk/internal/calendar"
)

const (
	pdfTitle        = "Appointment Calendar"
	entryLineHeight = 6.0
	footerReserve   = 20.0
)

// PDF renders appointments as a paginated A4 document: title, window label,
// then one block per appointment in the order given. A block is never split
// across a page break. Every page footer carries generatedAt and
// "Page i of n". The document is built fully in memory; on any engine error
// no bytes are returned.
func PDF(appts []appointment.Appointment, refDate string, g calendar.Granularity, generatedAt time.Time) ([]byte, error) {
	doc, err := buildPDF(appts, refDate, g, generatedAt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// buildPDF is split out so tests can inspect page counts before rendering.
func buildPDF(appts []appointment.Appointment, refDate string, g calendar.Granularity, generatedAt time.Time) (*gofpdf.Fpdf, error) {
	label, err := calendar.WindowLabel(refDate, g)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(false, footerReserve)

	stamp := generatedAt.Format("Jan 2, 2006 15:04")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", stamp), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, pdfTitle, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, label, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if len(appts) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.CellFormat(0, 8, "No appointments in this period.", "", 1, "C", false, 0, "")
	}

	_, pageH := pdf.GetPageSize()
	limit := pageH - footerReserve

	for _, a := range appts {
		h := entryHeight(a)
		if pdf.GetY()+h > limit {
			pdf.AddPage()
		}
		addEntry(pdf, a)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("build pdf: %w", pdf.Error())
	}
	return pdf, nil
}

// entryHeight is the vertical space an appointment block occupies. Keeping
// it a pure function of the record is what lets the page-break check above
// guarantee a block is wholly contained on one page.
func entryHeight(a appointment.Appointment) float64 {
	lines := 2.0 // time/patient/status row plus reason row
	if a.Notes != nil && *a.Notes != "" {
		lines++
	}
	return lines*entryLineHeight + 3
}

func addEntry(pdf *gofpdf.Fpdf, a appointment.Appointment) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(38, entryLineHeight, fmt.Sprintf("%s %s", a.Date, a.Time), "", 0, "L", false, 0, "")
	pdf.CellFormat(90, entryLineHeight, a.PatientName, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, entryLineHeight, string(a.Status), "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(38, entryLineHeight, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, entryLineHeight, a.Reason, "", 1, "L", false, 0, "")

	if a.Notes != nil && *a.Notes != "" {
		pdf.SetFont("Arial", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(38, entryLineHeight, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, entryLineHeight, *a.Notes, "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(3)
}
