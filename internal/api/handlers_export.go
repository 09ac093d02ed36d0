package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/appointment"
	"github.com/clinicdesk/clinicdesk/internal/calendar"
	"github.com/clinicdesk/clinicdesk/internal/export"
)

// Export handlers build the whole artifact in memory before writing a
// single byte, so a failing render never leaves the client with a truncated
// download; it gets an error envelope it can retry on instead.

func exportCSVHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, g, err := windowParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
			return
		}

		visible, err := selectSorted(r, svc, date, g)
		if err != nil {
			handleCalendarError(w, err)
			return
		}

		body := export.CSV(visible)

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.CSVFilename(g, date)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}

func exportPDFHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, g, err := windowParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
			return
		}

		visible, err := selectSorted(r, svc, date, g)
		if err != nil {
			handleCalendarError(w, err)
			return
		}

		body, err := export.PDF(visible, date, g, time.Now())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "export_failed", "could not generate the PDF, please retry")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.PDFFilename(g, date)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	}
}

func selectSorted(r *http.Request, svc *appointment.Service, date string, g calendar.Granularity) ([]appointment.Appointment, error) {
	appts, err := svc.List(r.Context())
	if err != nil {
		return nil, err
	}

	visible, err := calendar.SelectWindow(appts, date, g)
	if err != nil {
		return nil, err
	}
	return calendar.SortSchedule(visible), nil
}
