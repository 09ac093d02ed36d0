package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/appointment"
	"github.com/clinicdesk/clinicdesk/internal/calendar"
)

// windowParams reads the (date, granularity) pair every calendar and export
// endpoint takes. Defaults are a UI convenience applied here at the
// boundary; the calendar package itself never reads the clock.
func windowParams(r *http.Request) (string, calendar.Granularity, error) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := calendar.ParseDate(date); err != nil {
		return "", "", err
	}

	gran := r.URL.Query().Get("granularity")
	if gran == "" {
		gran = string(calendar.GranularityDay)
	}
	g, err := calendar.ParseGranularity(gran)
	if err != nil {
		return "", "", err
	}

	return date, g, nil
}

func calendarHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date, g, err := windowParams(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
			return
		}

		appts, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		visible, err := calendar.SelectWindow(appts, date, g)
		if err != nil {
			handleCalendarError(w, err)
			return
		}
		visible = calendar.SortSchedule(visible)

		label, err := calendar.WindowLabel(date, g)
		if err != nil {
			handleCalendarError(w, err)
			return
		}
		start, end, err := calendar.WindowRange(date, g)
		if err != nil {
			handleCalendarError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, CalendarResponse{
			Date:         date,
			Granularity:  string(g),
			Label:        label,
			Start:        start.Format("2006-01-02"),
			End:          end.Format("2006-01-02"),
			Appointments: toAppointmentResponses(visible),
		})
	}
}

func calendarSummaryHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		appts, err := svc.List(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		summary, err := calendar.Summarize(appts, date)
		if err != nil {
			handleCalendarError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func handleCalendarError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, calendar.ErrInvalidGranularity),
		errors.Is(err, calendar.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
