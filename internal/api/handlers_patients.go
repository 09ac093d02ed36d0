package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/patient"
)

func listPatientsHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patients, err := svc.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		}

		out := make([]PatientResponse, 0, len(patients))
		for i := range patients {
			out = append(out, toPatientResponse(&patients[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createPatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.Create(r.Context(), patient.Input{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			DateOfBirth: req.DateOfBirth,
		})
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

func getPatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		p, err := svc.Get(r.Context(), id)
		if err != nil {
			handlePatientError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func updatePatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req PatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p, err := svc.Update(r.Context(), id, patient.Input{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			DateOfBirth: req.DateOfBirth,
		})
		if err != nil {
			handlePatientError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func deletePatientHandler(svc *patient.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			handlePatientError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handlePatientError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, patient.ErrNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, patient.ErrMissingName),
		errors.Is(err, patient.ErrInvalidDateOfBirth):
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, patient.ErrHasAppointments):
		writeError(w, http.StatusConflict, "patient_has_appointments", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
