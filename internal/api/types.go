package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/appointment"
	"github.com/clinicdesk/clinicdesk/internal/patient"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type SessionResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type PatientRequest struct {
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	DateOfBirth *string `json:"date_of_birth,omitempty"`
}

type PatientResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AppointmentRequest struct {
	PatientID string  `json:"patient_id"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Reason    string  `json:"reason"`
	Notes     *string `json:"notes,omitempty"`
	Status    string  `json:"status,omitempty"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Reason      string    `json:"reason"`
	Notes       *string   `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CalendarResponse struct {
	Date         string                `json:"date"`
	Granularity  string                `json:"granularity"`
	Label        string                `json:"label"`
	Start        string                `json:"start"`
	End          string                `json:"end"`
	Appointments []AppointmentResponse `json:"appointments"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toPatientResponse(p *patient.Patient) PatientResponse {
	return PatientResponse{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          a.ID,
		PatientID:   a.PatientID,
		PatientName: a.PatientName,
		Date:        a.Date,
		Time:        a.Time,
		Reason:      a.Reason,
		Notes:       a.Notes,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAppointmentResponses(appts []appointment.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, toAppointmentResponse(&appts[i]))
	}
	return out
}
