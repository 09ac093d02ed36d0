package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is one of the four known appointment states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is a single office visit. Date is a local calendar date in
// YYYY-MM-DD form and Time is wall-clock HH:MM; neither carries a zone.
// PatientName is denormalized from the patients table for display and export.
type Appointment struct {
	ID          uuid.UUID
	PatientID   uuid.UUID
	PatientName string
	Date        string
	Time        string
	Reason      string
	Notes       *string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
