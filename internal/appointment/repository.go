package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("appointment not found")
	ErrPatientNotFound = errors.New("patient not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	Create(ctx context.Context, a Appointment) (*Appointment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a Appointment) (*Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns the full appointment snapshot the calendar filter works
	// on; at single-practice scale it stays small.
	List(ctx context.Context) ([]Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error)
	CountByPatient(ctx context.Context, patientID uuid.UUID) (int, error)
}
