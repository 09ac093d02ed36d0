package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDate             = errors.New("date must be YYYY-MM-DD")
	ErrInvalidTime             = errors.New("time must be HH:MM")
	ErrMissingReason           = errors.New("reason is required")
	ErrInvalidStatus           = errors.New("unknown appointment status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput carries the writable appointment fields from the API layer.
type CreateInput struct {
	PatientID uuid.UUID
	Date      string
	Time      string
	Reason    string
	Notes     *string
	Status    Status
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Appointment, error) {
	if err := validateFields(in.Date, in.Time, in.Reason); err != nil {
		return nil, err
	}

	if in.Status == "" {
		in.Status = StatusPending
	}
	if !ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}

	created, err := s.repo.Create(ctx, Appointment{
		PatientID: in.PatientID,
		Date:      in.Date,
		Time:      in.Time,
		Reason:    strings.TrimSpace(in.Reason),
		Notes:     in.Notes,
		Status:    in.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

// Update rewrites the writable fields of an existing appointment.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in CreateInput) (*Appointment, error) {
	if err := validateFields(in.Date, in.Time, in.Reason); err != nil {
		return nil, err
	}
	if !ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}

	updated, err := s.repo.Update(ctx, Appointment{
		ID:     id,
		Date:   in.Date,
		Time:   in.Time,
		Reason: strings.TrimSpace(in.Reason),
		Notes:  in.Notes,
		Status: in.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	return updated, nil
}

// UpdateStatus moves an appointment along its lifecycle. Pending visits can
// be confirmed or cancelled, confirmed visits completed or cancelled;
// completed and cancelled are terminal.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to Status) (*Appointment, error) {
	if !ValidStatus(to) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}

	if !transitionAllowed(cur.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, cur.Status, to)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, cur.Status, to)
	if err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	return nil
}

// List returns the full appointment snapshot in chronological order.
func (s *Service) List(ctx context.Context) ([]Appointment, error) {
	appts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	appts, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list appointments by patient: %w", err)
	}
	return appts, nil
}

func transitionAllowed(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

func validateFields(date, tm, reason string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if _, err := time.Parse("15:04", tm); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, tm)
	}
	if strings.TrimSpace(reason) == "" {
		return ErrMissingReason
	}
	return nil
}
