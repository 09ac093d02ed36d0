package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingName        = errors.New("patient name is required")
	ErrInvalidDateOfBirth = errors.New("date of birth must be YYYY-MM-DD")
	ErrHasAppointments    = errors.New("patient still has appointments")
)

// AppointmentCounter is the one thing the patient service needs from the
// appointment side. Wired to appointment.Repository.CountByPatient.
type AppointmentCounter interface {
	CountByPatient(ctx context.Context, patientID uuid.UUID) (int, error)
}

type Service struct {
	repo   Repository
	counts AppointmentCounter
}

func NewService(repo Repository, counts AppointmentCounter) *Service {
	return &Service{repo: repo, counts: counts}
}

type Input struct {
	Name        string
	Email       *string
	Phone       *string
	DateOfBirth *string
}

func (s *Service) Create(ctx context.Context, in Input) (*Patient, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, Patient{
		Name:        strings.TrimSpace(in.Name),
		Email:       in.Email,
		Phone:       in.Phone,
		DateOfBirth: in.DateOfBirth,
	})
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Patient, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, Patient{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Email:       in.Email,
		Phone:       in.Phone,
		DateOfBirth: in.DateOfBirth,
	})
	if err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return updated, nil
}

// Delete removes a patient record. Patients with appointments on file are
// kept; the appointments must be deleted or reassigned first.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.counts.CountByPatient(ctx, id)
	if err != nil {
		return fmt.Errorf("count appointments: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: %d on file", ErrHasAppointments, n)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

// List returns patients in name order, optionally narrowed by a search
// query on the name.
func (s *Service) List(ctx context.Context, query string) ([]Patient, error) {
	query = strings.TrimSpace(query)

	var (
		patients []Patient
		err      error
	)
	if query == "" {
		patients, err = s.repo.List(ctx)
	} else {
		patients, err = s.repo.Search(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func validate(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrMissingName
	}
	if in.DateOfBirth != nil && *in.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", *in.DateOfBirth); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDateOfBirth, *in.DateOfBirth)
		}
	}
	return nil
}
