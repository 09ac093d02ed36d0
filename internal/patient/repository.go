package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("patient not found")

type Repository interface {
	Create(ctx context.Context, p Patient) (*Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p Patient) (*Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]Patient, error)
	Search(ctx context.Context, query string) ([]Patient, error)
}
