package patient

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID          uuid.UUID
	Name        string
	Email       *string
	Phone       *string
	DateOfBirth *string // YYYY-MM-DD, optional
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
