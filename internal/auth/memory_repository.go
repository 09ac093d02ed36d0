package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DemoEmail and DemoPassword are the fixed demo-mode credentials.
const (
	DemoEmail    = "demo@clinicdesk.local"
	DemoPassword = "demo1234"
)

// MemoryUserRepository holds a fixed user set; demo mode seeds it with the
// demo practitioner.
type MemoryUserRepository struct {
	users []User
}

func NewMemoryUserRepository(users ...User) *MemoryUserRepository {
	return &MemoryUserRepository{users: users}
}

// NewDemoUserRepository builds the demo-mode repository with its single
// well-known login.
func NewDemoUserRepository() (*MemoryUserRepository, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return NewMemoryUserRepository(User{
		ID:           uuid.New(),
		Email:        DemoEmail,
		Name:         "Demo Practitioner",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}), nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	for _, u := range r.users {
		if u.ID == id {
			out := u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}
