// Package auth handles practitioner login. A successful login issues an
// HMAC-signed JWT whose jti points at a server-side session, so logout can
// revoke a token before it expires.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/clinicdesk/internal/session"
)

const issuer = "clinicdesk"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Service struct {
	users    UserRepository
	sessions session.Store
	secret   []byte
	ttl      time.Duration
}

func NewService(users UserRepository, sessions session.Store, secret string, ttl time.Duration) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// Login verifies the credentials and returns a signed token plus the
// session it references.
func (s *Service) Login(ctx context.Context, email, password string) (string, *session.Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	sess := session.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess, s.ttl); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   user.ID.String(),
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, &sess, nil
}

// Verify checks the token signature and that its session is still live.
func (s *Service) Verify(ctx context.Context, token string) (*session.Session, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

// Logout revokes the token's session. Verifying the same token afterwards
// fails even though its signature is still valid.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Service) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
