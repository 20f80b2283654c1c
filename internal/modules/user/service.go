package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fleetflow/internal/access"
	"fleetflow/internal/types"
)

type Store interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id types.ID) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	Name     string
	Email    string
	Password string
	Role     access.Role
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*User, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.ToLower(strings.TrimSpace(cmd.Email))
	if cmd.Name == "" || cmd.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrBadRequest)
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrBadRequest)
	}
	if !access.ValidRole(cmd.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrBadRequest, cmd.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           types.ID(uuid.NewString()),
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: string(hash),
		Role:         cmd.Role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the user for a matching email/password pair.
// Lookup misses and hash mismatches both report ErrInvalidCredentials
// so callers cannot probe which emails exist.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.store.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id types.ID) error {
	return s.store.Delete(ctx, id)
}
