// README: Dashboard user account with role.
package user

import (
	"errors"
	"time"

	"fleetflow/internal/access"
	"fleetflow/internal/types"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrConflict           = errors.New("user conflict")
	ErrBadRequest         = errors.New("bad request")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID           types.ID    `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         access.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
}
