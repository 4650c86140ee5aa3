package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
)

type Account struct {
	ID           uuid.UUID    `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Settings     PageSettings `json:"settings"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Repository is the account store. Create must enforce username and email
// uniqueness atomically with the insert; callers never rely on a prior
// availability check to guarantee it.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, a *Account) error
	UpdateSettings(ctx context.Context, id uuid.UUID, settings PageSettings) error
}
