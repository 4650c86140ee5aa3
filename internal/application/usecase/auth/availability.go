package auth

import (
	"context"

	"github.com/khoahotran/krypton/internal/domain/account"
	"github.com/khoahotran/krypton/pkg/apperror"
)

// AvailabilityUseCase backs the signup form's debounced username poll. The
// result is a hint only; Create re-enforces uniqueness on submit.
type AvailabilityUseCase struct {
	accounts account.Repository
}

func NewAvailabilityUseCase(repo account.Repository) *AvailabilityUseCase {
	return &AvailabilityUseCase{accounts: repo}
}

func (uc *AvailabilityUseCase) Execute(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, apperror.NewInvalidInput("username is required", nil)
	}
	return uc.accounts.IsUsernameAvailable(ctx, username)
}
