package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/krypton/adapters/persistence"
	"github.com/khoahotran/krypton/internal/domain/account"
	"github.com/khoahotran/krypton/pkg/apperror"
	"github.com/khoahotran/krypton/pkg/auth"
	"github.com/khoahotran/krypton/pkg/logger"
)

func newLoginFixture(t *testing.T) (*LoginUseCase, account.Repository) {
	t.Helper()

	repo := persistence.NewInmemAccountRepo()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	log := logger.NewZapLogger("development")

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)

	now := time.Now().UTC()
	err = repo.Create(context.Background(), &account.Account{
		ID:           uuid.New(),
		Username:     "ann",
		Email:        "a@x.com",
		PasswordHash: hash,
		Settings:     account.DefaultSettings("ann"),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	return NewLoginUseCase(repo, jwtSvc, log), repo
}

func TestLogin_Success(t *testing.T) {
	uc, _ := newLoginFixture(t)

	output, err := uc.Execute(context.Background(), LoginInput{Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)
	assert.Equal(t, "ann", output.Account.Username)
}

func TestLogin_FailureNeverLeaksWhichFieldWasWrong(t *testing.T) {
	uc, _ := newLoginFixture(t)

	_, wrongPassErr := uc.Execute(context.Background(), LoginInput{Email: "a@x.com", Password: "wrongpass"})
	_, unknownEmailErr := uc.Execute(context.Background(), LoginInput{Email: "nobody@x.com", Password: "secret1"})

	require.Error(t, wrongPassErr)
	require.Error(t, unknownEmailErr)

	var appErr1, appErr2 *apperror.AppError
	require.ErrorAs(t, wrongPassErr, &appErr1)
	require.ErrorAs(t, unknownEmailErr, &appErr2)

	assert.ErrorIs(t, appErr1, apperror.ErrUnauthorized)
	assert.ErrorIs(t, appErr2, apperror.ErrUnauthorized)

	// identical user-visible message in both cases
	assert.Equal(t, MsgInvalidCredentials, appErr1.Message)
	assert.Equal(t, appErr1.Message, appErr2.Message)
}

func TestLogin_MissingFields(t *testing.T) {
	uc, _ := newLoginFixture(t)

	for _, input := range []LoginInput{
		{},
		{Email: "a@x.com"},
		{Password: "secret1"},
	} {
		_, err := uc.Execute(context.Background(), input)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.ErrorIs(t, appErr, apperror.ErrInvalidInput)
		assert.Equal(t, MsgMissingCredentials, appErr.Message)
	}
}

func TestAvailability(t *testing.T) {
	repo := persistence.NewInmemAccountRepo()
	uc := NewAvailabilityUseCase(repo)

	// safe to call before any account exists
	available, err := uc.Execute(context.Background(), "ann")
	require.NoError(t, err)
	assert.True(t, available)

	hash, _ := auth.HashPassword("secret1")
	now := time.Now().UTC()
	require.NoError(t, repo.Create(context.Background(), &account.Account{
		ID:           uuid.New(),
		Username:     "ann",
		Email:        "a@x.com",
		PasswordHash: hash,
		Settings:     account.DefaultSettings("ann"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}))

	available, err = uc.Execute(context.Background(), "ann")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = uc.Execute(context.Background(), "bob")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = uc.Execute(context.Background(), "")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
