package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/krypton/adapters/persistence"
	"github.com/khoahotran/krypton/internal/domain/account"
	"github.com/khoahotran/krypton/pkg/apperror"
	"github.com/khoahotran/krypton/pkg/auth"
	"github.com/khoahotran/krypton/pkg/logger"
)

func newSignupFixture() (*SignupUseCase, account.Repository) {
	repo := persistence.NewInmemAccountRepo()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	log := logger.NewZapLogger("development")
	return NewSignupUseCase(repo, jwtSvc, nil, log), repo
}

func validSignupInput() SignupInput {
	return SignupInput{
		Username:        "ann",
		Email:           "a@x.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestSignup_CreatesAccount(t *testing.T) {
	uc, repo := newSignupFixture()

	output, err := uc.Execute(context.Background(), validSignupInput())
	require.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)
	assert.Equal(t, "ann", output.Account.Username)

	stored, err := repo.FindByUsername(context.Background(), "ann")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.True(t, auth.CheckPasswordHash("secret1", stored.PasswordHash))
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	// a fresh account gets the default page settings
	assert.Equal(t, account.AnimationFade, stored.Settings.AnimationStyle)
	assert.Equal(t, "ann", stored.Settings.ProfileInfo.Name)
}

func TestSignup_ReportsAllFailingFieldsAtOnce(t *testing.T) {
	uc, _ := newSignupFixture()

	_, err := uc.Execute(context.Background(), SignupInput{})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, appErr, apperror.ErrInvalidInput)

	assert.Equal(t, "Username is required", appErr.Fields["username"])
	assert.Equal(t, "Email is required", appErr.Fields["email"])
	assert.Equal(t, "Password is required", appErr.Fields["password"])
	// both password fields are empty, so they match and raise no mismatch error
	assert.NotContains(t, appErr.Fields, "confirmPassword")
}

func TestSignup_ShortPasswordFailsOnlyPasswordField(t *testing.T) {
	uc, _ := newSignupFixture()

	input := validSignupInput()
	input.Password = "abc12"
	input.ConfirmPassword = "abc12"

	_, err := uc.Execute(context.Background(), input)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)

	assert.Equal(t, apperror.FieldErrors{"password": "Password must be at least 6 characters"}, appErr.Fields)
}

func TestSignup_FieldValidationMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SignupInput)
		field   string
		message string
	}{
		{"short username", func(in *SignupInput) { in.Username = "an" }, "username", "Username must be at least 3 characters"},
		{"invalid email", func(in *SignupInput) { in.Email = "not-an-email" }, "email", "Email is invalid"},
		{"email missing dot", func(in *SignupInput) { in.Email = "a@x" }, "email", "Email is invalid"},
		{"mismatched passwords", func(in *SignupInput) { in.ConfirmPassword = "secret2" }, "confirmPassword", "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newSignupFixture()

			input := validSignupInput()
			tt.mutate(&input)

			_, err := uc.Execute(context.Background(), input)
			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.message, appErr.Fields[tt.field])
		})
	}
}

func TestSignup_TakenUsernameIsAFieldError(t *testing.T) {
	uc, repo := newSignupFixture()

	_, err := uc.Execute(context.Background(), validSignupInput())
	require.NoError(t, err)

	input := validSignupInput()
	input.Email = "other@x.com"

	_, err = uc.Execute(context.Background(), input)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Username is already taken", appErr.Fields["username"])

	// the failed signup persisted nothing
	_, err = repo.FindByEmail(context.Background(), "other@x.com")
	assert.True(t, errors.Is(err, account.ErrNotFound))
}
