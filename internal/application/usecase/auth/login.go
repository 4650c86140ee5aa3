package auth

import (
	"context"
	"errors"

	"github.com/khoahotran/krypton/internal/domain/account"
	"github.com/khoahotran/krypton/pkg/apperror"
	"github.com/khoahotran/krypton/pkg/auth"
	"github.com/khoahotran/krypton/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// MsgInvalidCredentials is deliberately the same for a wrong password and an
// unknown email, so login never leaks which one was wrong.
const MsgInvalidCredentials = "Email or password is incorrect"

const MsgMissingCredentials = "Please enter both email and password"

type LoginUseCase struct {
	accounts account.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo account.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		accounts: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
	Account     *account.Account
}

var tracer = otel.Tracer("auth_usecase")

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	if input.Email == "" || input.Password == "" {
		return nil, apperror.NewAppError(apperror.ErrInvalidInput, MsgMissingCredentials, "login called with empty fields", nil)
	}

	a, err := uc.accounts.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, apperror.NewUnauthorized(MsgInvalidCredentials, "no account for email")
		}
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, a.PasswordHash) {
		err := apperror.NewUnauthorized(MsgInvalidCredentials, "incorrect password")
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(a.ID, a.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("account_id", a.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("account_id", a.ID.String()))
	return &LoginOutput{AccessToken: token, Account: a}, nil
}
