package auth

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/krypton/adapters/event"
	"github.com/khoahotran/krypton/internal/domain/account"
	"github.com/khoahotran/krypton/pkg/apperror"
	"github.com/khoahotran/krypton/pkg/auth"
	"github.com/khoahotran/krypton/pkg/logger"
)

// Loose on purpose: anything of the shape <non-space>@<non-space>.<non-space>.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type SignupUseCase struct {
	accounts    account.Repository
	jwtSvc      *auth.JWTService
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewSignupUseCase(repo account.Repository, jwtSvc *auth.JWTService, kClient *event.KafkaProducerClient, log logger.Logger) *SignupUseCase {
	return &SignupUseCase{
		accounts:    repo,
		jwtSvc:      jwtSvc,
		kafkaClient: kClient,
		logger:      log,
	}
}

type SignupInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

type SignupOutput struct {
	AccessToken string
	Account     *account.Account
}

// validate runs every field check and reports all failures together, so the
// form can mark each failing field at once.
func (uc *SignupUseCase) validate(ctx context.Context, input SignupInput) apperror.FieldErrors {
	fields := apperror.FieldErrors{}

	switch {
	case input.Username == "":
		fields["username"] = "Username is required"
	case len(input.Username) < 3:
		fields["username"] = "Username must be at least 3 characters"
	default:
		available, err := uc.accounts.IsUsernameAvailable(ctx, input.Username)
		if err != nil {
			uc.logger.Warn("Availability pre-check failed, deferring to create", zap.Error(err))
		} else if !available {
			fields["username"] = "Username is already taken"
		}
	}

	switch {
	case input.Email == "":
		fields["email"] = "Email is required"
	case !emailPattern.MatchString(input.Email):
		fields["email"] = "Email is invalid"
	}

	switch {
	case input.Password == "":
		fields["password"] = "Password is required"
	case len(input.Password) < 6:
		fields["password"] = "Password must be at least 6 characters"
	}

	if input.Password != input.ConfirmPassword {
		fields["confirmPassword"] = "Passwords do not match"
	}

	return fields
}

func (uc *SignupUseCase) Execute(ctx context.Context, input SignupInput) (*SignupOutput, error) {

	ctx, span := tracer.Start(ctx, "Signup")
	defer span.End()

	if fields := uc.validate(ctx, input); len(fields) > 0 {
		return nil, apperror.NewFieldValidation(fields)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	now := time.Now().UTC()
	newAccount := &account.Account{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Settings:     account.DefaultSettings(input.Username),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The availability pre-check above is advisory only; the store's insert
	// is the single authority on uniqueness.
	if err := uc.accounts.Create(ctx, newAccount); err != nil {
		span.RecordError(err)
		if errors.Is(err, account.ErrDuplicateUsername) {
			return nil, apperror.NewConflict("account", "username", input.Username)
		}
		if errors.Is(err, account.ErrDuplicateEmail) {
			return nil, apperror.NewConflict("account", "email", input.Email)
		}
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(newAccount.ID, newAccount.Username)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("account_id", newAccount.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	if uc.kafkaClient != nil {
		go func() {
			err := uc.kafkaClient.PublishAccountEvent(context.Background(), event.AccountEventPayload{
				EventType: event.AccountEventTypeCreated,
				AccountID: newAccount.ID,
				Username:  newAccount.Username,
			})
			if err != nil {
				uc.logger.Error("Failed to publish Kafka 'created' event", err, zap.String("username", newAccount.Username))
			}
		}()
	}

	span.SetAttributes(attribute.String("account_id", newAccount.ID.String()))
	return &SignupOutput{AccessToken: token, Account: newAccount}, nil
}
