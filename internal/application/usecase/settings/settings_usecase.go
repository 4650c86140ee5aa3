package settings

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/krypton/adapters/event"
	"github.com/khoahotran/krypton/internal/application/service"
	"github.com/khoahotran/krypton/internal/domain/account"
	"github.com/khoahotran/krypton/internal/domain/catalog"
	"github.com/khoahotran/krypton/internal/domain/page"
	"github.com/khoahotran/krypton/pkg/apperror"
	"github.com/khoahotran/krypton/pkg/logger"
)

// SettingsUseCase edits the authenticated account's page configuration.
// Username and email are immutable here; only settings change.
type SettingsUseCase struct {
	accounts    account.Repository
	cache       page.Cache
	uploader    service.Uploader
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewSettingsUseCase(repo account.Repository, cache page.Cache, uploader service.Uploader, kClient *event.KafkaProducerClient, log logger.Logger) *SettingsUseCase {
	return &SettingsUseCase{
		accounts:    repo,
		cache:       cache,
		uploader:    uploader,
		kafkaClient: kClient,
		logger:      log,
	}
}

type GetSettingsInput struct {
	AccountID uuid.UUID
}

type GetSettingsOutput struct {
	Account *account.Account
}

func (uc *SettingsUseCase) ExecuteGet(ctx context.Context, input GetSettingsInput) (*GetSettingsOutput, error) {
	a, err := uc.accounts.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("get settings failed: %w", err)
	}
	return &GetSettingsOutput{Account: a}, nil
}

type UpdateSettingsInput struct {
	AccountID uuid.UUID
	Settings  account.PageSettings
}

type UpdateSettingsOutput struct {
	Settings account.PageSettings
}

func (uc *SettingsUseCase) ExecuteUpdate(ctx context.Context, input UpdateSettingsInput) (*UpdateSettingsOutput, error) {
	if err := input.Settings.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	for _, id := range input.Settings.SelectedWebsites {
		if !catalog.KnownID(id) {
			return nil, apperror.NewInvalidInput(fmt.Sprintf("unknown website id %q", id), nil)
		}
	}

	a, err := uc.accounts.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("load account for settings update failed: %w", err)
	}

	if err := uc.accounts.UpdateSettings(ctx, a.ID, input.Settings); err != nil {
		return nil, fmt.Errorf("update settings failed: %w", err)
	}

	uc.afterSettingsChange(ctx, a)

	return &UpdateSettingsOutput{Settings: input.Settings}, nil
}

type UploadAvatarInput struct {
	AccountID uuid.UUID
	File      io.Reader
}

type UploadAvatarOutput struct {
	AvatarURL string
}

func (uc *SettingsUseCase) ExecuteUploadAvatar(ctx context.Context, input UploadAvatarInput) (*UploadAvatarOutput, error) {
	a, err := uc.accounts.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, fmt.Errorf("load account for avatar upload failed: %w", err)
	}

	folder := fmt.Sprintf("avatars/%s", a.ID.String())
	url, err := uc.uploader.Upload(ctx, input.File, folder, "avatar")
	if err != nil {
		return nil, apperror.NewInternal("failed to upload avatar", err)
	}

	updated := a.Settings
	updated.ProfileInfo.Avatar = url
	if err := uc.accounts.UpdateSettings(ctx, a.ID, updated); err != nil {
		return nil, fmt.Errorf("persist avatar url failed: %w", err)
	}

	uc.afterSettingsChange(ctx, a)

	return &UploadAvatarOutput{AvatarURL: url}, nil
}

// afterSettingsChange drops the stale cached page and notifies downstream
// consumers. Both are best effort.
func (uc *SettingsUseCase) afterSettingsChange(ctx context.Context, a *account.Account) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, a.Username); err != nil {
			uc.logger.Warn("Failed to invalidate page cache", zap.String("username", a.Username), zap.Error(err))
		}
	}

	if uc.kafkaClient != nil {
		go func() {
			err := uc.kafkaClient.PublishAccountEvent(context.Background(), event.AccountEventPayload{
				EventType: event.AccountEventTypeSettingsUpdated,
				AccountID: a.ID,
				Username:  a.Username,
			})
			if err != nil {
				uc.logger.Error("Failed to publish Kafka 'settings_updated' event", err, zap.String("username", a.Username))
			}
		}()
	}
}
