package page

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/krypton/adapters/event"
	"github.com/khoahotran/krypton/internal/domain/account"
	"github.com/khoahotran/krypton/internal/domain/page"
	"github.com/khoahotran/krypton/pkg/apperror"
	"github.com/khoahotran/krypton/pkg/logger"
)

var tracer = otel.Tracer("page_usecase")

type PageUseCase struct {
	accounts    account.Repository
	cache       page.Cache
	views       page.ViewRepository
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewPageUseCase(repo account.Repository, cache page.Cache, views page.ViewRepository, kClient *event.KafkaProducerClient, log logger.Logger) *PageUseCase {
	return &PageUseCase{
		accounts:    repo,
		cache:       cache,
		views:       views,
		kafkaClient: kClient,
		logger:      log,
	}
}

type GetPageInput struct {
	Username string
}

type GetPageOutput struct {
	Page *page.Page
}

// ExecuteGetPage resolves the public page for a username. Absence is terminal
// for the request: no retry, the caller renders its not-found view.
func (uc *PageUseCase) ExecuteGetPage(ctx context.Context, input GetPageInput) (*GetPageOutput, error) {

	ctx, span := tracer.Start(ctx, "GetPage")
	defer span.End()
	span.SetAttributes(attribute.String("username", input.Username))

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, input.Username)
		if err == nil {
			uc.publishView(input.Username)
			return &GetPageOutput{Page: cached}, nil
		}
		if !errors.Is(err, page.ErrCacheMiss) {
			uc.logger.Warn("Page cache read failed", zap.String("username", input.Username), zap.Error(err))
		}
	}

	a, err := uc.accounts.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			return nil, apperror.NewNotFound("profile", input.Username)
		}
		span.RecordError(err)
		return nil, err
	}

	var viewCount int64
	if uc.views != nil {
		viewCount, err = uc.views.Count(ctx, a.Username)
		if err != nil {
			uc.logger.Warn("Failed to read view count", zap.String("username", a.Username), zap.Error(err))
		}
	}

	p := page.Build(a, viewCount)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, p); err != nil {
			uc.logger.Warn("Page cache write failed", zap.String("username", p.Username), zap.Error(err))
		}
	}

	uc.publishView(input.Username)
	return &GetPageOutput{Page: p}, nil
}

func (uc *PageUseCase) publishView(username string) {
	if uc.kafkaClient == nil {
		return
	}
	go func() {
		err := uc.kafkaClient.PublishViewEvent(context.Background(), event.ViewEventPayload{
			Username: username,
			ViewedAt: time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Error("Failed to publish Kafka view event", err, zap.String("username", username))
		}
	}()
}
