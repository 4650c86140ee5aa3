package page

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/krypton/adapters/event"
	"github.com/khoahotran/krypton/internal/domain/page"
	"github.com/khoahotran/krypton/pkg/debounce"
	"github.com/khoahotran/krypton/pkg/logger"
)

// ProcessViewEventUseCase accumulates page-view events and flushes per-user
// counters once a burst goes quiet, so a hot page costs one write per burst
// instead of one per view.
type ProcessViewEventUseCase struct {
	views   page.ViewRepository
	flusher *debounce.Debouncer
	logger  logger.Logger

	mu     sync.Mutex
	counts map[string]int64
}

func NewProcessViewEventUseCase(views page.ViewRepository, quiet time.Duration, log logger.Logger) *ProcessViewEventUseCase {
	uc := &ProcessViewEventUseCase{
		views:   views,
		logger:  log,
		counts:  map[string]int64{},
		flusher: debounce.New(quiet),
	}
	return uc
}

func (uc *ProcessViewEventUseCase) Execute(ctx context.Context, payload event.ViewEventPayload) error {
	uc.mu.Lock()
	uc.counts[payload.Username]++
	uc.mu.Unlock()

	uc.flusher.Do(uc.flush)
	return nil
}

func (uc *ProcessViewEventUseCase) flush() {
	uc.mu.Lock()
	pending := uc.counts
	uc.counts = map[string]int64{}
	uc.mu.Unlock()

	ctx := context.Background()
	retry := false
	for username, delta := range pending {
		if err := uc.views.Increment(ctx, username, delta); err != nil {
			uc.logger.Error("Failed to flush view count", err, zap.String("username", username), zap.Int64("delta", delta))
			// put the delta back so the next flush retries it
			uc.mu.Lock()
			uc.counts[username] += delta
			uc.mu.Unlock()
			retry = true
		}
	}

	if retry {
		// re-arm the flusher so banked deltas drain even if no new events arrive
		uc.flusher.Do(uc.flush)
	}
}

// Close flushes whatever is still pending. Call on worker shutdown.
func (uc *ProcessViewEventUseCase) Close() {
	uc.flusher.Flush()
	uc.flusher.Stop()
}
