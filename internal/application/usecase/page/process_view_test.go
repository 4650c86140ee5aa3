package page

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/krypton/adapters/event"
	"github.com/khoahotran/krypton/pkg/logger"
)

func TestProcessViewEvent_BurstFlushedAsOneWrite(t *testing.T) {
	views := newFakeViewRepo()
	uc := NewProcessViewEventUseCase(views, 30*time.Millisecond, logger.NewZapLogger("development"))
	defer uc.Close()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, uc.Execute(ctx, event.ViewEventPayload{Username: "ann", ViewedAt: time.Now()}))
	}
	require.NoError(t, uc.Execute(ctx, event.ViewEventPayload{Username: "bob", ViewedAt: time.Now()}))

	// nothing written until the burst goes quiet
	count, err := views.Count(ctx, "ann")
	require.NoError(t, err)
	assert.Zero(t, count)

	time.Sleep(150 * time.Millisecond)

	count, err = views.Count(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	count, err = views.Count(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

type flakyViewRepo struct {
	*fakeViewRepo
	mu       sync.Mutex
	failures int
}

func (r *flakyViewRepo) Increment(ctx context.Context, username string, delta int64) error {
	r.mu.Lock()
	if r.failures > 0 {
		r.failures--
		r.mu.Unlock()
		return errors.New("storage write refused")
	}
	r.mu.Unlock()
	return r.fakeViewRepo.Increment(ctx, username, delta)
}

func TestProcessViewEvent_RetriesBankedDeltaWithoutNewEvents(t *testing.T) {
	views := &flakyViewRepo{fakeViewRepo: newFakeViewRepo(), failures: 1}
	uc := NewProcessViewEventUseCase(views, 20*time.Millisecond, logger.NewZapLogger("development"))
	defer uc.Close()

	ctx := context.Background()
	require.NoError(t, uc.Execute(ctx, event.ViewEventPayload{Username: "ann", ViewedAt: time.Now()}))

	// first flush fails and re-banks the delta; the re-armed flusher must
	// drain it with no further incoming events
	time.Sleep(150 * time.Millisecond)

	count, err := views.Count(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProcessViewEvent_CloseFlushesPending(t *testing.T) {
	views := newFakeViewRepo()
	uc := NewProcessViewEventUseCase(views, time.Hour, logger.NewZapLogger("development"))

	ctx := context.Background()
	require.NoError(t, uc.Execute(ctx, event.ViewEventPayload{Username: "ann", ViewedAt: time.Now()}))
	uc.Close()

	count, err := views.Count(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
