package page

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/krypton/adapters/persistence"
	"github.com/khoahotran/krypton/internal/domain/account"
	"github.com/khoahotran/krypton/internal/domain/page"
	"github.com/khoahotran/krypton/pkg/apperror"
	"github.com/khoahotran/krypton/pkg/logger"
)

type fakePageCache struct {
	mu          sync.Mutex
	pages       map[string]*page.Page
	invalidated []string
}

func newFakePageCache() *fakePageCache {
	return &fakePageCache{pages: map[string]*page.Page{}}
}

func (c *fakePageCache) Get(ctx context.Context, username string) (*page.Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pages[username]; ok {
		return p, nil
	}
	return nil, page.ErrCacheMiss
}

func (c *fakePageCache) Set(ctx context.Context, p *page.Page) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[p.Username] = p
	return nil
}

func (c *fakePageCache) Invalidate(ctx context.Context, username string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pages, username)
	c.invalidated = append(c.invalidated, username)
	return nil
}

type fakeViewRepo struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFakeViewRepo() *fakeViewRepo {
	return &fakeViewRepo{counts: map[string]int64{}}
}

func (r *fakeViewRepo) Increment(ctx context.Context, username string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[username] += delta
	return nil
}

func (r *fakeViewRepo) Count(ctx context.Context, username string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[username], nil
}

func seedAccount(t *testing.T, repo account.Repository, username string, selected []string) *account.Account {
	t.Helper()

	settings := account.DefaultSettings(username)
	settings.SelectedWebsites = selected

	now := time.Now().UTC()
	a := &account.Account{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@x.com",
		PasswordHash: "x",
		Settings:     settings,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func newPageFixture() (*PageUseCase, account.Repository, *fakePageCache, *fakeViewRepo) {
	repo := persistence.NewInmemAccountRepo()
	cache := newFakePageCache()
	views := newFakeViewRepo()
	uc := NewPageUseCase(repo, cache, views, nil, logger.NewZapLogger("development"))
	return uc, repo, cache, views
}

func TestGetPage_NotFound(t *testing.T) {
	uc, _, _, _ := newPageFixture()

	_, err := uc.ExecuteGetPage(context.Background(), GetPageInput{Username: "zzz"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetPage_LinksFollowCatalogOrder(t *testing.T) {
	uc, repo, _, _ := newPageFixture()
	seedAccount(t, repo, "ann", []string{"github", "website"})

	output, err := uc.ExecuteGetPage(context.Background(), GetPageInput{Username: "ann"})
	require.NoError(t, err)

	require.Len(t, output.Page.Links, 2)
	assert.Equal(t, "Website", output.Page.Links[0].Title)
	assert.Equal(t, "GitHub", output.Page.Links[1].Title)
}

func TestGetPage_UnknownSelectionsExcluded(t *testing.T) {
	uc, repo, _, _ := newPageFixture()
	seedAccount(t, repo, "ann", []string{"github", "myspace"})

	output, err := uc.ExecuteGetPage(context.Background(), GetPageInput{Username: "ann"})
	require.NoError(t, err)

	require.Len(t, output.Page.Links, 1)
	assert.Equal(t, "github", output.Page.Links[0].ID)
}

func TestGetPage_PopulatesCacheOnMiss(t *testing.T) {
	uc, repo, cache, _ := newPageFixture()
	seedAccount(t, repo, "ann", []string{"website"})

	_, err := uc.ExecuteGetPage(context.Background(), GetPageInput{Username: "ann"})
	require.NoError(t, err)

	cached, err := cache.Get(context.Background(), "ann")
	require.NoError(t, err)
	assert.Equal(t, "ann", cached.Username)
}

func TestGetPage_ServesFromCache(t *testing.T) {
	uc, _, cache, _ := newPageFixture()

	// nothing in the store, only the cache
	require.NoError(t, cache.Set(context.Background(), &page.Page{Username: "ghost"}))

	output, err := uc.ExecuteGetPage(context.Background(), GetPageInput{Username: "ghost"})
	require.NoError(t, err)
	assert.Equal(t, "ghost", output.Page.Username)
}

func TestGetPage_IncludesViewCount(t *testing.T) {
	uc, repo, _, views := newPageFixture()
	seedAccount(t, repo, "ann", []string{"website"})
	require.NoError(t, views.Increment(context.Background(), "ann", 41))

	output, err := uc.ExecuteGetPage(context.Background(), GetPageInput{Username: "ann"})
	require.NoError(t, err)
	assert.Equal(t, int64(41), output.Page.ViewCount)
}
