package page

import (
	"context"
	"errors"

	"github.com/khoahotran/krypton/internal/domain/account"
	"github.com/khoahotran/krypton/internal/domain/catalog"
)

var ErrCacheMiss = errors.New("page not in cache")

// Page is the public projection of one account: everything a visitor needs
// to render the profile at /<username>.
type Page struct {
	Username  string               `json:"username"`
	Settings  account.PageSettings `json:"settings"`
	Links     []catalog.Link       `json:"links"`
	ViewCount int64                `json:"view_count"`
}

// Build projects an account into its public page. Links are the catalog
// filtered down to the account's selection, in catalog order.
func Build(a *account.Account, viewCount int64) *Page {
	return &Page{
		Username:  a.Username,
		Settings:  a.Settings,
		Links:     catalog.Filter(a.Settings.SelectedWebsites),
		ViewCount: viewCount,
	}
}

type Cache interface {
	Get(ctx context.Context, username string) (*Page, error)
	Set(ctx context.Context, p *Page) error
	Invalidate(ctx context.Context, username string) error
}

type ViewRepository interface {
	Increment(ctx context.Context, username string, delta int64) error
	Count(ctx context.Context, username string) (int64, error)
}
