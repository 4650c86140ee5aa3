package persistence

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/krypton/internal/domain/account"
)

// inmemAccountRepo is a mutex-guarded map store for tests and local
// development. Create performs its duplicate checks and the insert under one
// lock, matching the atomicity the Postgres repo gets from its constraints.
type inmemAccountRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*account.Account
}

func NewInmemAccountRepo() account.Repository {
	return &inmemAccountRepo{accounts: map[uuid.UUID]*account.Account{}}
}

func copyAccount(a *account.Account) *account.Account {
	clone := *a
	clone.Settings.SelectedWebsites = append([]string(nil), a.Settings.SelectedWebsites...)
	return &clone
}

func (r *inmemAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if a, ok := r.accounts[id]; ok {
		return copyAccount(a), nil
	}
	return nil, account.ErrNotFound
}

func (r *inmemAccountRepo) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Username == username {
			return copyAccount(a), nil
		}
	}
	return nil, account.ErrNotFound
}

func (r *inmemAccountRepo) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Email == email {
			return copyAccount(a), nil
		}
	}
	return nil, account.ErrNotFound
}

func (r *inmemAccountRepo) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Username == username {
			return false, nil
		}
	}
	return true, nil
}

func (r *inmemAccountRepo) Create(ctx context.Context, a *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Username == a.Username {
			return account.ErrDuplicateUsername
		}
		if existing.Email == a.Email {
			return account.ErrDuplicateEmail
		}
	}

	r.accounts[a.ID] = copyAccount(a)
	return nil
}

func (r *inmemAccountRepo) UpdateSettings(ctx context.Context, id uuid.UUID, settings account.PageSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return account.ErrNotFound
	}
	a.Settings = settings
	a.Settings.SelectedWebsites = append([]string(nil), settings.SelectedWebsites...)
	return nil
}
