package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/krypton/internal/domain/account"
	"github.com/khoahotran/krypton/pkg/apperror"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	constraintUsername = "accounts_username_key"
	constraintEmail    = "accounts_email_key"
)

type postgresAccountRepo struct {
	db *pgxpool.Pool
}

func NewPostgresAccountRepo(db *pgxpool.Pool) account.Repository {
	return &postgresAccountRepo{db: db}
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	a := &account.Account{}
	var settingsBytes []byte

	err := row.Scan(
		&a.ID,
		&a.Username,
		&a.Email,
		&a.PasswordHash,
		&settingsBytes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, mapStorageErr("failed to scan account row", err)
	}

	if err := json.Unmarshal(settingsBytes, &a.Settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account settings: %w", err)
	}
	return a, nil
}

func (r *postgresAccountRepo) findOne(ctx context.Context, pred sq.Eq) (*account.Account, error) {
	query, args, err := psql.
		Select("id", "username", "email", "password_hash", "settings", "created_at", "updated_at").
		From("accounts").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build account query: %w", err)
	}

	return scanAccount(r.db.QueryRow(ctx, query, args...))
}

func (r *postgresAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *postgresAccountRepo) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	return r.findOne(ctx, sq.Eq{"username": username})
}

func (r *postgresAccountRepo) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *postgresAccountRepo) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1)`, username,
	).Scan(&taken)
	if err != nil {
		return false, mapStorageErr("failed to check username availability", err)
	}
	return !taken, nil
}

// Create inserts the account. Uniqueness is enforced by the table's unique
// constraints inside this single statement, so a racing duplicate loses with
// ErrDuplicateUsername/ErrDuplicateEmail and the store is left unchanged.
func (r *postgresAccountRepo) Create(ctx context.Context, a *account.Account) error {
	settingsBytes, err := json.Marshal(a.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal account settings: %w", err)
	}

	query, args, err := psql.
		Insert("accounts").
		Columns("id", "username", "email", "password_hash", "settings", "created_at", "updated_at").
		Values(a.ID, a.Username, a.Email, a.PasswordHash, settingsBytes, a.CreatedAt, a.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build account insert: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case constraintEmail:
				return account.ErrDuplicateEmail
			case constraintUsername:
				return account.ErrDuplicateUsername
			default:
				// older schema without named constraints
				return account.ErrDuplicateUsername
			}
		}
		return mapStorageErr("failed to insert account", err)
	}
	return nil
}

func (r *postgresAccountRepo) UpdateSettings(ctx context.Context, id uuid.UUID, settings account.PageSettings) error {
	settingsBytes, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal account settings: %w", err)
	}

	query, args, err := psql.
		Update("accounts").
		Set("settings", settingsBytes).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build settings update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return mapStorageErr("failed to update account settings", err)
	}
	if tag.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

// mapStorageErr surfaces an unreachable database as an explicit unavailable
// error instead of a generic internal one.
func mapStorageErr(details string, err error) error {
	var netErr net.Error
	var connectErr *pgconn.ConnectError
	if errors.As(err, &netErr) || errors.As(err, &connectErr) {
		return apperror.NewUnavailable(details, err)
	}
	return fmt.Errorf("%s: %w", details, err)
}
