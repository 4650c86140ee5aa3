package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/krypton/internal/domain/page"
)

type postgresViewRepo struct {
	db *pgxpool.Pool
}

func NewPostgresViewRepo(db *pgxpool.Pool) page.ViewRepository {
	return &postgresViewRepo{db: db}
}

func (r *postgresViewRepo) Increment(ctx context.Context, username string, delta int64) error {
	query := `
		INSERT INTO page_views (username, view_count, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (username) DO UPDATE SET
			view_count = page_views.view_count + EXCLUDED.view_count,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, username, delta)
	if err != nil {
		return mapStorageErr("failed to increment page views", err)
	}
	return nil
}

func (r *postgresViewRepo) Count(ctx context.Context, username string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT view_count FROM page_views WHERE username = $1`, username,
	).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, mapStorageErr("failed to read page views", err)
	}
	return count, nil
}
