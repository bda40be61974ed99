package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/younesh11/url-shortner/internal/shortener"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// PostgresStore is a PostgreSQL implementation of shortener.Repository.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Save(ctx context.Context, link *shortener.Link) error {
	query := `
		INSERT INTO links (code, target_url, url_hash, created_at, expires_at, is_custom_alias)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		string(link.Code),
		link.TargetURL,
		nullableHash(link.URLHash),
		link.CreatedAt,
		link.ExpiresAt,
		link.CustomAlias,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return shortener.ErrCodeTaken
		}

		return err
	}

	return nil
}

const selectColumns = `code, target_url, url_hash, created_at, expires_at, is_custom_alias, click_count`

func (p *PostgresStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	query := `SELECT ` + selectColumns + ` FROM links WHERE code = $1`

	return p.queryOne(ctx, query, string(code))
}

func (p *PostgresStore) GetActiveByCode(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	// DB-side time keeps the expiry comparison portable across hosts.
	query := `SELECT ` + selectColumns + ` FROM links
		WHERE code = $1 AND (expires_at IS NULL OR expires_at > current_timestamp)`

	return p.queryOne(ctx, query, string(code))
}

func (p *PostgresStore) GetByHash(ctx context.Context, hash shortener.URLHash) (*shortener.Link, error) {
	query := `SELECT ` + selectColumns + ` FROM links WHERE url_hash = $1`

	return p.queryOne(ctx, query, string(hash))
}

func (p *PostgresStore) queryOne(ctx context.Context, query string, arg any) (*shortener.Link, error) {
	var (
		link    shortener.Link
		urlHash *string
	)

	err := p.pool.QueryRow(ctx, query, arg).Scan(
		&link.Code,
		&link.TargetURL,
		&urlHash,
		&link.CreatedAt,
		&link.ExpiresAt,
		&link.CustomAlias,
		&link.ClickCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	if urlHash != nil {
		link.URLHash = shortener.URLHash(*urlHash)
	}

	return &link, nil
}

func (p *PostgresStore) IncrementClicks(ctx context.Context, code shortener.Code) error {
	query := `UPDATE links SET click_count = click_count + 1 WHERE code = $1`

	tag, err := p.pool.Exec(ctx, query, string(code))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return shortener.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM links WHERE expires_at IS NOT NULL AND expires_at <= current_timestamp`

	tag, err := p.pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func nullableHash(h shortener.URLHash) *string {
	if h == "" {
		return nil
	}

	s := string(h)

	return &s
}

// Compile-time check.
var _ shortener.Repository = (*PostgresStore)(nil)
