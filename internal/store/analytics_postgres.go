package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/younesh11/url-shortner/internal/analytics"
)

// AnalyticsPostgresStore persists link events to PostgreSQL.
// Visits also bump the click counter on the link row itself.
type AnalyticsPostgresStore struct {
	pool *pgxpool.Pool
}

// NewAnalyticsPostgresStore creates a new PostgreSQL-backed analytics store.
func NewAnalyticsPostgresStore(pool *pgxpool.Pool) *AnalyticsPostgresStore {
	return &AnalyticsPostgresStore{pool: pool}
}

func (s *AnalyticsPostgresStore) SaveLinkCreated(ctx context.Context, event *analytics.LinkCreatedEvent) error {
	query := `
		INSERT INTO link_events (event_type, code, strategy, request_id, client_ip, user_agent, referrer, occurred_at)
		VALUES ('created', $1, $2, $3, $4, $5, '', $6)
	`

	_, err := s.pool.Exec(ctx, query,
		event.Code,
		event.Strategy,
		event.RequestID,
		event.ClientIP,
		event.UserAgent,
		event.CreatedAt,
	)

	return err
}

func (s *AnalyticsPostgresStore) SaveLinkVisited(ctx context.Context, event *analytics.LinkVisitedEvent) error {
	query := `
		INSERT INTO link_events (event_type, code, strategy, request_id, client_ip, user_agent, referrer, occurred_at)
		VALUES ('visited', $1, '', $2, $3, $4, $5, $6)
	`

	_, err := s.pool.Exec(ctx, query,
		event.Code,
		event.RequestID,
		event.ClientIP,
		event.UserAgent,
		event.Referrer,
		event.VisitedAt,
	)
	if err != nil {
		return err
	}

	// Click counters live on the link row; a visit for a deleted link
	// still keeps its event above.
	_, err = s.pool.Exec(ctx,
		`UPDATE links SET click_count = click_count + 1 WHERE code = $1`,
		event.Code,
	)

	return err
}

// Compile-time check.
var _ analytics.Store = (*AnalyticsPostgresStore)(nil)
