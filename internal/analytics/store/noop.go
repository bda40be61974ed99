package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/younesh11/url-shortner/internal/analytics"
)

// Noop is an analytics.Store that records nothing. It logs each event at
// debug level and backs the consumer when no analytics database is
// configured.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a discarding analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	n.logger.Debug("discarding link created event",
		zap.String("code", event.Code),
		zap.String("target_url", event.TargetURL),
		zap.String("strategy", event.Strategy),
		zap.Bool("custom_alias", event.CustomAlias),
	)

	return nil
}

func (n *Noop) SaveLinkVisited(_ context.Context, event *analytics.LinkVisitedEvent) error {
	n.logger.Debug("discarding link visited event",
		zap.String("code", event.Code),
		zap.String("referrer", event.Referrer),
		zap.Time("visited_at", event.VisitedAt),
	)

	return nil
}
