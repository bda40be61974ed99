package analytics

import (
	"context"

	"github.com/younesh11/url-shortner/internal/messaging"
)

// NewLinkCreatedHandler returns a handler persisting creation events.
func NewLinkCreatedHandler(store Store) messaging.Handler[LinkCreatedEvent] {
	return func(ctx context.Context, event *LinkCreatedEvent) error {
		return store.SaveLinkCreated(ctx, event)
	}
}

// NewLinkVisitedHandler returns a handler persisting visit events.
func NewLinkVisitedHandler(store Store) messaging.Handler[LinkVisitedEvent] {
	return func(ctx context.Context, event *LinkVisitedEvent) error {
		return store.SaveLinkVisited(ctx, event)
	}
}
