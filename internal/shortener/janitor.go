package shortener

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Janitor periodically deletes expired links.
type Janitor struct {
	repo     Repository
	interval time.Duration
	logger   *zap.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewJanitor creates a janitor sweeping at the given interval.
func NewJanitor(repo Repository, interval time.Duration, logger *zap.Logger) *Janitor {
	return &Janitor{
		repo:     repo,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins the periodic sweep.
func (j *Janitor) Start(ctx context.Context) error {
	ctx, j.cancel = context.WithCancel(ctx)

	go j.run(ctx)

	return nil
}

func (j *Janitor) run(ctx context.Context) {
	defer close(j.done)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	deleted, err := j.repo.DeleteExpired(ctx)
	if err != nil {
		j.logger.Error("expired link sweep failed", zap.Error(err))

		return
	}

	if deleted > 0 {
		j.logger.Info("deleted expired links", zap.Int64("count", deleted))
	}
}

// Shutdown stops the janitor and waits for the current sweep to finish.
func (j *Janitor) Shutdown() error {
	if j.cancel != nil {
		j.cancel()
	}

	<-j.done

	return nil
}
