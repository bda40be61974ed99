package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// CreateParams describes a request to create a short link.
type CreateParams struct {
	URL       string
	Alias     string // optional custom alias
	ExpiresAt *time.Time
	Strategy  StrategyName // defaults to StrategyRandom
}

// Resolution is the result of a metadata lookup for a code.
type Resolution struct {
	Exists    bool
	Expired   bool
	TargetURL string // set only when the link exists and is not expired
}

// Service owns the code-to-URL mapping: it validates inputs, dispatches
// to the configured strategy, and resolves codes back to their targets.
type Service struct {
	repo       Repository
	strategies map[StrategyName]Strategy
}

// NewService creates a shortener service with the injected strategies.
func NewService(repo Repository, strategies map[StrategyName]Strategy) *Service {
	return &Service{
		repo:       repo,
		strategies: strategies,
	}
}

// Create validates the target URL and produces a persisted short link.
//
// With an alias the link is inserted directly: ErrAliasTaken on conflict.
// Without one the chosen strategy generates the code.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Link, error) {
	targetURL, err := NormalizeTargetURL(params.URL)
	if err != nil {
		return nil, err
	}

	if params.ExpiresAt != nil {
		exp := params.ExpiresAt.UTC()
		if !exp.After(time.Now().UTC()) {
			return nil, fmt.Errorf("%w: expiry must be in the future", ErrInvalidURL)
		}

		params.ExpiresAt = &exp
	}

	if params.Alias != "" {
		return s.createWithAlias(ctx, targetURL, params.Alias, params.ExpiresAt)
	}

	name := params.Strategy
	if name == "" {
		name = StrategyRandom
	}

	strategy, ok := s.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}

	return strategy.Shorten(ctx, targetURL, params.ExpiresAt)
}

func (s *Service) createWithAlias(ctx context.Context, targetURL, alias string, expiresAt *time.Time) (*Link, error) {
	code, err := ValidateAlias(alias)
	if err != nil {
		return nil, err
	}

	link := &Link{
		Code:        Code(code),
		TargetURL:   targetURL,
		CreatedAt:   time.Now().UTC(),
		ExpiresAt:   expiresAt,
		CustomAlias: true,
	}

	if err := s.repo.Save(ctx, link); err != nil {
		if errors.Is(err, ErrCodeTaken) {
			return nil, ErrAliasTaken
		}

		return nil, err
	}

	return link, nil
}

// Resolve returns metadata for a code without redirecting.
// Unknown codes are not an error: Exists is false.
func (s *Service) Resolve(ctx context.Context, code Code) (*Resolution, error) {
	link, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &Resolution{}, nil
		}

		return nil, err
	}

	if link.Expired(time.Now().UTC()) {
		return &Resolution{Exists: true, Expired: true}, nil
	}

	return &Resolution{
		Exists:    true,
		TargetURL: link.TargetURL,
	}, nil
}

// LookupActive returns the link for a redirect, or ErrNotFound when the
// code is unknown, reserved, or expired.
func (s *Service) LookupActive(ctx context.Context, code Code) (*Link, error) {
	if IsReservedAlias(string(code)) {
		return nil, ErrNotFound
	}

	return s.repo.GetActiveByCode(ctx, code)
}
