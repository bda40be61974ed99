package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Store counts requests per key inside a sliding window. Record adds the
// request, drops entries older than the window, and returns the resulting
// count.
type Store interface {
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}

// LimitConfig is a single window/budget pair.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps scopes to the limits enforced for them.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// DefaultPolicy builds the service policy from the configured per-minute
// write budget. Reads get an order of magnitude more room; the global
// scope backstops both.
func DefaultPolicy(writePerMinute int64) *Policy {
	return &Policy{
		Limits: map[Scope][]LimitConfig{
			ScopeWrite: {
				{Window: time.Minute, Max: writePerMinute},
			},
			ScopeRead: {
				{Window: time.Minute, Max: writePerMinute * 10},
			},
			ScopeGlobal: {
				{Window: time.Minute, Max: writePerMinute * 20},
			},
		},
	}
}

// LimitExceeded identifies the budget a request exhausted. Scope is empty
// when a route-specific limit tripped.
type LimitExceeded struct {
	Scope  Scope
	Config LimitConfig
	Count  int64
}

// PolicyLimiter enforces the service policy. A request is recorded under
// every scope that applies to it, and the first exhausted budget rejects
// the request.
type PolicyLimiter struct {
	store  Store
	policy *Policy
}

// NewPolicyLimiter builds a limiter over the given store and policy.
func NewPolicyLimiter(store Store, policy *Policy) *PolicyLimiter {
	return &PolicyLimiter{
		store:  store,
		policy: policy,
	}
}

// Allow records the request against every limit the policy configures for
// the given scopes. Scopes without configured limits are skipped.
func (l *PolicyLimiter) Allow(ctx context.Context, clientKey string, scopes []Scope) (bool, *LimitExceeded, error) {
	for _, scope := range scopes {
		for _, limit := range l.policy.Limits[scope] {
			// Each client/scope/window triple tracks its own counter.
			key := fmt.Sprintf("%s:%s:%d", clientKey, scope, limit.Window.Milliseconds())

			exceeded, err := l.record(ctx, key, scope, limit)
			if err != nil {
				return false, nil, err
			}

			if exceeded != nil {
				return false, exceeded, nil
			}
		}
	}

	return true, nil, nil
}

// AllowLimits records the request against route-specific limits instead of
// the policy. Counters are shared by every request matching the same route
// template per client, regardless of scope.
func (l *PolicyLimiter) AllowLimits(ctx context.Context, clientKey, route string, limits []LimitConfig) (bool, *LimitExceeded, error) {
	for _, limit := range limits {
		key := fmt.Sprintf("%s:route:%s:%d", clientKey, route, limit.Window.Milliseconds())

		exceeded, err := l.record(ctx, key, "", limit)
		if err != nil {
			return false, nil, err
		}

		if exceeded != nil {
			return false, exceeded, nil
		}
	}

	return true, nil, nil
}

func (l *PolicyLimiter) record(ctx context.Context, key string, scope Scope, limit LimitConfig) (*LimitExceeded, error) {
	count, err := l.store.Record(ctx, key, limit.Window)
	if err != nil {
		return nil, err
	}

	if count <= limit.Max {
		return nil, nil
	}

	return &LimitExceeded{
		Scope:  scope,
		Config: limit,
		Count:  count,
	}, nil
}
