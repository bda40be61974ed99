package shortener

import "context"

// Repository defines the interface for link persistence.
//
// Save must enforce code uniqueness and return ErrCodeTaken on conflict;
// relying on call ordering is not enough when requests run concurrently.
type Repository interface {
	Save(ctx context.Context, link *Link) error

	// GetByCode returns the link for a code, expired or not.
	// Returns ErrNotFound if the code is unknown.
	GetByCode(ctx context.Context, code Code) (*Link, error)

	// GetActiveByCode returns the link only if it has not expired.
	GetActiveByCode(ctx context.Context, code Code) (*Link, error)

	// GetByHash returns the link stored for a URL hash.
	// Used by the hash strategy for deduplication.
	GetByHash(ctx context.Context, hash URLHash) (*Link, error)

	// IncrementClicks bumps the click counter for a code.
	IncrementClicks(ctx context.Context, code Code) error

	// DeleteExpired removes links whose expiry has passed and
	// returns the number of deleted rows.
	DeleteExpired(ctx context.Context) (int64, error)
}
