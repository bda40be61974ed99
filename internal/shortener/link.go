package shortener

import (
	"errors"
	"time"
)

// Code represents a short link code.
type Code string

// URLHash represents a hash of a normalized target URL.
type URLHash string

// Link represents a shortened URL entity.
type Link struct {
	Code        Code
	TargetURL   string
	URLHash     URLHash // empty unless created by the hash strategy
	CreatedAt   time.Time
	ExpiresAt   *time.Time // nil means the link never expires
	CustomAlias bool
	ClickCount  int64
}

// Expired reports whether the link is expired at the given instant.
func (l *Link) Expired(now time.Time) bool {
	return l.ExpiresAt != nil && !l.ExpiresAt.After(now)
}

var (
	// ErrNotFound is returned when no link exists for a code or hash.
	ErrNotFound = errors.New("link not found")

	// ErrCodeTaken is returned by Repository.Save when the code already exists.
	ErrCodeTaken = errors.New("code already taken")

	// ErrInvalidURL is returned for malformed or disallowed target URLs.
	ErrInvalidURL = errors.New("invalid target url")

	// ErrInvalidAlias is returned for aliases that fail validation.
	ErrInvalidAlias = errors.New("invalid alias")

	// ErrAliasTaken is returned when a requested alias is already in use.
	ErrAliasTaken = errors.New("alias already taken")

	// ErrCodeExhausted is returned when code generation keeps colliding.
	ErrCodeExhausted = errors.New("could not generate a unique code")

	// ErrUnknownStrategy is returned for an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("unknown shortening strategy")
)
