package shortener

import (
	"fmt"
	"regexp"
	"strings"
)

// aliasPattern accepts 3-30 chars of lowercase letters, digits, '_' or '-',
// starting with a letter or digit.
var aliasPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,29}$`)

// reservedAliases are codes that collide with routes or well-known paths.
var reservedAliases = map[string]struct{}{
	"api":          {},
	"health":       {},
	"docs":         {},
	"openapi.json": {},
	"redoc":        {},
	"favicon.ico":  {},
	"static":       {},
	"metrics":      {},
}

// IsReservedAlias reports whether the alias collides with a reserved path.
func IsReservedAlias(alias string) bool {
	_, ok := reservedAliases[strings.ToLower(alias)]

	return ok
}

// ValidateAlias canonicalizes and validates a user-provided alias.
// Returns the canonical (lowercased) alias, or ErrInvalidAlias.
func ValidateAlias(alias string) (string, error) {
	a := strings.ToLower(strings.TrimSpace(alias))

	if !aliasPattern.MatchString(a) {
		return "", fmt.Errorf(
			"%w: alias must be 3-30 chars of letters, digits, '_' or '-', starting with a letter or digit",
			ErrInvalidAlias,
		)
	}

	if IsReservedAlias(a) {
		return "", fmt.Errorf("%w: alias is reserved", ErrInvalidAlias)
	}

	return a, nil
}
