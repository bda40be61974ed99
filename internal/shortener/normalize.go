package shortener

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// MaxTargetURLLength is the longest target URL accepted.
const MaxTargetURLLength = 2048

// NormalizeTargetURL trims and validates a target URL.
//   - A missing scheme defaults to https://
//   - Only http and https are allowed
//   - A host is required
//   - Length is capped at MaxTargetURLLength
//
// Returns ErrInvalidURL (wrapped with detail) on any violation.
func NormalizeTargetURL(rawURL string) (string, error) {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return "", fmt.Errorf("%w: url is required", ErrInvalidURL)
	}

	parsed, err := url.Parse(u)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, err)
	}

	if parsed.Scheme == "" {
		u = "https://" + u

		parsed, err = url.Parse(u)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidURL, err)
		}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: only http and https urls are allowed", ErrInvalidURL)
	}

	if parsed.Host == "" {
		return "", fmt.Errorf("%w: url must include a host", ErrInvalidURL)
	}

	if len(u) > MaxTargetURLLength {
		return "", fmt.Errorf("%w: url is too long", ErrInvalidURL)
	}

	return u, nil
}

// CanonicalizeURL rewrites a URL into a canonical form for hashing.
//   - Lowercases the scheme and host
//   - Removes default ports (80 for http, 443 for https)
//   - Removes trailing slashes from the path (unless the path is just "/")
//   - Removes empty fragments
func CanonicalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	host := u.Host
	if strings.HasSuffix(host, ":80") && u.Scheme == "http" {
		u.Host = strings.TrimSuffix(host, ":80")
	} else if strings.HasSuffix(host, ":443") && u.Scheme == "https" {
		u.Host = strings.TrimSuffix(host, ":443")
	}

	if len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	u.Fragment = ""

	return u.String(), nil
}

// HashURL computes a SHA256 hash of the canonical URL.
// Returns the hash as a hex-encoded string.
func HashURL(canonicalURL string) URLHash {
	h := sha256.Sum256([]byte(canonicalURL))

	return URLHash(hex.EncodeToString(h[:]))
}
