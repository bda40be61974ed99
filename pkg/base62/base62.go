// Package base62 converts integers to and from base62 strings.
package base62

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const base = 62

// ErrOverflow is returned when a decoded value exceeds int64.
var ErrOverflow = errors.New("base62: value overflows int64")

// Encode converts a non-negative integer into a base62 string.
func Encode(n int64) string {
	if n == 0 {
		return string(alphabet[0])
	}

	buf := make([]byte, 0, 11)
	for n > 0 {
		buf = append(buf, alphabet[n%base])
		n /= base
	}

	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf)
}

// Decode converts a base62 string back into an integer.
func Decode(s string) (int64, error) {
	if s == "" {
		return 0, errors.New("base62: empty string")
	}

	var n int64

	for i, c := range s {
		idx := strings.IndexRune(alphabet, c)
		if idx < 0 {
			return 0, fmt.Errorf("base62: invalid character %q at position %d", c, i)
		}

		// Checked before multiplying: n*base can wrap past int64 and
		// land positive again, so a sign check afterwards is not enough.
		if n > (math.MaxInt64-int64(idx))/base {
			return 0, ErrOverflow
		}

		n = n*base + int64(idx)
	}

	return n, nil
}
