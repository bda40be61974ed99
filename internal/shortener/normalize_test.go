package shortener

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeTargetURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "passes through absolute https url",
			input:    "https://example.com/page",
			expected: "https://example.com/page",
		},
		{
			name:     "passes through http url",
			input:    "http://example.com",
			expected: "http://example.com",
		},
		{
			name:     "defaults missing scheme to https",
			input:    "example.com/page",
			expected: "https://example.com/page",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  https://example.com  ",
			expected: "https://example.com",
		},
		{
			name:     "preserves query string",
			input:    "https://example.com/p?a=1&b=2",
			expected: "https://example.com/p?a=1&b=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizeTargetURL(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("got %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestNormalizeTargetURL_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "not a url", input: "not a url"},
		{name: "unsupported scheme", input: "ftp://example.com/file"},
		{name: "javascript scheme", input: "javascript:alert(1)"},
		{name: "missing host", input: "https:///path"},
		{name: "too long", input: "https://example.com/" + strings.Repeat("x", MaxTargetURLLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeTargetURL(tt.input)
			if !errors.Is(err, ErrInvalidURL) {
				t.Errorf("got %v, want ErrInvalidURL", err)
			}
		})
	}
}

func TestCanonicalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases scheme and host",
			input:    "HTTPS://EXAMPLE.COM/Path",
			expected: "https://example.com/Path",
		},
		{
			name:     "removes default https port",
			input:    "https://example.com:443/path",
			expected: "https://example.com/path",
		},
		{
			name:     "removes default http port",
			input:    "http://example.com:80/path",
			expected: "http://example.com/path",
		},
		{
			name:     "keeps non-default port",
			input:    "https://example.com:8080/path",
			expected: "https://example.com:8080/path",
		},
		{
			name:     "removes trailing slash",
			input:    "https://example.com/path/",
			expected: "https://example.com/path",
		},
		{
			name:     "keeps root slash",
			input:    "https://example.com/",
			expected: "https://example.com/",
		},
		{
			name:     "removes fragment",
			input:    "https://example.com/path#section",
			expected: "https://example.com/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CanonicalizeURL(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("got %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestHashURL(t *testing.T) {
	t.Run("same input produces same hash", func(t *testing.T) {
		if HashURL("https://example.com/a") != HashURL("https://example.com/a") {
			t.Error("same input produced different hashes")
		}
	})

	t.Run("different input produces different hash", func(t *testing.T) {
		if HashURL("https://example.com/a") == HashURL("https://example.com/b") {
			t.Error("different inputs produced same hash")
		}
	})

	t.Run("hash is 64 hex characters", func(t *testing.T) {
		if len(HashURL("https://example.com")) != 64 {
			t.Error("hash is not 64 characters")
		}
	})
}
