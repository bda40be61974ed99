package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younesh11/url-shortner/internal/container"
)

func validOptions() *container.Options {
	return &container.Options{
		Port:            8000,
		CodeLength:      7,
		RateLimitPerMin: 60,
		SnowflakeNode:   0,
	}
}

func TestOptionsValidate(t *testing.T) {
	t.Run("accepts defaults", func(t *testing.T) {
		assert.NoError(t, validOptions().Validate())
	})

	t.Run("rejects code length out of range", func(t *testing.T) {
		for _, length := range []int{0, 2, 33} {
			opts := validOptions()
			opts.CodeLength = length

			assert.Error(t, opts.Validate(), "code length %d", length)
		}
	})

	t.Run("rejects non-positive rate limit", func(t *testing.T) {
		opts := validOptions()
		opts.RateLimitPerMin = 0

		assert.Error(t, opts.Validate())
	})

	t.Run("rejects snowflake node out of range", func(t *testing.T) {
		for _, node := range []int{-1, 1024} {
			opts := validOptions()
			opts.SnowflakeNode = node

			assert.Error(t, opts.Validate(), "node %d", node)
		}
	})
}

func TestServerBaseURL(t *testing.T) {
	t.Run("defaults to localhost with the configured port", func(t *testing.T) {
		opts := validOptions()

		assert.Equal(t, "http://localhost:8000", opts.ServerBaseURL())
	})

	t.Run("uses the configured base url", func(t *testing.T) {
		opts := validOptions()
		opts.BaseURL = "https://sho.rt"

		assert.Equal(t, "https://sho.rt", opts.ServerBaseURL())
	})
}
