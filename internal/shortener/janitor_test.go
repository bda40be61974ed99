package shortener_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/younesh11/url-shortner/internal/shortener"
	"github.com/younesh11/url-shortner/internal/store"
)

func TestJanitor(t *testing.T) {
	t.Run("sweeps expired links", func(t *testing.T) {
		memStore := store.NewMemoryStore()

		expired := time.Now().Add(-time.Minute).UTC()
		require.NoError(t, memStore.Save(context.Background(), &shortener.Link{
			Code:      "expired",
			TargetURL: testURL,
			CreatedAt: time.Now().Add(-time.Hour).UTC(),
			ExpiresAt: &expired,
		}))
		require.NoError(t, memStore.Save(context.Background(), &shortener.Link{
			Code:      "keep123",
			TargetURL: testURL,
			CreatedAt: time.Now().UTC(),
		}))

		janitor := shortener.NewJanitor(memStore, 10*time.Millisecond, zap.NewNop())

		require.NoError(t, janitor.Start(context.Background()))

		assert.Eventually(t, func() bool {
			_, err := memStore.GetByCode(context.Background(), "expired")

			return err != nil
		}, time.Second, 10*time.Millisecond, "expired link should be swept")

		require.NoError(t, janitor.Shutdown())

		_, err := memStore.GetByCode(context.Background(), "keep123")
		assert.NoError(t, err)
	})

	t.Run("shutdown stops the sweep loop", func(t *testing.T) {
		janitor := shortener.NewJanitor(store.NewMemoryStore(), time.Hour, zap.NewNop())

		require.NoError(t, janitor.Start(context.Background()))
		require.NoError(t, janitor.Shutdown())
	})
}
