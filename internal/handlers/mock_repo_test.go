package handlers_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younesh11/url-shortner/internal/shortener"
)

var errMock = errors.New("mock error")

const testURL = "https://example.com"

// assertStatus checks that err is a huma status error with the given code.
func assertStatus(t *testing.T, err error, status int) {
	t.Helper()

	require.Error(t, err)

	var statusErr huma.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, status, statusErr.GetStatus())
}

// mockRepo is a test double for shortener.Repository that can be
// configured to return errors.
type mockRepo struct {
	saveErr      error
	getErr       error
	getActiveErr error
}

func (m *mockRepo) Save(_ context.Context, _ *shortener.Link) error {
	return m.saveErr
}

func (m *mockRepo) GetByCode(_ context.Context, code shortener.Code) (*shortener.Link, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}

	return &shortener.Link{Code: code, TargetURL: testURL}, nil
}

func (m *mockRepo) GetActiveByCode(_ context.Context, code shortener.Code) (*shortener.Link, error) {
	if m.getActiveErr != nil {
		return nil, m.getActiveErr
	}

	return &shortener.Link{Code: code, TargetURL: testURL}, nil
}

func (m *mockRepo) GetByHash(_ context.Context, _ shortener.URLHash) (*shortener.Link, error) {
	return nil, shortener.ErrNotFound
}

func (m *mockRepo) IncrementClicks(_ context.Context, _ shortener.Code) error { return nil }

func (m *mockRepo) DeleteExpired(_ context.Context) (int64, error) { return 0, nil }
