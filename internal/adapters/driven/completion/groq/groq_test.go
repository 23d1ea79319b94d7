package groq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) *Backend {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	backend, err := New(Config{APIKey: "test-key", BaseURL: server.URL, Pool: 2})
	require.NoError(t, err)
	return backend
}

func TestComplete_Success(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"choices":[{"message":{"content":"an answer"}}]}`))
	})

	response, err := backend.Complete(context.Background(), "a question")

	require.NoError(t, err)
	assert.Equal(t, "an answer", response)
}

func TestComplete_Status429IsRateLimited(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"slow down","type":"requests"}}`))
	})

	_, err := backend.Complete(context.Background(), "q")

	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestComplete_QuotaErrorBodyIsRateLimited(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":{"message":"Rate limit reached for model","type":"rate_limit_exceeded"}}`))
	})

	_, err := backend.Complete(context.Background(), "q")

	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestComplete_HardErrorIsNotRateLimited(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"bad request","type":"invalid_request_error"}}`))
	})

	_, err := backend.Complete(context.Background(), "q")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRateLimited)
}

func TestName_ReflectsPool(t *testing.T) {
	backend, err := New(Config{APIKey: "k", Pool: 3})
	require.NoError(t, err)

	assert.Equal(t, "groq-pool-3", backend.Name())
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})

	assert.Error(t, err)
}

func TestPing_Success(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":[]}`))
	})

	assert.NoError(t, backend.Ping(context.Background()))
}

func TestPing_BadKey(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	assert.Error(t, backend.Ping(context.Background()))
}
