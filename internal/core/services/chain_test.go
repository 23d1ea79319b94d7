package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/core/ports/driven"
)

// scriptedBackend returns its scripted results in order, repeating the
// last one when the script runs out.
type scriptedBackend struct {
	name   string
	script []backendResult
	calls  int
}

type backendResult struct {
	response string
	err      error
}

func (b *scriptedBackend) Name() string { return b.name }

func (b *scriptedBackend) Complete(_ context.Context, _ string) (string, error) {
	idx := b.calls
	if idx >= len(b.script) {
		idx = len(b.script) - 1
	}
	b.calls++
	r := b.script[idx]
	return r.response, r.err
}

func noSleep(_ context.Context, _ time.Duration) error { return nil }

func newTestChain(maxRetries int, backends ...driven.CompletionBackend) *CompletionChain {
	chain := NewCompletionChain(backends, maxRetries)
	chain.SetSleep(noSleep)
	return chain
}

func TestChain_FirstBackendSucceeds(t *testing.T) {
	a := &scriptedBackend{name: "groq-pool-1", script: []backendResult{{response: "the premium is monthly"}}}
	b := &scriptedBackend{name: "gemini", script: []backendResult{{response: "unused"}}}
	chain := newTestChain(2, a, b)

	response, backend, attempts, err := chain.Complete(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "the premium is monthly", response)
	assert.Equal(t, "groq-pool-1", backend)
	assert.Empty(t, attempts)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 0, b.calls, "later backends must not be invoked")
}

func TestChain_ThrottledBackendIsRetriedNotSkipped(t *testing.T) {
	throttled := fmt.Errorf("throttled: %w", domain.ErrRateLimited)
	a := &scriptedBackend{name: "groq-pool-1", script: []backendResult{
		{err: throttled},
		{err: throttled},
		{response: "recovered answer"},
	}}
	b := &scriptedBackend{name: "gemini", script: []backendResult{{response: "unused"}}}
	chain := newTestChain(2, a, b)

	response, backend, attempts, err := chain.Complete(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "recovered answer", response)
	assert.Equal(t, "groq-pool-1", backend)
	assert.Equal(t, 3, a.calls)
	assert.Equal(t, 0, b.calls)
	assert.Len(t, attempts, 2)
}

func TestChain_HardFailureAdvancesImmediately(t *testing.T) {
	a := &scriptedBackend{name: "groq-pool-1", script: []backendResult{{err: errors.New("bad gateway")}}}
	b := &scriptedBackend{name: "gemini", script: []backendResult{{response: "second opinion"}}}
	chain := newTestChain(2, a, b)

	response, backend, attempts, err := chain.Complete(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "second opinion", response)
	assert.Equal(t, "gemini", backend)
	assert.Equal(t, 1, a.calls, "hard failures are not retried")
	assert.Equal(t, 1, b.calls)
	require.Len(t, attempts, 1)
	assert.Equal(t, "groq-pool-1", attempts[0].Backend)
}

func TestChain_RetriesExhaustedThenAdvances(t *testing.T) {
	throttled := fmt.Errorf("throttled: %w", domain.ErrRateLimited)
	a := &scriptedBackend{name: "groq-pool-1", script: []backendResult{{err: throttled}}}
	b := &scriptedBackend{name: "gemini", script: []backendResult{{response: "fallback worked"}}}
	chain := newTestChain(2, a, b)

	response, backend, _, err := chain.Complete(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "fallback worked", response)
	assert.Equal(t, "gemini", backend)
	assert.Equal(t, 3, a.calls, "initial try plus two retries")
}

func TestChain_AllBackendsFail(t *testing.T) {
	a := &scriptedBackend{name: "groq-pool-1", script: []backendResult{{err: errors.New("down")}}}
	b := &scriptedBackend{name: "gemini", script: []backendResult{{err: errors.New("also down")}}}
	chain := newTestChain(1, a, b)

	_, _, attempts, err := chain.Complete(context.Background(), "q")

	assert.ErrorIs(t, err, domain.ErrCompletionExhausted)
	assert.Len(t, attempts, 2)
}

func TestChain_DegenerateResponseAdvances(t *testing.T) {
	a := &scriptedBackend{name: "groq-pool-1", script: []backendResult{{response: "  "}}}
	b := &scriptedBackend{name: "gemini", script: []backendResult{{response: "a real answer"}}}
	chain := newTestChain(1, a, b)

	response, backend, _, err := chain.Complete(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "a real answer", response)
	assert.Equal(t, "gemini", backend)
}

func TestChain_NoBackends(t *testing.T) {
	chain := newTestChain(1)

	_, _, _, err := chain.Complete(context.Background(), "q")

	assert.ErrorIs(t, err, domain.ErrCompletionExhausted)
}

func TestChain_ContextCancellation(t *testing.T) {
	throttled := fmt.Errorf("throttled: %w", domain.ErrRateLimited)
	a := &scriptedBackend{name: "groq-pool-1", script: []backendResult{{err: throttled}}}
	chain := NewCompletionChain([]driven.CompletionBackend{a}, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := chain.Complete(ctx, "q")

	assert.ErrorIs(t, err, context.Canceled)
}
