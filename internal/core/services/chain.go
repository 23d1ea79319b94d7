package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/core/ports/driven"
	"github.com/policyq/policyq-cli/internal/logger"
)

// Chain tuning.
const (
	// DefaultChainRetries bounds per-backend retries on throttling.
	DefaultChainRetries = 2

	// chainBackoffBase is the first retry delay; it doubles per attempt.
	chainBackoffBase = time.Second

	// minUsableResponse rejects degenerate completions (empty or a few
	// characters) so the chain advances instead of surfacing junk.
	minUsableResponse = 2
)

// ProviderAttempt records one backend try, for diagnostics.
type ProviderAttempt struct {
	Backend string
	Err     error
}

// CompletionChain walks an ordered list of completion backends until
// one produces a usable response. Throttled backends are retried with
// doubling backoff up to maxRetries; any other failure advances to the
// next backend immediately. When every backend fails the chain returns
// domain.ErrCompletionExhausted and the caller degrades to the
// rule-based responder.
type CompletionChain struct {
	backends   []driven.CompletionBackend
	maxRetries int

	// sleep is replaceable in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewCompletionChain creates a chain over the given backends, tried in
// order. maxRetries <= 0 uses DefaultChainRetries.
func NewCompletionChain(backends []driven.CompletionBackend, maxRetries int) *CompletionChain {
	if maxRetries <= 0 {
		maxRetries = DefaultChainRetries
	}
	return &CompletionChain{
		backends:   backends,
		maxRetries: maxRetries,
		sleep:      sleepCtx,
	}
}

// SetSleep replaces the backoff sleep function. Tests use this to make
// retries instantaneous.
func (c *CompletionChain) SetSleep(sleep func(ctx context.Context, d time.Duration) error) {
	c.sleep = sleep
}

// Len returns the number of backends in the chain.
func (c *CompletionChain) Len() int {
	return len(c.backends)
}

// Complete runs the prompt through the chain. Returns the response and
// the name of the backend that produced it. The attempts slice records
// every failed try and is returned on success and failure alike.
func (c *CompletionChain) Complete(ctx context.Context, prompt string) (string, string, []ProviderAttempt, error) {
	logger.Section("Completion Chain")

	var attempts []ProviderAttempt

	for _, backend := range c.backends {
		response, err := c.completeWithRetry(ctx, backend, prompt, &attempts)
		if err != nil {
			if ctx.Err() != nil {
				return "", "", attempts, ctx.Err()
			}
			logger.Warn("Backend %s failed: %v", backend.Name(), err)
			continue
		}
		if len(strings.TrimSpace(response)) < minUsableResponse {
			logger.Warn("Backend %s returned a degenerate response, advancing", backend.Name())
			attempts = append(attempts, ProviderAttempt{
				Backend: backend.Name(),
				Err:     errors.New("degenerate response"),
			})
			continue
		}

		logger.Info("Backend %s answered (%d chars)", backend.Name(), len(response))
		return response, backend.Name(), attempts, nil
	}

	logger.Warn("All %d backends exhausted", len(c.backends))
	return "", "", attempts, domain.ErrCompletionExhausted
}

// completeWithRetry calls one backend, retrying only throttling errors.
func (c *CompletionChain) completeWithRetry(
	ctx context.Context, backend driven.CompletionBackend, prompt string, attempts *[]ProviderAttempt,
) (string, error) {
	delay := chainBackoffBase

	for attempt := 0; ; attempt++ {
		response, err := backend.Complete(ctx, prompt)
		if err == nil {
			return response, nil
		}

		*attempts = append(*attempts, ProviderAttempt{Backend: backend.Name(), Err: err})

		if !errors.Is(err, domain.ErrRateLimited) {
			return "", fmt.Errorf("complete: %w", err)
		}
		if attempt >= c.maxRetries {
			return "", fmt.Errorf("complete: retries exhausted: %w", err)
		}

		logger.Warn("Backend %s throttled, retrying in %s (attempt %d/%d)",
			backend.Name(), delay, attempt+1, c.maxRetries)
		if err := c.sleep(ctx, delay); err != nil {
			return "", err
		}
		delay *= 2
	}
}
