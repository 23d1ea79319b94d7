package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/policyq/policyq-cli/internal/cache"
	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/core/ports/driven"
	"github.com/policyq/policyq-cli/internal/logger"
)

// Embedding batch tuning.
const (
	// DefaultEmbedBatchSize is the number of texts sent per provider call.
	DefaultEmbedBatchSize = 20

	// DefaultEmbedRetries is how many times a throttled batch is retried
	// before being given up on.
	DefaultEmbedRetries = 3

	// embedBackoffBase is the first retry delay; it doubles per attempt.
	embedBackoffBase = 500 * time.Millisecond
)

// EmbeddingService sits between callers and the raw embedding provider.
// It deduplicates work through the fingerprint-keyed cache, batches
// provider calls, retries throttled batches with exponential backoff,
// and discards vectors whose dimensionality does not match the model.
//
// Failures degrade per text: a text that could not be embedded yields a
// nil vector in the result, never an error for the whole request.
type EmbeddingService struct {
	provider    driven.EmbeddingProvider
	cache       *cache.Cache
	expectedDim int
	batchSize   int
	maxRetries  int

	// sleep is replaceable in tests to avoid real backoff waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewEmbeddingService creates an embedding service. The cache is
// optional; pass nil to disable caching.
func NewEmbeddingService(provider driven.EmbeddingProvider, c *cache.Cache, cfg domain.EmbeddingSettings) *EmbeddingService {
	expectedDim := cfg.Dim()
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultEmbedBatchSize
	}

	return &EmbeddingService{
		provider:    provider,
		cache:       c,
		expectedDim: expectedDim,
		batchSize:   batchSize,
		maxRetries:  DefaultEmbedRetries,
		sleep:       sleepCtx,
	}
}

// SetSleep replaces the backoff sleep function. Tests use this to make
// retries instantaneous.
func (s *EmbeddingService) SetSleep(sleep func(ctx context.Context, d time.Duration) error) {
	s.sleep = sleep
}

// EmbedTexts embeds a batch of texts. The result is aligned with the
// input: result[i] is the vector for texts[i], or nil if that text
// could not be embedded. The only hard errors are context cancellation
// and a missing provider.
func (s *EmbeddingService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if s.provider == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Embedding")
	logger.Debug("Embedding %d texts (batch size %d)", len(texts), s.batchSize)

	results := make([][]float32, len(texts))

	// Resolve cache hits first so only misses hit the network.
	var missIdx []int
	for i, text := range texts {
		if vec := s.cached(text); vec != nil {
			results[i] = vec
			continue
		}
		missIdx = append(missIdx, i)
	}
	logger.Debug("Cache: %d hits, %d misses", len(texts)-len(missIdx), len(missIdx))

	for start := 0; start < len(missIdx); start += s.batchSize {
		end := start + s.batchSize
		if end > len(missIdx) {
			end = len(missIdx)
		}
		batch := missIdx[start:end]

		batchTexts := make([]string, len(batch))
		for j, idx := range batch {
			batchTexts[j] = texts[idx]
		}

		vectors, err := s.embedBatchWithRetry(ctx, batchTexts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Hard failure: every text in this batch stays nil.
			logger.Warn("Batch of %d texts failed: %v", len(batch), err)
			continue
		}

		for j, idx := range batch {
			if j >= len(vectors) {
				break
			}
			vec := vectors[j]
			if !s.validDim(vec) {
				logger.Warn("Discarding vector with %d dimensions, expected %d", len(vec), s.expectedDim)
				continue
			}
			results[idx] = vec
			s.store(texts[idx], vec)
		}
	}

	return results, nil
}

// EmbedQuery embeds a single text, typically a search query. Unlike
// EmbedTexts it returns an error on failure, because a query without a
// vector cannot be retrieved against.
func (s *EmbeddingService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 || vectors[0] == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	return vectors[0], nil
}

// Dimensions returns the expected embedding width.
func (s *EmbeddingService) Dimensions() int {
	return s.expectedDim
}

// embedBatchWithRetry calls the provider, retrying only throttling
// errors. The delay doubles per attempt.
func (s *EmbeddingService) embedBatchWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	delay := embedBackoffBase

	for attempt := 0; ; attempt++ {
		vectors, err := s.provider.EmbedBatch(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		if !errors.Is(err, domain.ErrRateLimited) {
			return nil, fmt.Errorf("embed batch: %w", err)
		}
		if attempt >= s.maxRetries {
			return nil, fmt.Errorf("embed batch: retries exhausted: %w", err)
		}

		logger.Warn("Embedding throttled, retrying in %s (attempt %d/%d)", delay, attempt+1, s.maxRetries)
		if err := s.sleep(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
	}
}

func (s *EmbeddingService) validDim(vec []float32) bool {
	if vec == nil {
		return false
	}
	return s.expectedDim <= 0 || len(vec) == s.expectedDim
}

func (s *EmbeddingService) cached(text string) []float32 {
	if s.cache == nil {
		return nil
	}
	val, ok := s.cache.Get(domain.Fingerprint(text))
	if !ok {
		return nil
	}
	vec, ok := val.([]float32)
	if !ok {
		return nil
	}
	return vec
}

func (s *EmbeddingService) store(text string, vec []float32) {
	if s.cache == nil {
		return
	}
	s.cache.Set(domain.Fingerprint(text), vec, 0)
}

// sleepCtx sleeps for d or until the context is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
