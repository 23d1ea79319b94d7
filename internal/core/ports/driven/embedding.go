package driven

import "context"

// EmbeddingProvider generates vector embeddings from text.
// This is the raw network-facing port; caching, batching, retry and
// dimension validation live in services.EmbeddingService on top of it.
//
// Implementations may include:
//   - Gemini (text-embedding-004)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingProvider interface {
	// EmbedBatch generates embeddings for multiple texts in one call.
	// Output order matches input order. Throttling is reported by
	// wrapping domain.ErrRateLimited.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size the provider reports.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the provider is reachable by making a lightweight
	// test request. Used at startup before committing to embedded mode.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
