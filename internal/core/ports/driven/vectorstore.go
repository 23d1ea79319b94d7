package driven

import (
	"context"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

// VectorStore persists chunk rows and answers similarity searches over
// them. One row per chunk; Index is zero-based and unique per document.
// Backed by SQLite.
type VectorStore interface {
	// InsertChunk stores a single chunk row. A nil embedding is stored
	// as NULL so the chunk can be backfilled later.
	InsertChunk(ctx context.Context, chunk domain.Chunk) error

	// Search returns up to limit chunks most similar to the query
	// embedding, ordered by similarity descending. documentID narrows
	// the search to one document when non-empty.
	Search(ctx context.Context, query []float32, limit int, documentID string) ([]domain.RetrievalResult, error)

	// ChunksWithoutEmbedding returns stored chunks whose embedding is
	// NULL, for embedding backfill. documentID narrows to one document
	// when non-empty.
	ChunksWithoutEmbedding(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// UpdateEmbedding attaches an embedding to a previously stored chunk.
	UpdateEmbedding(ctx context.Context, chunkID string, embedding []float32) error

	// DeleteDocument removes all chunks for a document.
	DeleteDocument(ctx context.Context, documentID string) error

	// Close releases resources.
	Close() error
}
