package driving

import (
	"context"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

// IndexerService ingests document text into the retrieval store.
// This and AnswerService are the only contract the surrounding
// application layers need to know about.
type IndexerService interface {
	// IndexDocument filters, chunks, embeds and persists the text.
	// Embedding failure never aborts indexing; affected chunks are
	// stored text-only. Only structurally invalid input (empty text,
	// empty document ID) is a hard failure.
	IndexDocument(ctx context.Context, text, documentID string) ([]domain.IndexedChunk, error)

	// BackfillEmbeddings re-embeds chunks stored without a vector.
	// documentID narrows to one document when non-empty. Returns the
	// number of chunks that gained an embedding.
	BackfillEmbeddings(ctx context.Context, documentID string) (int, error)
}
