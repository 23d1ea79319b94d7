package driven

import (
	"context"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

// PostProcessor transforms a document's content or its chunks before
// embedding. Processors run in a fixed order inside a pipeline: the
// boilerplate filter rewrites doc.Content, the chunker creates chunks,
// and the dedup and quality stages drop chunks. Order matters; the
// whitespace-collapsing filter assumes it runs before chunking, and
// dedup must run before the quality gate.
type PostProcessor interface {
	// Process receives the document and the chunks produced so far and
	// returns the updated chunk list. Text-level processors may mutate
	// doc.Content and pass chunks through unchanged.
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)

	// Name returns the processor name used in registries and errors.
	Name() string
}
