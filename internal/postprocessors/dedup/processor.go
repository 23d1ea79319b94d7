// Package dedup drops exact-duplicate chunks before they incur
// embedding cost.
package dedup

import (
	"context"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

// Processor removes chunks whose normalized content was already seen.
// Exact-match only: semantic dedup would require embeddings, defeating
// the point of filtering before the embedding step. First occurrence
// wins; surviving chunks are re-numbered to keep Index dense.
type Processor struct{}

// New creates a deduplication processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "dedup"
}

// Process filters the chunk list, keeping the first chunk for each
// content fingerprint. Idempotent.
func (p *Processor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	if len(chunks) == 0 {
		return chunks, nil
	}

	seen := make(map[string]struct{}, len(chunks))
	unique := make([]domain.Chunk, 0, len(chunks))

	for _, chunk := range chunks {
		fp := domain.Fingerprint(chunk.Content)
		if _, ok := seen[fp]; ok {
			continue
		}
		seen[fp] = struct{}{}
		chunk.Index = len(unique)
		unique = append(unique, chunk)
	}

	return unique, nil
}
