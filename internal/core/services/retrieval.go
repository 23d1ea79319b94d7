package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/core/ports/driven"
	"github.com/policyq/policyq-cli/internal/logger"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

// RetrievalService finds the chunks most relevant to a query by
// embedding the query and searching the vector store. Retrieval is
// best-effort: if the query cannot be embedded the result is simply
// empty and the answer pipeline continues without context.
type RetrievalService struct {
	embedder *EmbeddingService
	store    driven.VectorStore
	topK     int
}

// NewRetrievalService creates a retrieval service. topK <= 0 uses
// DefaultTopK.
func NewRetrievalService(embedder *EmbeddingService, store driven.VectorStore, topK int) *RetrievalService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &RetrievalService{
		embedder: embedder,
		store:    store,
		topK:     topK,
	}
}

// Retrieve returns up to topK chunks relevant to the query, ordered by
// similarity descending. documentID narrows to one document when
// non-empty. Embedding failure yields an empty result, not an error.
func (s *RetrievalService) Retrieve(ctx context.Context, documentID, query string) ([]domain.RetrievalResult, error) {
	logger.Section("Retrieval")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if s.embedder == nil || s.store == nil {
		logger.Debug("Retrieval unavailable, continuing without context")
		return nil, nil
	}

	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.Warn("Query embedding failed, continuing without context: %v", err)
		return nil, nil
	}

	results, err := s.store.Search(ctx, vector, s.topK, documentID)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	logger.Debug("Retrieved %d chunks", len(results))
	return results, nil
}
