package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/core/ports/driven"
	"github.com/policyq/policyq-cli/internal/core/ports/driving"
	"github.com/policyq/policyq-cli/internal/logger"
	"github.com/policyq/policyq-cli/internal/postprocessors"
)

// Ensure Indexer implements the interface.
var _ driving.IndexerService = (*Indexer)(nil)

// Indexer runs the ingest pipeline: filter and chunk the text, embed
// the surviving chunks, and persist every chunk to the vector store.
// Chunks whose embedding failed are stored text-only so they can be
// backfilled later; embedding trouble never loses indexed text.
type Indexer struct {
	pipeline *postprocessors.Pipeline
	embedder *EmbeddingService
	store    driven.VectorStore
}

// NewIndexer creates an indexing service.
func NewIndexer(pipeline *postprocessors.Pipeline, embedder *EmbeddingService, store driven.VectorStore) *Indexer {
	return &Indexer{
		pipeline: pipeline,
		embedder: embedder,
		store:    store,
	}
}

// IndexDocument filters, chunks, embeds and persists the text under
// documentID. Re-indexing a document replaces its previous chunks.
func (s *Indexer) IndexDocument(ctx context.Context, text, documentID string) ([]domain.IndexedChunk, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty document text", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(documentID) == "" {
		return nil, fmt.Errorf("%w: empty document ID", domain.ErrInvalidInput)
	}

	logger.Section("Indexing")
	logger.Debug("Document %s: %d bytes of text", documentID, len(text))

	now := time.Now()
	doc := &domain.Document{
		ID:        documentID,
		Content:   text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	chunks, err := s.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("process document: %w", err)
	}
	logger.Info("Document %s: %d chunks after filtering", documentID, len(chunks))

	if len(chunks) == 0 {
		return []domain.IndexedChunk{}, nil
	}

	contents := make([]string, len(chunks))
	for i, chunk := range chunks {
		contents[i] = chunk.Content
	}

	vectors, err := s.embedder.EmbedTexts(ctx, contents)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// No embeddings at all; index text-only.
		logger.Warn("Embedding unavailable, indexing text-only: %v", err)
		vectors = make([][]float32, len(chunks))
	}

	// Replace any previous index of this document.
	if err := s.store.DeleteDocument(ctx, documentID); err != nil {
		return nil, fmt.Errorf("clear previous chunks: %w", err)
	}

	indexed := make([]domain.IndexedChunk, 0, len(chunks))
	embedded := 0
	for i, chunk := range chunks {
		chunk.Embedding = vectors[i]
		if err := s.store.InsertChunk(ctx, chunk); err != nil {
			return nil, fmt.Errorf("insert chunk %d: %w", chunk.Index, err)
		}
		if chunk.Embedded() {
			embedded++
		}
		indexed = append(indexed, domain.IndexedChunk{
			Content:  chunk.Content,
			Embedded: chunk.Embedded(),
		})
	}

	logger.Info("Document %s: stored %d chunks, %d embedded", documentID, len(indexed), embedded)
	return indexed, nil
}

// BackfillEmbeddings embeds chunks that were stored without a vector.
// Returns the number of chunks that gained an embedding.
func (s *Indexer) BackfillEmbeddings(ctx context.Context, documentID string) (int, error) {
	logger.Section("Backfill")

	chunks, err := s.store.ChunksWithoutEmbedding(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("list unembedded chunks: %w", err)
	}
	if len(chunks) == 0 {
		logger.Debug("Nothing to backfill")
		return 0, nil
	}
	logger.Info("Backfilling %d chunks", len(chunks))

	contents := make([]string, len(chunks))
	for i, chunk := range chunks {
		contents[i] = chunk.Content
	}

	vectors, err := s.embedder.EmbedTexts(ctx, contents)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}

	updated := 0
	for i, chunk := range chunks {
		if vectors[i] == nil {
			continue
		}
		if err := s.store.UpdateEmbedding(ctx, chunk.ID, vectors[i]); err != nil {
			return updated, fmt.Errorf("update chunk %s: %w", chunk.ID, err)
		}
		updated++
	}

	logger.Info("Backfilled %d of %d chunks", updated, len(chunks))
	return updated, nil
}
