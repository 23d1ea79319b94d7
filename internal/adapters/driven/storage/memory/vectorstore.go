// Package memory provides an in-memory implementation of the
// VectorStore port. Useful for tests and for ephemeral sessions where
// nothing should touch disk.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore keeps chunk rows in a map guarded by a RWMutex.
type VectorStore struct {
	mu     sync.RWMutex
	chunks map[string]domain.Chunk
}

// NewVectorStore creates an empty in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{
		chunks: make(map[string]domain.Chunk),
	}
}

// InsertChunk stores a single chunk row, replacing any previous row
// with the same ID.
func (s *VectorStore) InsertChunk(_ context.Context, chunk domain.Chunk) error {
	if chunk.ID == "" {
		return fmt.Errorf("%w: chunk ID is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[chunk.ID] = cloneChunk(chunk)
	return nil
}

// Search returns up to limit chunks most similar to the query
// embedding, ordered by cosine similarity descending.
func (s *VectorStore) Search(_ context.Context, query []float32, limit int, documentID string) ([]domain.RetrievalResult, error) {
	if len(query) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []domain.RetrievalResult
	for _, chunk := range s.chunks {
		if !chunk.Embedded() {
			continue
		}
		if documentID != "" && chunk.DocumentID != documentID {
			continue
		}
		if len(chunk.Embedding) != len(query) {
			continue
		}
		results = append(results, domain.RetrievalResult{
			ChunkID: chunk.ID,
			Content: chunk.Content,
			Score:   cosineSimilarity(query, chunk.Embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// ChunksWithoutEmbedding returns stored chunks whose embedding is
// absent, ordered by document and index.
func (s *VectorStore) ChunksWithoutEmbedding(_ context.Context, documentID string) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Chunk
	for _, chunk := range s.chunks {
		if chunk.Embedded() {
			continue
		}
		if documentID != "" && chunk.DocumentID != documentID {
			continue
		}
		out = append(out, cloneChunk(chunk))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].DocumentID != out[j].DocumentID {
			return out[i].DocumentID < out[j].DocumentID
		}
		return out[i].Index < out[j].Index
	})

	return out, nil
}

// UpdateEmbedding attaches an embedding to a previously stored chunk.
func (s *VectorStore) UpdateEmbedding(_ context.Context, chunkID string, embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	chunk, ok := s.chunks[chunkID]
	if !ok {
		return fmt.Errorf("chunk %s: %w", chunkID, domain.ErrNotFound)
	}
	chunk.Embedding = append([]float32(nil), embedding...)
	s.chunks[chunkID] = chunk
	return nil
}

// DeleteDocument removes all chunks for a document.
func (s *VectorStore) DeleteDocument(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, chunk := range s.chunks {
		if chunk.DocumentID == documentID {
			delete(s.chunks, id)
		}
	}
	return nil
}

// Len returns the number of stored chunks.
func (s *VectorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Close releases resources.
func (s *VectorStore) Close() error {
	return nil
}

func cloneChunk(chunk domain.Chunk) domain.Chunk {
	chunk.Embedding = append([]float32(nil), chunk.Embedding...)
	return chunk
}

// cosineSimilarity computes the cosine similarity of two equal-length
// vectors. Zero vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
