package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

func TestRetrieve_ReturnsStoreResults(t *testing.T) {
	store := newMockVectorStore()
	store.searchResults = []domain.RetrievalResult{
		{ChunkID: "c1", Content: "the sum insured is five lakh", Score: 0.92},
		{ChunkID: "c2", Content: "room rent is capped", Score: 0.81},
	}
	svc := NewRetrievalService(newTestEmbedding(&mockEmbedder{dim: 4}, nil), store, 5)

	results, err := svc.Retrieve(context.Background(), "doc-1", "what is the sum insured?")

	require.NoError(t, err)
	assert.Equal(t, store.searchResults, results)
	assert.Equal(t, "doc-1", store.lastQueryDoc)
}

func TestRetrieve_EmbeddingFailureYieldsEmpty(t *testing.T) {
	store := newMockVectorStore()
	store.searchResults = []domain.RetrievalResult{{ChunkID: "c1"}}
	provider := &mockEmbedder{dim: 4, errs: []error{errors.New("provider down")}}
	svc := NewRetrievalService(newTestEmbedding(provider, nil), store, 5)

	results, err := svc.Retrieve(context.Background(), "", "any question")

	require.NoError(t, err, "retrieval is best-effort")
	assert.Empty(t, results)
	assert.Zero(t, store.searchCalls, "store must not be searched without a query vector")
}

func TestRetrieve_EmptyQuery(t *testing.T) {
	svc := NewRetrievalService(newTestEmbedding(&mockEmbedder{dim: 4}, nil), newMockVectorStore(), 5)

	results, err := svc.Retrieve(context.Background(), "", "   ")

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRetrieve_SearchErrorPropagates(t *testing.T) {
	store := newMockVectorStore()
	store.searchErr = errors.New("db locked")
	svc := NewRetrievalService(newTestEmbedding(&mockEmbedder{dim: 4}, nil), store, 5)

	_, err := svc.Retrieve(context.Background(), "", "question")

	assert.Error(t, err)
}

func TestRetrieve_NilDependencies(t *testing.T) {
	svc := NewRetrievalService(nil, nil, 0)

	results, err := svc.Retrieve(context.Background(), "", "question")

	require.NoError(t, err)
	assert.Empty(t, results)
}
