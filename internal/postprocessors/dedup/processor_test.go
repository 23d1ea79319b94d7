package dedup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

func chunksOf(contents ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(contents))
	for i, c := range contents {
		chunks[i] = domain.Chunk{ID: c, Index: i, Content: c}
	}
	return chunks
}

func TestProcess_FirstOccurrenceWins(t *testing.T) {
	p := New()
	in := chunksOf("alpha", "beta", "alpha", "gamma", "beta")

	out, err := p.Process(context.Background(), nil, in)

	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "alpha", out[0].Content)
	assert.Equal(t, "beta", out[1].Content)
	assert.Equal(t, "gamma", out[2].Content)
}

func TestProcess_NormalizedMatching(t *testing.T) {
	p := New()
	in := chunksOf("Sum Insured  is  fixed", "sum insured is fixed")

	out, err := p.Process(context.Background(), nil, in)

	require.NoError(t, err)
	require.Len(t, out, 1, "case and whitespace differences are the same chunk")
	assert.Equal(t, "Sum Insured  is  fixed", out[0].Content)
}

func TestProcess_RenumbersIndexes(t *testing.T) {
	p := New()
	in := chunksOf("a", "b", "a", "c")

	out, err := p.Process(context.Background(), nil, in)

	require.NoError(t, err)
	for i, chunk := range out {
		assert.Equal(t, i, chunk.Index)
	}
}

func TestProcess_Idempotent(t *testing.T) {
	p := New()
	in := chunksOf("x", "y", "x", "z", "y", "x")

	once, err := p.Process(context.Background(), nil, in)
	require.NoError(t, err)

	twice, err := p.Process(context.Background(), nil, once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestProcess_NoDuplicates(t *testing.T) {
	p := New()
	in := chunksOf("one", "two", "three")

	out, err := p.Process(context.Background(), nil, in)

	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestProcess_Empty(t *testing.T) {
	p := New()

	out, err := p.Process(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "dedup", New().Name())
}
