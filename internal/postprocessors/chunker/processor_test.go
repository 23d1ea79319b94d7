package chunker

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

func TestSplit_OverlappingWindows(t *testing.T) {
	chunks := Split("alpha beta alpha beta gamma", 2, 1)

	assert.Equal(t, []string{"alpha beta", "beta alpha", "alpha beta", "beta gamma"}, chunks)
}

func TestSplit_NoOverlap(t *testing.T) {
	chunks := Split("a b c d e", 2, 0)

	assert.Equal(t, []string{"a b", "c d", "e"}, chunks)
}

func TestSplit_FinalChunkMayBeShort(t *testing.T) {
	chunks := Split("one two three", 2, 0)

	require.Len(t, chunks, 2)
	assert.Equal(t, "three", chunks[1])
}

func TestSplit_SingleWindowCoversAll(t *testing.T) {
	chunks := Split("just a few words", 100, 10)

	assert.Equal(t, []string{"just a few words"}, chunks)
}

func TestSplit_EmptyText(t *testing.T) {
	assert.Nil(t, Split("", 10, 2))
	assert.Nil(t, Split("   \n\t  ", 10, 2))
}

func TestSplit_OverlapAtLeastSize_StillTerminates(t *testing.T) {
	// A naive stride of size-overlap would be zero or negative here.
	// Forward progress of one word per chunk is a hard invariant.
	words := make([]string, 20)
	for i := range words {
		words[i] = "w"
	}
	text := strings.Join(words, " ")

	for _, overlap := range []int{3, 5, 50} {
		chunks := Split(text, 3, overlap)
		assert.NotEmpty(t, chunks)
		assert.LessOrEqual(t, len(chunks), len(words))
	}
}

func TestSplit_ReconstructsTokenSequence(t *testing.T) {
	// With stride = size - overlap, the first `stride` words of each
	// chunk (and the whole final chunk) concatenate back to the input.
	text := "the quick brown fox jumps over the lazy dog again and again"
	size, overlap := 4, 1
	stride := size - overlap

	chunks := Split(text, size, overlap)
	require.NotEmpty(t, chunks)

	var rebuilt []string
	for i, chunk := range chunks {
		words := strings.Fields(chunk)
		if i == len(chunks)-1 {
			rebuilt = append(rebuilt, words...)
			break
		}
		rebuilt = append(rebuilt, words[:stride]...)
	}

	assert.Equal(t, strings.Fields(text), rebuilt)
}

func TestSplit_Deterministic(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta eta theta"

	first := Split(text, 3, 1)
	second := Split(text, 3, 1)

	assert.Equal(t, first, second)
}

func TestSplit_CapsChunkCount(t *testing.T) {
	// One-word stride over a long input would produce one chunk per
	// word; the safety valve stops early instead.
	words := make([]string, MaxChunks+500)
	for i := range words {
		words[i] = "w"
	}

	chunks := Split(strings.Join(words, " "), 2, 1)

	assert.Len(t, chunks, MaxChunks)
}

func TestProcessor_Process(t *testing.T) {
	p := New(WithSize(2), WithOverlap(0))
	doc := &domain.Document{ID: "doc-1", Content: "a b c d"}

	chunks, err := p.Process(context.Background(), doc, nil)

	require.NoError(t, err)
	require.Len(t, chunks, 2)
	for i, chunk := range chunks {
		assert.Equal(t, "doc-1", chunk.DocumentID)
		assert.Equal(t, i, chunk.Index)
		assert.NotEmpty(t, chunk.ID)
	}
	assert.Equal(t, "a b", chunks[0].Content)
	assert.Equal(t, "c d", chunks[1].Content)
}

func TestProcessor_EmptyContent(t *testing.T) {
	p := New()
	doc := &domain.Document{ID: "doc-1", Content: ""}

	chunks, err := p.Process(context.Background(), doc, nil)

	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestProcessor_Name(t *testing.T) {
	assert.Equal(t, "chunker", New().Name())
}
