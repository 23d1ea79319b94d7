package domain

// RetrievalResult is a single chunk returned by similarity search,
// ordered best-first by Score. Ephemeral, produced per query.
type RetrievalResult struct {
	// ChunkID identifies the matched chunk.
	ChunkID string

	// Content is the chunk text.
	Content string

	// Score is the similarity score (higher is more similar).
	Score float64
}

// Citation points a reader back at the chunk an answer drew from.
type Citation struct {
	// ChunkID identifies the cited chunk.
	ChunkID string

	// Excerpt is a short slice of the chunk content.
	Excerpt string

	// Score is the retrieval similarity score for the chunk.
	Score float64
}

// Answer is the result of a question-answering request. Answer is
// always non-empty: when every backend fails the text comes from the
// rule-based responder instead.
type Answer struct {
	// Answer is the generated answer text.
	Answer string

	// Citations lists the retrieved chunks the answer was grounded on.
	// Empty when retrieval found nothing and the backend answered from
	// general knowledge.
	Citations []Citation

	// Backend names the backend that produced the answer, including
	// "rule-based" for the offline fallback.
	Backend string
}
