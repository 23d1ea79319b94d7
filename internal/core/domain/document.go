package domain

import "time"

// Document represents an uploaded policy document after text extraction.
// The pipeline treats the extraction layer as an upstream text source;
// Content is whatever that layer produced.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title (file name, policy name).
	Title string

	// Content is the full extracted text before filtering and chunking.
	Content string

	// CreatedAt is when the document was first indexed.
	CreatedAt time.Time

	// UpdatedAt is when the document was last re-indexed.
	UpdatedAt time.Time
}

// Chunk is the unit of embedding and retrieval: a bounded contiguous
// slice of a document's text. Chunks are immutable once persisted and
// are destroyed only by deleting their document.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Index is the zero-based ordinal position within the document.
	// Unique per document.
	Index int

	// Content is the text content of this chunk.
	Content string

	// Embedding is the vector representation for similarity search.
	// Nil means the chunk is stored text-only and can be backfilled later.
	Embedding []float32
}

// Embedded reports whether the chunk carries an embedding vector.
func (c Chunk) Embedded() bool {
	return len(c.Embedding) > 0
}

// IndexedChunk pairs a persisted chunk with its embedding outcome.
// IndexDocument returns one per chunk so callers can see which chunks
// degraded to text-only storage.
type IndexedChunk struct {
	Content  string
	Embedded bool
}
