// Package chunker provides a word-window text chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of words per chunk.
const DefaultChunkSize = 500

// DefaultOverlap is the default number of overlapping words.
const DefaultOverlap = 50

// MaxChunks caps the number of chunks produced from a single document.
// A safety valve against degenerate inputs; once hit, chunking stops
// early and returns what it has.
const MaxChunks = 10000

// Processor splits document content into overlapping word windows.
// It implements the PostProcessor interface.
type Processor struct {
	size    int
	overlap int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithSize sets the chunk size in words.
func WithSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.size = size
		}
	}
}

// WithOverlap sets the overlap between chunks in words.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		size:    DefaultChunkSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from
// document content.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	texts := Split(doc.Content, p.size, p.overlap)

	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Index:      i,
			Content:    text,
		}
	}

	return chunks, nil
}

// Split divides text into overlapping word windows of size words each.
// Consecutive windows start max(1, size-overlap) words apart: when
// overlap >= size a naive stride would be zero or negative and loop
// forever, so forward progress of at least one word per chunk is a
// hard invariant. The final chunk may be shorter than size.
//
// Pure and deterministic; no I/O.
func Split(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	stride := size - overlap
	if stride < 1 {
		stride = 1
	}

	var chunks []string
	for start := 0; start < len(words); start += stride {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))

		// The last window already reached the end of the text; further
		// windows would only re-emit its tail.
		if end == len(words) {
			break
		}
		if len(chunks) >= MaxChunks {
			break
		}
	}

	return chunks
}
