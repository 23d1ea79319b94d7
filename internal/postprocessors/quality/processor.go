// Package quality gates chunks on content quality so low-value text is
// never sent for embedding.
package quality

import (
	"context"
	"strings"
	"unicode"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

// Default thresholds for the embeddability checks.
const (
	// MinLength is the minimum chunk length in characters.
	MinLength = 50

	// MaxLength is the maximum chunk length, chosen to respect
	// embedding provider input limits.
	MaxLength = 8000

	// MinAlnumRatio is the minimum share of alphanumeric-or-space
	// characters.
	MinAlnumRatio = 0.7

	// MinUniqueWordRatio is the minimum share of distinct words.
	MinUniqueWordRatio = 0.3
)

// Embeddable reports whether a chunk is worth embedding. The four
// checks are independent; any failing check disqualifies the chunk.
func Embeddable(chunk string) bool {
	if len(strings.TrimSpace(chunk)) < MinLength {
		return false
	}
	if len(chunk) > MaxLength {
		return false
	}

	var alnum int
	for _, r := range chunk {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			alnum++
		}
	}
	total := len([]rune(chunk))
	if float64(alnum)/float64(total) < MinAlnumRatio {
		return false
	}

	words := strings.Fields(strings.ToLower(chunk))
	if len(words) > 0 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[w] = struct{}{}
		}
		if float64(len(unique)) < float64(len(words))*MinUniqueWordRatio {
			return false
		}
	}

	return true
}

// Processor drops chunks that fail the embeddability gate. Runs after
// dedup; surviving chunks are re-numbered to keep Index dense.
type Processor struct{}

// New creates a quality gate processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "quality"
}

// Process filters the chunk list down to embeddable chunks.
func (p *Processor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	kept := make([]domain.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if !Embeddable(chunk.Content) {
			continue
		}
		chunk.Index = len(kept)
		kept = append(kept, chunk)
	}
	return kept, nil
}
