// Package boilerplate strips recurring non-content text from policy
// documents before chunking, so duplicated headers and disclaimers
// never incur embedding cost.
package boilerplate

import (
	"context"
	"regexp"
	"strings"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

// patterns are applied in order. The structural patterns must fire
// before the whitespace-collapsing ones at the end, which assume the
// removed text has already been replaced by spaces.
var patterns = []*regexp.Regexp{
	// Page numbers.
	regexp.MustCompile(`(?im)\n\s*Page\s+\d+\s+of\s+\d+\s*\n`),
	regexp.MustCompile(`(?m)\n\s*\d+\s*\n`),

	// Headers and footers with company names.
	regexp.MustCompile(`(?im)\n\s*(?:Policy\s+Document|Insurance\s+Policy|Terms\s+and\s+Conditions)\s*\n`),
	regexp.MustCompile(`(?im)\n\s*©.*(?:Insurance|Company|Ltd|Inc).*\n`),

	// Legal disclaimers (common phrases).
	regexp.MustCompile(`(?is)This\s+document\s+is\s+confidential.*?(?:\.|$)`),
	regexp.MustCompile(`(?is)Please\s+read\s+this\s+policy\s+carefully.*?(?:\.|$)`),
	regexp.MustCompile(`(?is)This\s+policy\s+is\s+issued\s+subject\s+to.*?(?:\.|$)`),

	// Repetitive regulatory text.
	regexp.MustCompile(`(?is)IRDAI.*?Registration.*?(?:\.|$)`),
	regexp.MustCompile(`(?is)Insurance\s+is\s+subject\s+to.*?(?:\.|$)`),

	// Runs of whitespace.
	regexp.MustCompile(`\s{3,}`),
	regexp.MustCompile(`\n{3,}`),
}

// Filter removes boilerplate from text and collapses the remainder to
// single spaces. Empty input passes through unchanged.
func Filter(text string) string {
	if text == "" {
		return text
	}

	filtered := text
	for _, p := range patterns {
		filtered = p.ReplaceAllString(filtered, " ")
	}

	return strings.Join(strings.Fields(filtered), " ")
}

// Processor applies Filter to the document content. It runs first in
// the pipeline, before the chunker, and passes chunks through untouched.
type Processor struct{}

// New creates a boilerplate filter processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "boilerplate"
}

// Process rewrites doc.Content with boilerplate removed.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	doc.Content = Filter(doc.Content)
	return chunks, nil
}
