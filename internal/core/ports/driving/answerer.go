package driving

import (
	"context"

	"github.com/policyq/policyq-cli/internal/core/domain"
)

// AnswerService answers natural-language questions over indexed
// documents. The question-answering path never returns a transport
// error to the end user; the worst case is a rule-based answer.
type AnswerService interface {
	// AnswerQuestion retrieves context for the question and runs the
	// completion chain. documentID narrows retrieval to one document
	// when non-empty.
	AnswerQuestion(ctx context.Context, documentID, question string) (domain.Answer, error)

	// AnalyzePolicy performs structured extraction over raw policy
	// text. Parse failures degrade to the typed default record.
	AnalyzePolicy(ctx context.Context, text string) (domain.PolicyAnalysis, error)

	// ComparePolicies produces a markdown comparison of two policies.
	ComparePolicies(ctx context.Context, textA, textB string) (string, error)
}
