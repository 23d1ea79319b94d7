package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/policyq/policyq-cli/internal/cache"
	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/core/ports/driving"
	"github.com/policyq/policyq-cli/internal/logger"
)

// Ensure Answerer implements the interface.
var _ driving.AnswerService = (*Answerer)(nil)

// Prompt sizing.
const (
	// citationExcerptLen is the citation excerpt length in characters.
	citationExcerptLen = 200

	// analysisInputLimit caps how much policy text is sent for
	// structured extraction.
	analysisInputLimit = 12000

	// compareInputLimit caps each policy's text in a comparison prompt.
	compareInputLimit = 6000
)

// Answerer implements question answering, structured policy analysis
// and policy comparison on top of retrieval and the completion chain.
// Completions and analyses are cached by content fingerprint.
type Answerer struct {
	retrieval   *RetrievalService
	chain       *CompletionChain
	completions *cache.Cache
	analyses    *cache.Cache
}

// NewAnswerer creates an answer service. Both caches are optional;
// pass nil to disable caching for that result kind.
func NewAnswerer(retrieval *RetrievalService, chain *CompletionChain, completions, analyses *cache.Cache) *Answerer {
	return &Answerer{
		retrieval:   retrieval,
		chain:       chain,
		completions: completions,
		analyses:    analyses,
	}
}

// AnswerQuestion retrieves context for the question, runs the
// completion chain over it and attaches citations. The worst case is a
// rule-based answer; the user always gets text back.
func (s *Answerer) AnswerQuestion(ctx context.Context, documentID, question string) (domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	results, err := s.retrieval.Retrieve(ctx, documentID, question)
	if err != nil {
		return domain.Answer{}, err
	}

	prompt := buildAnswerPrompt(question, results)
	citations := buildCitations(results)

	cacheKey := domain.Fingerprint(documentID + "\x00" + prompt)
	if s.completions != nil {
		if val, ok := s.completions.Get(cacheKey); ok {
			if cached, ok := val.(domain.Answer); ok {
				logger.Debug("Answer served from cache")
				return cached, nil
			}
		}
	}

	response, backend, _, err := s.chain.Complete(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return domain.Answer{}, ctx.Err()
		}
		if !errors.Is(err, domain.ErrCompletionExhausted) {
			return domain.Answer{}, fmt.Errorf("complete: %w", err)
		}
		// Never cached: the next ask should try the real backends again.
		logger.Info("Answering via rule-based responder")
		return domain.Answer{
			Answer:    FallbackAnswer(question),
			Citations: citations,
			Backend:   FallbackName,
		}, nil
	}

	answer := domain.Answer{
		Answer:    response,
		Citations: citations,
		Backend:   backend,
	}
	if s.completions != nil {
		s.completions.Set(cacheKey, answer, 0)
	}
	return answer, nil
}

// AnalyzePolicy performs structured extraction over raw policy text.
func (s *Answerer) AnalyzePolicy(ctx context.Context, text string) (domain.PolicyAnalysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.PolicyAnalysis{}, fmt.Errorf("%w: empty policy text", domain.ErrInvalidInput)
	}

	cacheKey := domain.Fingerprint(text)
	if s.analyses != nil {
		if val, ok := s.analyses.Get(cacheKey); ok {
			if cached, ok := val.(domain.PolicyAnalysis); ok {
				logger.Debug("Analysis served from cache")
				return cached, nil
			}
		}
	}

	prompt := buildAnalysisPrompt(truncate(text, analysisInputLimit))

	response, backend, _, err := s.chain.Complete(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return domain.PolicyAnalysis{}, ctx.Err()
		}
		if !errors.Is(err, domain.ErrCompletionExhausted) {
			return domain.PolicyAnalysis{}, fmt.Errorf("complete: %w", err)
		}
		logger.Info("Analysis unavailable offline, returning defaults")
		return domain.DefaultPolicyAnalysis(), nil
	}
	logger.Debug("Analysis produced by %s", backend)

	analysis := ParseAnalysis(response)
	if s.analyses != nil {
		s.analyses.Set(cacheKey, analysis, 0)
	}
	return analysis, nil
}

// ComparePolicies produces a markdown comparison of two policies.
func (s *Answerer) ComparePolicies(ctx context.Context, textA, textB string) (string, error) {
	if strings.TrimSpace(textA) == "" || strings.TrimSpace(textB) == "" {
		return "", fmt.Errorf("%w: both policy texts are required", domain.ErrInvalidInput)
	}

	prompt := buildComparePrompt(truncate(textA, compareInputLimit), truncate(textB, compareInputLimit))

	cacheKey := domain.Fingerprint(prompt)
	if s.completions != nil {
		if val, ok := s.completions.Get(cacheKey); ok {
			if cached, ok := val.(string); ok {
				return cached, nil
			}
		}
	}

	response, _, _, err := s.chain.Complete(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !errors.Is(err, domain.ErrCompletionExhausted) {
			return "", fmt.Errorf("complete: %w", err)
		}
		return "Comparison is unavailable offline. Review both policy " +
			"documents side by side, paying attention to the sum insured, " +
			"premium, exclusions and claim process sections.", nil
	}

	if s.completions != nil {
		s.completions.Set(cacheKey, response, 0)
	}
	return response, nil
}

func buildAnswerPrompt(question string, results []domain.RetrievalResult) string {
	var b strings.Builder

	b.WriteString("You are an insurance policy assistant. Answer the question ")
	b.WriteString("using only the policy excerpts below. If the excerpts do not ")
	b.WriteString("contain the answer, say so plainly.\n\n")

	if len(results) > 0 {
		b.WriteString("Policy excerpts:\n")
		for i, r := range results {
			fmt.Fprintf(&b, "[%d] %s\n\n", i+1, r.Content)
		}
	} else {
		b.WriteString("No policy excerpts were found for this question. Answer ")
		b.WriteString("from general insurance knowledge and say the policy text ")
		b.WriteString("was not available.\n\n")
	}

	fmt.Fprintf(&b, "Question: %s\n", question)
	return b.String()
}

func buildAnalysisPrompt(text string) string {
	return `Analyze the insurance policy document below and respond with a single JSON object using exactly these keys:
{
  "policy_type": "...",
  "provider": "...",
  "policy_number": "...",
  "coverage_amount": "...",
  "premium": "...",
  "deductible": "...",
  "expiration_date": "...",
  "coverage": "...",
  "exclusions": "...",
  "claim_process": "...",
  "key_features": ["..."],
  "claim_readiness_score": 0
}
Use "Not specified" for string fields you cannot determine. The score is an integer from 0 to 100. Respond with JSON only, no prose.

Policy document:
` + text
}

func buildComparePrompt(textA, textB string) string {
	return `Compare the two insurance policies below. Respond in markdown with sections for coverage, premium, exclusions and claim process, ending with a short recommendation of which policy suits which kind of policyholder.

Policy A:
` + textA + `

Policy B:
` + textB
}

func buildCitations(results []domain.RetrievalResult) []domain.Citation {
	if len(results) == 0 {
		return nil
	}
	citations := make([]domain.Citation, len(results))
	for i, r := range results {
		citations[i] = domain.Citation{
			ChunkID: r.ChunkID,
			Excerpt: truncate(r.Content, citationExcerptLen),
			Score:   r.Score,
		}
	}
	return citations
}

// truncate cuts s to at most n bytes, backing up so the cut never
// splits a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
