package driven

import "context"

// CompletionBackend is a single text-generation backend: one credential
// pool of one provider. The chain holds an ordered list of these and
// never inspects concrete types.
//
// Error contract: throttling wraps domain.ErrRateLimited (retried with
// backoff); any other error is a hard failure and advances the chain.
type CompletionBackend interface {
	// Complete produces text for the prompt, synchronously.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the backend in logs and attempt records,
	// e.g. "groq-pool-1" or "gemini".
	Name() string
}
