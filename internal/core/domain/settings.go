package domain

// DefaultExpectedDim is the pipeline-wide embedding dimension when the
// config does not override it. Matches the Gemini text-embedding-004
// output size.
const DefaultExpectedDim = 768

// EmbeddingSettings configures the embedding provider.
type EmbeddingSettings struct {
	// Provider is "gemini" or "openai".
	Provider string `toml:"provider"`

	// APIKey is the provider API key.
	APIKey string `toml:"api_key"`

	// Model overrides the provider's default embedding model.
	Model string `toml:"model"`

	// ExpectedDim is the pipeline-wide embedding dimension. Vectors of
	// any other length are discarded, never truncated or padded.
	ExpectedDim int `toml:"expected_dim"`

	// BatchSize is the number of texts per provider call.
	BatchSize int `toml:"batch_size"`
}

// IsConfigured returns true if the settings carry usable credentials.
func (s *EmbeddingSettings) IsConfigured() bool {
	return s != nil && s.Provider != "" && s.APIKey != ""
}

// Dim returns the configured dimension, defaulting to DefaultExpectedDim.
func (s *EmbeddingSettings) Dim() int {
	if s == nil || s.ExpectedDim <= 0 {
		return DefaultExpectedDim
	}
	return s.ExpectedDim
}

// CompletionSettings configures the completion backend chain.
type CompletionSettings struct {
	// GroqAPIKeys is the ordered pool of Groq credentials. Each key
	// becomes its own hop in the chain so quota exhaustion on one pool
	// falls through to the next.
	GroqAPIKeys []string `toml:"groq_api_keys"`

	// GroqModel overrides the default Groq model.
	GroqModel string `toml:"groq_model"`

	// GeminiAPIKey enables the Gemini fallback backend.
	GeminiAPIKey string `toml:"gemini_api_key"`

	// GeminiModel overrides the default Gemini model.
	GeminiModel string `toml:"gemini_model"`

	// MaxRetries bounds per-backend retries on throttling.
	MaxRetries int `toml:"max_retries"`
}

// IsConfigured returns true if at least one network backend has
// credentials. Even when false the chain still answers via the
// rule-based responder.
func (s *CompletionSettings) IsConfigured() bool {
	return s != nil && (len(s.GroqAPIKeys) > 0 || s.GeminiAPIKey != "")
}

// ChunkingSettings configures the chunker and filters.
type ChunkingSettings struct {
	// Size is the number of words per chunk.
	Size int `toml:"size"`

	// Overlap is the number of words shared by consecutive chunks.
	Overlap int `toml:"overlap"`
}

// Settings is the full application configuration, loaded once at
// process start and passed explicitly to constructors.
type Settings struct {
	Embedding  EmbeddingSettings  `toml:"embedding"`
	Completion CompletionSettings `toml:"completion"`
	Chunking   ChunkingSettings   `toml:"chunking"`

	// DataDir is where the SQLite store lives. Empty means ~/.policyq/data.
	DataDir string `toml:"data_dir"`
}
