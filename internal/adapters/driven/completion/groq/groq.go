// Package groq provides a completion backend using the Groq API,
// which follows the OpenAI chat completions wire format.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/core/ports/driven"
)

// Ensure Backend implements the interface.
var _ driven.CompletionBackend = (*Backend)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for one Groq backend.
type Config struct {
	// APIKey is the Groq API key (required).
	APIKey string

	// Pool is the 1-based index of this key in the credential pool.
	// It only affects the backend name reported in logs.
	Pool int

	// BaseURL is the API base URL (default: https://api.groq.com/openai/v1).
	BaseURL string

	// Model is the chat model to use (default: llama-3.3-70b-versatile).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Backend provides completions for a single Groq credential. A pool of
// keys becomes a slice of backends, one per key.
type Backend struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
	name    string
}

// chatCompletionRequest is the OpenAI-compatible /chat/completions request format.
type chatCompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []chatCompletionMsg `json:"messages"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
	Temperature float64             `json:"temperature,omitempty"`
}

// chatCompletionMsg is the chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the OpenAI-compatible /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// New creates a Groq completion backend.
func New(cfg Config) (*Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Pool <= 0 {
		cfg.Pool = 1
	}

	return &Backend{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		name:    fmt.Sprintf("groq-pool-%d", cfg.Pool),
	}, nil
}

// Name identifies this backend in logs and attempt records.
func (b *Backend) Name() string {
	return b.name
}

// Complete produces text for the prompt. Throttling responses wrap
// domain.ErrRateLimited so the chain retries instead of advancing.
func (b *Backend) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: b.model,
		Messages: []chatCompletionMsg{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		b.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || isRateLimitError(&chatResp) {
		return "", fmt.Errorf("groq throttled: %w", domain.ErrRateLimited)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("groq error: %s", chatResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("groq: no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// isRateLimitError recognises quota errors reported with a 200-family
// body instead of a 429 status.
func isRateLimitError(resp *chatCompletionResponse) bool {
	if resp.Error == nil {
		return false
	}
	typ := strings.ToLower(resp.Error.Type)
	msg := strings.ToLower(resp.Error.Message)
	return strings.Contains(typ, "rate_limit") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota")
}

// Ping validates the backend is reachable by checking the /models
// endpoint. This validates the API key without running inference.
func (b *Backend) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("groq: failed to create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("groq: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("groq: API returned status %d", resp.StatusCode)
	}
	return nil
}
