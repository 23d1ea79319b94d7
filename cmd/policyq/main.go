package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/policyq/policyq-cli/internal/adapters/driven/completion/gemini"
	"github.com/policyq/policyq-cli/internal/adapters/driven/completion/groq"
	"github.com/policyq/policyq-cli/internal/adapters/driven/config/file"
	embgemini "github.com/policyq/policyq-cli/internal/adapters/driven/embedding/gemini"
	embopenai "github.com/policyq/policyq-cli/internal/adapters/driven/embedding/openai"
	"github.com/policyq/policyq-cli/internal/adapters/driven/storage/sqlite"
	"github.com/policyq/policyq-cli/internal/adapters/driving/cli"
	"github.com/policyq/policyq-cli/internal/cache"
	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/core/ports/driven"
	"github.com/policyq/policyq-cli/internal/core/services"
	"github.com/policyq/policyq-cli/internal/logger"
	"github.com/policyq/policyq-cli/internal/postprocessors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env file is optional; credentials can also come from the
	// config file or the process environment.
	_ = godotenv.Load()

	settingsStore, err := file.NewSettingsStore("")
	if err != nil {
		return fmt.Errorf("init settings store: %w", err)
	}
	settings, err := settingsStore.Load()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("init vector store: %w", err)
	}
	defer store.Close()

	caches := cache.DefaultManager()

	provider := buildEmbeddingProvider(settings.Embedding)
	embedder := services.NewEmbeddingService(
		provider,
		caches.Get(cache.EmbeddingsCache),
		settings.Embedding,
	)

	pipeline := postprocessors.DefaultPipeline(settings.Chunking)
	indexer := services.NewIndexer(pipeline, embedder, store)

	backends := buildCompletionBackends(settings.Completion)
	chain := services.NewCompletionChain(backends, settings.Completion.MaxRetries)

	retrieval := services.NewRetrievalService(embedder, store, services.DefaultTopK)
	answerer := services.NewAnswerer(
		retrieval,
		chain,
		caches.Get(cache.CompletionsCache),
		caches.Get(cache.AnalysisCache),
	)

	cli.SetServices(indexer, answerer, caches)
	cli.SetChunkCounter(store)
	cli.SetHealthCheckers(buildHealthCheckers(backends, provider))

	return cli.Execute()
}

// embeddingChecker exposes the embedding provider to the check command
// under a stable name.
type embeddingChecker struct {
	provider driven.EmbeddingProvider
}

func (c embeddingChecker) Name() string { return "embedding" }

func (c embeddingChecker) Ping(ctx context.Context) error { return c.provider.Ping(ctx) }

// buildHealthCheckers collects every provider the check command can
// probe: each completion backend plus the embedding provider.
func buildHealthCheckers(backends []driven.CompletionBackend, provider driven.EmbeddingProvider) []cli.HealthChecker {
	var checkers []cli.HealthChecker
	for _, backend := range backends {
		if checker, ok := backend.(cli.HealthChecker); ok {
			checkers = append(checkers, checker)
		}
	}
	if provider != nil {
		checkers = append(checkers, embeddingChecker{provider: provider})
	}
	return checkers
}

// buildEmbeddingProvider constructs the configured embedding provider,
// or nil when no provider is configured. The embedding service treats
// a nil provider as "index text only, embed later".
func buildEmbeddingProvider(cfg domain.EmbeddingSettings) driven.EmbeddingProvider {
	if !cfg.IsConfigured() {
		logger.Warn("No embedding provider configured, chunks will be stored without vectors")
		return nil
	}

	switch cfg.Provider {
	case "gemini":
		provider, err := embgemini.New(embgemini.Config{APIKey: cfg.APIKey, Model: cfg.Model})
		if err != nil {
			logger.Warn("Gemini embedding provider unavailable: %v", err)
			return nil
		}
		return provider
	case "openai":
		provider, err := embopenai.New(embopenai.Config{APIKey: cfg.APIKey, Model: cfg.Model})
		if err != nil {
			logger.Warn("OpenAI embedding provider unavailable: %v", err)
			return nil
		}
		return provider
	default:
		logger.Warn("Unknown embedding provider %q, chunks will be stored without vectors", cfg.Provider)
		return nil
	}
}

// buildCompletionBackends assembles the backend chain in priority
// order: every Groq credential pool first, then Gemini. An empty chain
// is fine, answers then come from the rule-based responder.
func buildCompletionBackends(cfg domain.CompletionSettings) []driven.CompletionBackend {
	var backends []driven.CompletionBackend

	for i, key := range cfg.GroqAPIKeys {
		backend, err := groq.New(groq.Config{APIKey: key, Pool: i + 1, Model: cfg.GroqModel})
		if err != nil {
			logger.Warn("Skipping Groq pool %d: %v", i+1, err)
			continue
		}
		backends = append(backends, backend)
	}

	if cfg.GeminiAPIKey != "" {
		backend, err := gemini.New(gemini.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
		if err != nil {
			logger.Warn("Skipping Gemini backend: %v", err)
		} else {
			backends = append(backends, backend)
		}
	}

	if len(backends) == 0 {
		logger.Warn("No completion backends configured, answers will be rule-based only")
	}

	return backends
}
