package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/policyq/policyq-cli/internal/core/domain"
	"github.com/policyq/policyq-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// Environment variable overrides. Credentials belong in the
// environment (or a .env file), not in the config file.
const (
	EnvGroqAPIKeys       = "POLICYQ_GROQ_API_KEYS"
	EnvGeminiAPIKey      = "POLICYQ_GEMINI_API_KEY"
	EnvEmbeddingProvider = "POLICYQ_EMBEDDING_PROVIDER"
	EnvEmbeddingAPIKey   = "POLICYQ_EMBEDDING_API_KEY"
)

// SettingsStore is a TOML file-backed implementation of
// driven.SettingsStore. Environment variables override the credential
// fields on every Load.
type SettingsStore struct {
	mu       sync.Mutex
	filePath string
}

// NewSettingsStore creates a TOML-based settings store.
// If configDir is empty, defaults to ~/.policyq/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".policyq")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads settings from the TOML file and applies environment
// overrides. A missing file yields zero-value settings, not an error.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings domain.Settings

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return domain.Settings{}, err
		}
		// No config file yet - start from defaults
	} else if err := toml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, err
	}

	applyEnvOverrides(&settings)
	return settings, nil
}

// Save persists the settings to the TOML file with restricted
// permissions, since it may carry API keys.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// applyEnvOverrides layers environment credentials over file settings.
func applyEnvOverrides(settings *domain.Settings) {
	if keys := os.Getenv(EnvGroqAPIKeys); keys != "" {
		var pool []string
		for _, key := range strings.Split(keys, ",") {
			if key = strings.TrimSpace(key); key != "" {
				pool = append(pool, key)
			}
		}
		if len(pool) > 0 {
			settings.Completion.GroqAPIKeys = pool
		}
	}
	if key := os.Getenv(EnvGeminiAPIKey); key != "" {
		settings.Completion.GeminiAPIKey = key
		// The Gemini key also serves the embedding provider unless one
		// is configured explicitly.
		if settings.Embedding.APIKey == "" {
			settings.Embedding.Provider = "gemini"
			settings.Embedding.APIKey = key
		}
	}
	if provider := os.Getenv(EnvEmbeddingProvider); provider != "" {
		settings.Embedding.Provider = provider
	}
	if key := os.Getenv(EnvEmbeddingAPIKey); key != "" {
		settings.Embedding.APIKey = key
	}
}
