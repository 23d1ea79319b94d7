package driven

import "github.com/policyq/policyq-cli/internal/core/domain"

// SettingsStore persists application settings between runs.
// Backed by a TOML file in the policyq config directory.
type SettingsStore interface {
	// Load reads the stored settings. A missing file yields zero-value
	// settings, not an error.
	Load() (domain.Settings, error)

	// Save writes the settings back to storage.
	Save(settings domain.Settings) error
}
