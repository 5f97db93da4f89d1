package driven

import "github.com/custodia-labs/tashri/internal/core/domain"

// ConfigStore provides access to application configuration.
// Implementations handle persistence (e.g., TOML files) and defaults.
type ConfigStore interface {
	// Settings returns the loaded settings merged over the defaults.
	Settings() domain.Settings

	// Load reads configuration from storage.
	Load() error

	// Save persists settings to storage.
	Save(settings domain.Settings) error

	// Path returns the configuration file path.
	Path() string
}
