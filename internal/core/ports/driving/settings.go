package driving

import "github.com/custodia-labs/grimoire/internal/core/domain"

// SettingsService reads and updates application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.AppSettings, error)

	// Set validates and persists one setting by dotted key.
	Set(key, value string) error

	// Unset removes a stored setting so its default applies again.
	Unset(key string) error

	// Validate checks settings for consistency.
	Validate(s *domain.AppSettings) error
}
