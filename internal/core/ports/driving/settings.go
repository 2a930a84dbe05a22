package driving

import "github.com/custodia-labs/kwscan/internal/core/domain"

// SettingsService manages scan settings stored in configuration.
type SettingsService interface {
	// Get returns the configured settings, with defaults for unset keys.
	Get() (domain.ScanSettings, error)

	// Save validates and persists settings.
	Save(settings domain.ScanSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.ScanSettings
}
