package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/kwscan/internal/core/domain"
	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
	"github.com/custodia-labs/kwscan/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// SettingsService reads and writes scan settings through a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the configured settings.
// Unset keys take their defaults; set but invalid values are an error.
func (s *SettingsService) Get() (domain.ScanSettings, error) {
	settings := domain.DefaultScanSettings()

	if _, ok := s.configStore.Get(domain.ConfigKeyWorkers); ok {
		settings.Workers = s.configStore.GetInt(domain.ConfigKeyWorkers)
	}

	timeout, err := s.getDuration(domain.ConfigKeyFileTimeout, settings.FileTimeout)
	if err != nil {
		return settings, err
	}
	settings.FileTimeout = timeout

	if mode := s.configStore.GetString(domain.ConfigKeyMatchMode); mode != "" {
		settings.MatchMode = domain.MatchMode(mode)
	}
	if format := s.configStore.GetString(domain.ConfigKeyTableFormat); format != "" {
		settings.TableFormat = domain.TableFormat(format)
	}
	settings.LogFile = s.configStore.GetString(domain.ConfigKeyLogFile)

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("config %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save validates settings and persists them to the underlying store.
func (s *SettingsService) Save(settings domain.ScanSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(domain.ConfigKeyWorkers, settings.Workers); err != nil {
		return fmt.Errorf("save workers: %w", err)
	}
	if err := s.configStore.Set(domain.ConfigKeyFileTimeout, settings.FileTimeout.String()); err != nil {
		return fmt.Errorf("save file timeout: %w", err)
	}
	if err := s.configStore.Set(domain.ConfigKeyMatchMode, settings.MatchMode.String()); err != nil {
		return fmt.Errorf("save match mode: %w", err)
	}
	if err := s.configStore.Set(domain.ConfigKeyTableFormat, string(settings.TableFormat)); err != nil {
		return fmt.Errorf("save output format: %w", err)
	}
	if settings.LogFile != "" {
		if err := s.configStore.Set(domain.ConfigKeyLogFile, settings.LogFile); err != nil {
			return fmt.Errorf("save log file: %w", err)
		}
	}
	if err := s.configStore.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.ScanSettings {
	return domain.DefaultScanSettings()
}

// getDuration accepts a duration string ("90s") or a whole number of seconds.
func (s *SettingsService) getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal, nil
	}

	switch v := val.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
		}
		return d, nil
	case int, int64, float64:
		return time.Duration(s.configStore.GetInt(key)) * time.Second, nil
	case time.Duration:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: %s: unsupported value %v", domain.ErrInvalidInput, key, val)
	}
}
