// Package memory provides an in-memory configuration layer.
package memory

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/kwscan/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore holds values in memory, optionally layered over a base store.
// Reads prefer the in-memory values; Set never touches the base.
// Command-line flags are applied this way so they override the config
// file without being written back to it.
type ConfigStore struct {
	mu     sync.RWMutex
	base   driven.ConfigStore
	values map[string]any
}

// NewConfigStore creates a standalone in-memory config store.
func NewConfigStore() *ConfigStore {
	return NewOverlay(nil)
}

// NewOverlay creates an in-memory layer over base. base may be nil.
func NewOverlay(base driven.ConfigStore) *ConfigStore {
	return &ConfigStore{
		base:   base,
		values: make(map[string]any),
	}
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	val, ok := s.values[key]
	s.mu.RUnlock()
	if ok {
		return val, true
	}
	if s.base != nil {
		return s.base.Get(key)
	}
	return nil, false
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}
	if b, ok := val.(bool); ok {
		return b
	}
	return false
}

// GetStringSlice retrieves a string slice configuration value.
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, ok := s.Get(key)
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

// Set stores a value in the in-memory layer.
func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Save writes the in-memory values through to the base store.
// Without a base it is a no-op.
func (s *ConfigStore) Save() error {
	if s.base == nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for key, val := range s.values {
		if err := s.base.Set(key, val); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return s.base.Save()
}

// Load reloads the base store. The in-memory layer is kept.
func (s *ConfigStore) Load() error {
	if s.base == nil {
		return nil
	}
	return s.base.Load()
}

// Path returns the base store path, or ":memory:".
func (s *ConfigStore) Path() string {
	if s.base != nil {
		return s.base.Path()
	}
	return ":memory:"
}
