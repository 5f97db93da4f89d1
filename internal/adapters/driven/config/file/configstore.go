package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/tashri/internal/core/domain"
	"github.com/custodia-labs/tashri/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigFile is the configuration file name inside the config directory.
const ConfigFile = "config.toml"

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
// Configuration is stored in a TOML file within the tashri config directory.
// Keys missing from the file keep their default values.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	settings domain.Settings
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.tashri/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".tashri")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return NewConfigStoreAt(filepath.Join(configDir, ConfigFile))
}

// NewConfigStoreAt creates a config store backed by an explicit file path.
func NewConfigStoreAt(path string) (*ConfigStore, error) {
	s := &ConfigStore{
		filePath: path,
		settings: domain.DefaultSettings(),
	}

	// Load existing data if file exists
	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Settings returns the loaded settings.
func (s *ConfigStore) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Save validates settings and persists them to disk.
func (s *ConfigStore) Save(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write with restricted permissions
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	s.settings = settings
	return nil
}

// Load reads configuration from the TOML file over the defaults.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, use defaults
			s.settings = settings
			return nil
		}
		return err
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parsing %s: %w", s.filePath, err)
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%s: %w", s.filePath, err)
	}

	s.settings = settings
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Values returns the current settings as sorted dot-notation keys, e.g.
// "fetch.min_delay_ms".
func (s *ConfigStore) Values() ([]KeyValue, error) {
	data, err := toml.Marshal(s.Settings())
	if err != nil {
		return nil, err
	}
	var nested map[string]any
	if err := toml.Unmarshal(data, &nested); err != nil {
		return nil, err
	}

	flat := flattenMap(nested, "")
	out := make([]KeyValue, 0, len(flat))
	for k, v := range flat {
		out = append(out, KeyValue{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// KeyValue is one flattened configuration entry.
type KeyValue struct {
	Key   string
	Value any
}

// FlattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			// Recursively flatten nested maps
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}
