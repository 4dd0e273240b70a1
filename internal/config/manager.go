package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Format represents the configuration file format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// fileManager reads and writes the config file in YAML or JSON, chosen by
// extension. YAML is the default for new files.
type fileManager struct {
	configPath string
	format     Format
	mu         sync.Mutex
}

// DefaultPath returns the conventional config location,
// ~/.config/quickmit/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "quickmit", "config.yaml"), nil
}

// NewManager creates a config manager for the given path.
func NewManager(configPath string) (Manager, error) {
	if configPath == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}

	var format Format
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".json":
		format = FormatJSON
	default:
		format = FormatYAML
	}

	return &fileManager{configPath: configPath, format: format}, nil
}

// Load loads the configuration file. A missing file is not an error: the
// defaults apply.
func (m *fileManager) Load() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch m.format {
	case FormatJSON:
		if err := json.Unmarshal(data, cfg); err != nil {
			// YAML fallback covers files renamed without conversion
			if yamlErr := yaml.Unmarshal(data, cfg); yamlErr == nil {
				return cfg, nil
			}
			return nil, fmt.Errorf("failed to parse config as JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if jsonErr := json.Unmarshal(data, cfg); jsonErr == nil {
				return cfg, nil
			}
			return nil, fmt.Errorf("failed to parse config as YAML: %w", err)
		}
	}

	return cfg, nil
}

// Save saves the configuration atomically: write to a temp file in the same
// directory, then rename over the target.
func (m *fileManager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	switch m.format {
	case FormatJSON:
		data, err = json.MarshalIndent(cfg, "", "  ")
	default:
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(m.configPath), ".config-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, m.configPath); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}
