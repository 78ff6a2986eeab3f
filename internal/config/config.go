package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ProjectFileName is the per-project config file looked up in the project root
const ProjectFileName = ".gitreplace.toml"

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the application configuration
type Config struct {
	Version    int                `toml:"version"`
	Search     SearchSettings     `toml:"search"`
	Panel      PanelSettings      `toml:"panel"`
	References ReferencesSettings `toml:"references"`
	Log        LogSettings        `toml:"log"`
}

// SearchSettings configures discovery
type SearchSettings struct {
	MaxResults int    `toml:"max_results"`
	Regex      bool   `toml:"regex"`
	GitBinary  string `toml:"git_binary"`
}

// PanelSettings configures the search and replace panel
type PanelSettings struct {
	SplitRatio float64 `toml:"split_ratio"` // share kept by the source split
}

// ReferencesSettings configures the references panel
type ReferencesSettings struct {
	MaxResults int     `toml:"max_results"`
	SplitRatio float64 `toml:"split_ratio"`
}

// LogSettings configures the diagnostic log
type LogSettings struct {
	File string `toml:"file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config file
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "gitreplace", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service backed by a specific file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Load loads the user configuration, or the defaults if there is none
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the user config file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := Validate(config); err != nil {
		return err
	}

	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks ranges of the numeric settings
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if cfg.Search.MaxResults <= 0 {
		return fmt.Errorf("%w: search.max_results must be positive", ErrInvalidConfig)
	}
	if cfg.References.MaxResults <= 0 {
		return fmt.Errorf("%w: references.max_results must be positive", ErrInvalidConfig)
	}
	if cfg.Panel.SplitRatio <= 0 || cfg.Panel.SplitRatio >= 1 {
		return fmt.Errorf("%w: panel.split_ratio must be between 0 and 1", ErrInvalidConfig)
	}
	if cfg.References.SplitRatio <= 0 || cfg.References.SplitRatio >= 1 {
		return fmt.Errorf("%w: references.split_ratio must be between 0 and 1", ErrInvalidConfig)
	}
	if cfg.Search.GitBinary == "" {
		return fmt.Errorf("%w: search.git_binary is empty", ErrInvalidConfig)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Search: SearchSettings{
			MaxResults: 200,
			GitBinary:  "git",
		},
		Panel: PanelSettings{
			SplitRatio: 0.4,
		},
		References: ReferencesSettings{
			MaxResults: 100,
			SplitRatio: 0.7,
		},
		Log: LogSettings{
			File: "gitreplace.log",
		},
	}
}

// Resolve picks the configuration for a run: an explicit path wins, then
// the project file, then the user file, then the defaults.
func Resolve(svc ConfigService, explicit, projectDir string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := svc.LoadFromPath(explicit)
		return cfg, explicit, err
	}

	projectPath := filepath.Join(projectDir, ProjectFileName)
	if _, err := os.Stat(projectPath); err == nil {
		cfg, err := svc.LoadFromPath(projectPath)
		return cfg, projectPath, err
	}

	cfg, err := svc.Load()
	return cfg, "", err
}
