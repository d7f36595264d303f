package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"searchbox/internal/eventbus"
)

const (
	DefaultAPIBase     = "https://eds-search-utility.vercel.app/api"
	DefaultLimit       = 10
	DefaultPlaceholder = "Search..."
	DefaultDebounceMs  = 250
	DefaultTimeoutMs   = 10000

	// EnvAPIKey holds the credential sent in the x-api-key header
	EnvAPIKey  = "SEARCHBOX_API_KEY"
	EnvAPIBase = "SEARCHBOX_API_BASE"
)

// Config represents the search box configuration
type Config struct {
	Version     int        `toml:"version"`
	APIBase     string     `toml:"api_base"`
	APIKey      string     `toml:"api_key,omitempty"`
	Repo        string     `toml:"repo"`
	Path        string     `toml:"path"`
	Sheet       string     `toml:"sheet,omitempty"`
	Limit       int        `toml:"limit"`
	Placeholder string     `toml:"placeholder"`
	UISettings  UISettings `toml:"ui"`
}

// UISettings represents interaction tuning
type UISettings struct {
	DebounceMs       int  `toml:"debounce_ms"`
	RequestTimeoutMs int  `toml:"request_timeout_ms"`
	EscapeMarkup     bool `toml:"escape_markup"`
}

// DebounceInterval is the quiet period before suggestions are fetched
func (c *Config) DebounceInterval() time.Duration {
	return time.Duration(c.UISettings.DebounceMs) * time.Millisecond
}

// RequestTimeout bounds every call to the search service
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.UISettings.RequestTimeoutMs) * time.Millisecond
}

// Validate checks the fields the search service requires
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.APIBase) == "" {
		errs = append(errs, errors.New("api_base is required"))
	}
	if strings.TrimSpace(c.Repo) == "" {
		errs = append(errs, errors.New("repo is required"))
	}
	if strings.TrimSpace(c.Path) == "" {
		errs = append(errs, errors.New("path is required"))
	}
	if c.Limit <= 0 {
		errs = append(errs, fmt.Errorf("limit must be positive, got %d", c.Limit))
	}
	if c.UISettings.DebounceMs < 0 {
		errs = append(errs, fmt.Errorf("debounce_ms must not be negative, got %d", c.UISettings.DebounceMs))
	}
	if c.UISettings.RequestTimeoutMs <= 0 {
		errs = append(errs, fmt.Errorf("request_timeout_ms must be positive, got %d", c.UISettings.RequestTimeoutMs))
	}
	return errors.Join(errs...)
}

// ApplyEnv overrides the credential and API base from the environment
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.APIKey = v
	}
	if v, ok := lookup(EnvAPIBase); ok && v != "" {
		c.APIBase = v
	}
}

// FromOptions builds a configuration from host-provided option names
// (repo, path, sheet, limit, placeholder) on top of the defaults
func FromOptions(options map[string]string) *Config {
	cfg := DefaultConfig()
	for name, value := range options {
		value = strings.TrimSpace(value)
		switch name {
		case "repo":
			cfg.Repo = value
		case "path":
			cfg.Path = value
		case "sheet":
			cfg.Sheet = value
		case "placeholder":
			if value != "" {
				cfg.Placeholder = value
			}
		case "limit":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				cfg.Limit = n
			}
		}
	}
	return cfg
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "searchbox", "config.toml")
}

// NewConfigService creates a config service backed by path, or the default path when empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when missing
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Repo: cfg.Repo})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Decode over the defaults so omitted keys keep their default values
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultPlaceholder
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The credential stays in the environment, never on disk
	out := *config
	out.APIKey = ""

	data, err := toml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		APIBase:     DefaultAPIBase,
		Limit:       DefaultLimit,
		Placeholder: DefaultPlaceholder,
		UISettings: UISettings{
			DebounceMs:       DefaultDebounceMs,
			RequestTimeoutMs: DefaultTimeoutMs,
			EscapeMarkup:     true,
		},
	}
}
