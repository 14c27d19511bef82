package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	ProviderOpenAI         = "openai"
	ProviderLibreTranslate = "libretranslate"
	ProviderGoogle         = "google"
)

// APIKeyEnv overrides translator.openai.api_key when set; it is not persisted
const APIKeyEnv = "TRIPLESPACE_OPENAI_API_KEY"

type Config struct {
	Trigger        TriggerConfig    `json:"trigger"`
	Toggle         ToggleConfig     `json:"toggle"`
	Cache          CacheConfig      `json:"cache"`
	Translator     TranslatorConfig `json:"translator"`
	Inject         InjectConfig     `json:"inject"`
	Metrics        MetricsConfig    `json:"metrics"`
	LogLevel       string           `json:"log_level"`
	MonitorEnabled bool             `json:"monitor_enabled"`

	path string
}

type TriggerConfig struct {
	PressCount int `json:"press_count"`
	WindowMs   int `json:"window_ms"`
}

// ToggleConfig bounds when a trigger reverses the last replacement instead of translating
type ToggleConfig struct {
	ContextWindowMs   int `json:"context_window_ms"`
	RetriggerWindowMs int `json:"retrigger_window_ms"`
	ImmediateWindowMs int `json:"immediate_window_ms"`
}

type CacheConfig struct {
	MaxEntries int `json:"max_entries"`
}

type TranslatorConfig struct {
	Provider       string               `json:"provider"` // "openai", "libretranslate" or "google"
	SourceLanguage string               `json:"source_language"`
	TargetLanguage string               `json:"target_language"`
	TimeoutMs      int                  `json:"timeout_ms"`
	MaxRetries     int                  `json:"max_retries"`
	OpenAI         OpenAIConfig         `json:"openai"`
	LibreTranslate LibreTranslateConfig `json:"libretranslate"`
	GoogleURL      string               `json:"google_url,omitempty"`
}

type OpenAIConfig struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`

	// envKey comes from APIKeyEnv and is never written back by Save
	envKey string
}

// Key returns the API key to use, preferring the environment over the file
func (o OpenAIConfig) Key() string {
	if o.envKey != "" {
		return o.envKey
	}
	return o.APIKey
}

type LibreTranslateConfig struct {
	URL    string `json:"url"`
	APIKey string `json:"api_key"`
}

type InjectConfig struct {
	KeyDelayMs        int `json:"key_delay_ms"`
	ClipboardSettleMs int `json:"clipboard_settle_ms"`
}

type MetricsConfig struct {
	ListenAddr string `json:"listen_addr"` // empty disables the endpoint
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Trigger: TriggerConfig{
			PressCount: 3,
			WindowMs:   500,
		},
		Toggle: ToggleConfig{
			ContextWindowMs:   90_000,
			RetriggerWindowMs: 12_000,
			ImmediateWindowMs: 2_000,
		},
		Cache: CacheConfig{
			MaxEntries: 200,
		},
		Translator: TranslatorConfig{
			Provider:       ProviderOpenAI,
			SourceLanguage: "zh-CN",
			TargetLanguage: "en",
			TimeoutMs:      20_000,
			MaxRetries:     2,
			OpenAI: OpenAIConfig{
				BaseURL: "https://api.openai.com/v1",
				Model:   "gpt-4o-mini",
			},
			LibreTranslate: LibreTranslateConfig{
				URL: "https://libretranslate.com/translate",
			},
		},
		Inject: InjectConfig{
			KeyDelayMs:        60,
			ClipboardSettleMs: 100,
		},
		LogLevel:       "info",
		MonitorEnabled: true,
	}
}

// Load reads the config from disk or returns defaults
func Load() (*Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom reads the config at path, falling back to defaults when it does not exist
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.Translator.OpenAI.envKey = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = configPath()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

func (c *Config) Validate() error {
	if c.Trigger.PressCount < 2 {
		return fmt.Errorf("trigger.press_count must be at least 2")
	}
	if c.Trigger.WindowMs <= 0 {
		return fmt.Errorf("trigger.window_ms must be positive")
	}
	if c.Toggle.ContextWindowMs <= 0 || c.Toggle.RetriggerWindowMs <= 0 || c.Toggle.ImmediateWindowMs <= 0 {
		return fmt.Errorf("toggle windows must be positive")
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive")
	}
	switch strings.ToLower(c.Translator.Provider) {
	case ProviderOpenAI, ProviderLibreTranslate, ProviderGoogle:
	default:
		return fmt.Errorf("unknown translator.provider %q", c.Translator.Provider)
	}
	if c.Translator.SourceLanguage == "" || c.Translator.TargetLanguage == "" {
		return fmt.Errorf("translator languages must be set")
	}
	return nil
}

// Path returns the file this config was loaded from
func (c *Config) Path() string {
	if c.path == "" {
		return configPath()
	}
	return c.path
}

func (t TriggerConfig) Window() time.Duration {
	return time.Duration(t.WindowMs) * time.Millisecond
}

func (t ToggleConfig) ContextWindow() time.Duration {
	return time.Duration(t.ContextWindowMs) * time.Millisecond
}

func (t ToggleConfig) RetriggerWindow() time.Duration {
	return time.Duration(t.RetriggerWindowMs) * time.Millisecond
}

func (t ToggleConfig) ImmediateWindow() time.Duration {
	return time.Duration(t.ImmediateWindowMs) * time.Millisecond
}

func (t TranslatorConfig) Timeout() time.Duration {
	return time.Duration(t.TimeoutMs) * time.Millisecond
}

func (i InjectConfig) KeyDelay() time.Duration {
	return time.Duration(i.KeyDelayMs) * time.Millisecond
}

func (i InjectConfig) ClipboardSettle() time.Duration {
	return time.Duration(i.ClipboardSettleMs) * time.Millisecond
}

// configPath returns the platform-specific config file path
func configPath() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		base = os.Getenv("HOME") + "/Library/Application Support"
	case "windows":
		base = os.Getenv("APPDATA")
	default: // linux
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = xdg
		} else {
			base = os.Getenv("HOME") + "/.config"
		}
	}

	return filepath.Join(base, "triplespace", "config.json")
}
