// Package config loads and saves the application settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultModel             = "distil-whisper-large-v3-en"
	DefaultLanguage          = "en"
	DefaultFormat            = "wav"
	DefaultVolumeThreshold   = 0.005
	DefaultSilenceAutoStopMs = 2000
	DefaultMinDurationMs     = 200
	DefaultDebounceMs        = 150
)

type Config struct {
	GroqAPIKey        string  `json:"groq_api_key,omitempty"`
	Model             string  `json:"model"`
	Language          string  `json:"language"`
	Format            string  `json:"format"`
	AudioDevice       string  `json:"audio_device,omitempty"`
	InjectStrategy    string  `json:"inject_strategy,omitempty"`
	SaveHistory       bool    `json:"save_history"`
	SoundEnabled      bool    `json:"sound_enabled"`
	VolumeThreshold   float64 `json:"volume_threshold"`
	SilenceAutoStopMs int     `json:"silence_auto_stop_ms"`
	MinDurationMs     int     `json:"min_duration_ms"`
	DebounceMs        int     `json:"debounce_ms"`
}

// Default returns a config populated with every tunable's default value.
func Default() *Config {
	return &Config{
		Model:             DefaultModel,
		Language:          DefaultLanguage,
		Format:            DefaultFormat,
		SaveHistory:       true,
		SoundEnabled:      true,
		VolumeThreshold:   DefaultVolumeThreshold,
		SilenceAutoStopMs: DefaultSilenceAutoStopMs,
		MinDurationMs:     DefaultMinDurationMs,
		DebounceMs:        DefaultDebounceMs,
	}
}

// Path returns the settings file location under the user config directory.
func Path() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "vwisper", "config.json"), nil
}

// Load reads the settings file, creating it with defaults when absent.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads settings from an explicit path. A missing file is not an
// error: defaults are written there and returned.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if werr := SaveFile(path, cfg); werr != nil {
			return nil, werr
		}
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// APIKey resolves the Groq credential: environment first, then the file.
func (c *Config) APIKey() string {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		return key
	}
	return c.GroqAPIKey
}

// normalize clamps out-of-range values back to defaults so a hand-edited
// file cannot wedge the session state machine.
func (c *Config) normalize() {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.VolumeThreshold <= 0 {
		c.VolumeThreshold = DefaultVolumeThreshold
	}
	if c.SilenceAutoStopMs <= 0 {
		c.SilenceAutoStopMs = DefaultSilenceAutoStopMs
	}
	if c.MinDurationMs <= 0 {
		c.MinDurationMs = DefaultMinDurationMs
	}
	if c.DebounceMs < 0 {
		c.DebounceMs = DefaultDebounceMs
	}
}
