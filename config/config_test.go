package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("model = %q, want %q", cfg.Model, DefaultModel)
	}
	if cfg.SilenceAutoStopMs != DefaultSilenceAutoStopMs {
		t.Errorf("silence_auto_stop_ms = %d, want %d", cfg.SilenceAutoStopMs, DefaultSilenceAutoStopMs)
	}
	if !cfg.SaveHistory {
		t.Error("save_history should default to true")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults were not persisted: %v", err)
	}
}

func TestLoadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.Language = "tr"
	cfg.Format = "flac"
	cfg.AudioDevice = "USB Microphone"
	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Language != "tr" || got.Format != "flac" || got.AudioDevice != "USB Microphone" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestLoadFileNormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := map[string]any{
		"model":                "",
		"volume_threshold":     -1.0,
		"silence_auto_stop_ms": 0,
		"min_duration_ms":      -5,
	}
	data, _ := json.Marshal(raw)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("model = %q, want default", cfg.Model)
	}
	if cfg.VolumeThreshold != DefaultVolumeThreshold {
		t.Errorf("volume_threshold = %v, want default", cfg.VolumeThreshold)
	}
	if cfg.SilenceAutoStopMs != DefaultSilenceAutoStopMs {
		t.Errorf("silence_auto_stop_ms = %d, want default", cfg.SilenceAutoStopMs)
	}
	if cfg.MinDurationMs != DefaultMinDurationMs {
		t.Errorf("min_duration_ms = %d, want default", cfg.MinDurationMs)
	}
}

func TestAPIKeyPrefersEnvironment(t *testing.T) {
	cfg := Default()
	cfg.GroqAPIKey = "file-key"

	t.Setenv("GROQ_API_KEY", "env-key")
	if got := cfg.APIKey(); got != "env-key" {
		t.Errorf("APIKey = %q, want env-key", got)
	}

	t.Setenv("GROQ_API_KEY", "")
	if got := cfg.APIKey(); got != "file-key" {
		t.Errorf("APIKey = %q, want file-key", got)
	}
}
