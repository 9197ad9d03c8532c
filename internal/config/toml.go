// Package config provides configuration helpers and TOML parsing.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/zencounter/internal/model"
	"github.com/verte-zerg/zencounter/internal/settings"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Training TrainingConfig `toml:"training"`
}

// TrainingConfig maps training-related settings.
type TrainingConfig struct {
	Decks            *int     `toml:"decks"`
	Speed            *float64 `toml:"speed"`
	ShowCardValue    *bool    `toml:"show-card-value"`
	ShowRunningCount *bool    `toml:"show-running-count"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Apply overlays the values present in the file onto base.
func (t TrainingConfig) Apply(base model.Settings) model.Settings {
	if t.Decks != nil {
		base.NumberOfDecks = *t.Decks
	}
	if t.Speed != nil {
		base.CardSpeed = *t.Speed
	}
	if t.ShowCardValue != nil {
		base.ShowCardValue = *t.ShowCardValue
	}
	if t.ShowRunningCount != nil {
		base.ShowRunningCount = *t.ShowRunningCount
	}
	return base
}

// SettingsFile persists training settings in the [training] table of a TOML file.
type SettingsFile struct {
	Path string
}

// NewSettingsFile returns a settings store backed by path.
func NewSettingsFile(path string) *SettingsFile {
	return &SettingsFile{Path: path}
}

// Load reads settings, starting from defaults for absent keys.
func (f *SettingsFile) Load() (model.Settings, error) {
	cfg, err := LoadConfig(f.Path)
	if err != nil {
		return settings.Defaults(), err
	}
	return cfg.Training.Apply(settings.Defaults()), nil
}

// Save writes all settings to the file atomically.
func (f *SettingsFile) Save(s model.Settings) error {
	if f.Path == "" {
		return fmt.Errorf("config path is empty")
	}
	cfg := FileConfig{Training: TrainingConfig{
		Decks:            &s.NumberOfDecks,
		Speed:            &s.CardSpeed,
		ShowCardValue:    &s.ShowCardValue,
		ShowRunningCount: &s.ShowRunningCount,
	}}
	var buf bytes.Buffer
	buf.WriteString("# zencounter configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "config-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp config: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close config: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DefaultTemplate returns the commented config written by `zencounter config`.
func DefaultTemplate() string {
	d := settings.Defaults()
	return fmt.Sprintf(`# zencounter configuration
# Uncomment a value to enable it. CLI flags override config values.
# Settings changed inside the trainer are written back here.

[training]
# decks = %d                   # Number of decks in the shoe (%d-%d)
# speed = %.1f                 # Seconds per card (%.1f-%.1f, step %.1f)
# show-card-value = %t       # Show the +1/0/-1 badge under each card
# show-running-count = %t    # Show the running count while dealing
`,
		d.NumberOfDecks, settings.MinDecks, settings.MaxDecks,
		d.CardSpeed, settings.MinSpeed, settings.MaxSpeed, settings.SpeedStep,
		d.ShowCardValue,
		d.ShowRunningCount,
	)
}
