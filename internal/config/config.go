package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Options holds the player-visible settings toggled from the options screen.
type Options struct {
	// RoguelikeKeys selects the hjkl-style keyset. When false, raw keys
	// pass through the original-keyset remap table before dispatch.
	RoguelikeKeys bool `yaml:"roguelike_keys"`
	// Bell enables the audible terminal alert.
	Bell bool `yaml:"bell"`
	// SavePath is where the emergency save lands on disconnect.
	SavePath string `yaml:"save_path"`
}

// Default returns the options used when no config file exists yet.
func Default() Options {
	return Options{
		RoguelikeKeys: false,
		Bell:          true,
		SavePath:      defaultSavePath(),
	}
}

func defaultSavePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gloomdelve.save"
	}
	return filepath.Join(home, ".gloomdelve.save")
}

// DefaultPath returns the standard location of the options file.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gloomdelve.yaml"
	}
	return filepath.Join(home, ".gloomdelve.yaml")
}

// Load reads options from path. A missing file is not an error: the
// defaults are returned so a first run needs no setup.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}

	opts := Default()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	return opts, nil
}

// Save writes options back to path.
func Save(path string, opts Options) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write options: %w", err)
	}
	return nil
}
