// Package savegame persists the character between sessions. The format
// is plain YAML: the point of a save here is surviving a disconnect,
// not tamper resistance.
package savegame

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gloomdelve/internal/item"
	"gloomdelve/internal/player"
)

// Save is the on-disk character snapshot.
type Save struct {
	Player player.Player `yaml:"player"`
	// ConditionTicks carries the timed-condition countdowns, which sit
	// behind the player aggregate's method surface.
	ConditionTicks []int       `yaml:"condition_ticks,omitempty"`
	Pack           []item.Item `yaml:"pack"`
	Equipment      []item.Item `yaml:"equipment"`
	Clock          int64       `yaml:"clock"`
	Wizard         bool        `yaml:"wizard,omitempty"`
	Winner         bool        `yaml:"winner,omitempty"`
}

// Write stores the snapshot at path, truncating any previous save.
func Write(path string, s *Save) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// Read loads a snapshot from path. A missing file returns ok=false
// with no error: a fresh character starts instead.
func Read(path string) (*Save, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read save: %w", err)
	}
	var s Save
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, false, fmt.Errorf("parse save: %w", err)
	}
	return &s, true, nil
}

// Remove deletes the save after a death or a win, so the character
// cannot be replayed.
func Remove(path string) {
	_ = os.Remove(path)
}
