package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDuel loads the duel configuration. Fields missing from the file keep
// their default values.
// Search order: customPath -> ~/.snakeduel/configs/duel.yaml -> ./configs/duel.yaml -> embedded default
func LoadDuel(customPath string) (DuelConfig, error) {
	cfg := DefaultDuelConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("duel.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, ok := parseOver(data); ok {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "duel.yaml")); err == nil {
		if parsed, ok := parseOver(data); ok {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	if parsed, ok := parseOver(defaultDuelYAML); ok {
		return parsed, nil
	}
	return DefaultDuelConfig(), nil // Fallback to hardcoded if embed fails
}

// parseOver unmarshals data on top of the defaults.
func parseOver(data []byte) (DuelConfig, bool) {
	cfg := DefaultDuelConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DuelConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snakeduel", "configs", filename)
}

// ApplyDuelPreset modifies the config based on a difficulty preset.
func ApplyDuelPreset(cfg *DuelConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the opponent based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Bots.Opponent = "random"
		cfg.Play.MoveEveryTicks = 10
	case DifficultyHard:
		cfg.Bots.Opponent = "cautious"
		cfg.Bots.Epsilon = 0.02
		cfg.Play.MoveEveryTicks = 6
	}
}
