package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// VariantsFile is the settings file name looked up in each config directory.
const VariantsFile = "variants.yaml"

// LoadVariants loads variant settings.
// Search order: customPath -> ~/.tictactoe/configs/variants.yaml -> ./configs/variants.yaml -> embedded default
func LoadVariants(customPath string) (Variants, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultVariants(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseVariants(data)
		if err != nil {
			return DefaultVariants(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(VariantsFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseVariants(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", VariantsFile)); err == nil {
		if cfg, err := parseVariants(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseVariants(defaultVariantsYAML)
	if err != nil {
		return DefaultVariants(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseVariants decodes a settings file over the defaults, so a file only
// needs the keys it changes.
func parseVariants(data []byte) (Variants, error) {
	cfg := DefaultVariants()
	cfg.OneDimensional.Presets = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Variants{}, err
	}
	return cfg.Normalize(), nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tictactoe", "configs", filename)
}
