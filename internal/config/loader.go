package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file searched for in config directories.
const FileName = "raycaster.yaml"

// Load loads the raycaster configuration.
// Search order: customPath -> ~/.raycaster/configs/raycaster.yaml ->
// ./configs/raycaster.yaml -> embedded default -> DefaultConfig.
// Keys missing from a file keep their default values.
func Load(customPath string) (RaycasterConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RaycasterConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return RaycasterConfig{}, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath); ok {
			return cfg, nil
		}
	}

	if cfg, ok := tryFile(filepath.Join("configs", FileName)); ok {
		return cfg, nil
	}

	cfg, err := Parse(defaultRaycasterYAML)
	if err != nil {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (RaycasterConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RaycasterConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RaycasterConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg RaycasterConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// tryFile reads an optional config file; unreadable or invalid files are
// skipped so the next location in the search order is tried.
func tryFile(path string) (RaycasterConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RaycasterConfig{}, false
	}
	cfg, err := Parse(data)
	if err != nil {
		return RaycasterConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".raycaster", "configs", filename)
}
