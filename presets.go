package kinetik

import (
	"encoding/json"
	"fmt"
	"os"
)

// SaveScene writes a scene configuration to disk as indented JSON.
func SaveScene(cfg Config, filename string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}
	bytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, bytes, 0644)
}

// LoadScene reads and validates a scene configuration saved by SaveScene.
func LoadScene(filename string) (Config, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing scene %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("scene %s: %w", filename, err)
	}
	return cfg, nil
}
