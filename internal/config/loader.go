package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config.yaml"

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is taken from CONFIG_PATH (fallback "./config.yaml").
// A missing fallback file is not an error: ENV and defaults are used alone.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	cfg, err := read(path, explicit)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return cfg, nil
}

func read(path string, explicit bool) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	return &cfg, nil
}
