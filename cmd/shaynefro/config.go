package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "shaynefro.yaml"

// projectConfig holds per-project defaults read from shaynefro.yaml.
// Command-line flags override config values, which override built-in
// defaults.
type projectConfig struct {
	Target string `yaml:"target"`
	Output string `yaml:"output"`
}

// loadProjectConfig reads path if it exists. A missing file is not an
// error when the path is the default location; the zero config is
// returned instead.
func loadProjectConfig(path string) (*projectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == defaultConfigFile {
			return &projectConfig{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg projectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
