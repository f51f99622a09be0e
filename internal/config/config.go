// Package config loads per-checkout defaults from .mkdbupgrade.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ProjectConfig holds defaults that flags may override. List options are
// extended by their flags rather than replaced.
type ProjectConfig struct {
	UpgradeDir    string   `yaml:"upgrade_dir"`
	OutputDir     string   `yaml:"output_dir"`
	Prefix        string   `yaml:"prefix"`
	Product       string   `yaml:"product"`
	Move          []string `yaml:"move"`
	Prepend       []string `yaml:"prepend"`
	Append        []string `yaml:"append"`
	AuditorUpdate *bool    `yaml:"auditor_update"`
}

const ConfigFileName = ".mkdbupgrade.yaml"

func Load(repoRoot string) (*ProjectConfig, error) {
	configPath := filepath.Join(repoRoot, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &cfg, nil
}
