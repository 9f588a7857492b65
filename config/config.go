// Package config loads now-cli authentication and endpoint configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFilename is the standard name for now-cli configuration files.
const ConfigFilename = "now.yaml"

// EnvToken is the environment variable holding the API token. It takes
// precedence over any configuration file.
const EnvToken = "NOW_TOKEN"

// Config represents the now-cli configuration.
type Config struct {
	// Token is the API bearer token.
	Token string `yaml:"token,omitempty"`

	// Team selects a team scope by id or slug. Empty means the personal
	// account scope.
	Team string `yaml:"team,omitempty"`

	// Endpoint overrides the API base URL.
	Endpoint string `yaml:"endpoint,omitempty"`
}

// Load resolves configuration for the current invocation: a project-local
// now.yaml found by walking up from the working directory, falling back to
// the global file under the user home directory. NOW_TOKEN always overrides
// the file token.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	cfg, _, err := LoadFrom(cwd)
	if err != nil {
		return nil, err
	}
	if token := os.Getenv(EnvToken); token != "" {
		cfg.Token = token
	}
	return cfg, nil
}

// LoadFrom loads starting from the specified directory, walking up the
// tree. When no project-local file exists it falls back to the global
// configuration; a missing global file yields an empty config, not an
// error. The second return value is the path of the file used, or "".
func LoadFrom(startDir string) (*Config, string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	currentDir := absDir
	for {
		path := filepath.Join(currentDir, ConfigFilename)
		if _, err := os.Stat(path); err == nil {
			cfg, err := LoadFile(path)
			if err != nil {
				return nil, "", err
			}
			return cfg, path, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	if global := GlobalPath(); global != "" {
		if _, err := os.Stat(global); err == nil {
			cfg, err := LoadFile(global)
			if err != nil {
				return nil, "", err
			}
			return cfg, global, nil
		}
	}
	return &Config{}, "", nil
}

// LoadFile loads configuration from a specific path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// GlobalPath returns the location of the global configuration file, or ""
// when the home directory cannot be determined.
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".now", "config.yaml")
}
