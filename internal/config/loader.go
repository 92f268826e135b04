package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceKind describes where an effective config came from.
type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// LoadResult is the effective config plus its provenance.
type LoadResult struct {
	Config *Config
	Source SourceKind
	// Path is the file the config was read from; empty for defaults.
	Path string
}

// DefaultConfigPath returns ~/.config/deskwm/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "deskwm", "config.yaml"), nil
}

// Load reads the config from the default path. A missing file is not an
// error; defaults apply.
func Load() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the config from an explicit path. A missing file yields
// DefaultConfig with SourceDefault; a present but invalid file is an error.
func LoadFromPath(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{Config: DefaultConfig(), Source: SourceDefault}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &LoadResult{Config: cfg, Source: SourceFile, Path: path}, nil
}
