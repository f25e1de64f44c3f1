// Package loader provides functions for loading the nictrace configuration
// from YAML files.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/nictrace/internal/config"
)

// Load loads the configuration from path. If path is empty, the default
// location is used and a missing file yields the defaults. An explicit path
// that does not exist is an error.
func Load(path string) (*config.Config, error) {
	if path != "" {
		return LoadFromFile(path)
	}

	defaultPath, err := config.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	cfg, err := LoadFromFile(defaultPath)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

// LoadFromFile loads the configuration from a YAML file.
func LoadFromFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return LoadFromYAML(data)
}

// LoadFromYAML loads the configuration from YAML bytes.
// Fields that are omitted keep their defaults; unknown fields are rejected.
func LoadFromYAML(data []byte) (*config.Config, error) {
	cfg := config.Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	if err := normalize(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the configuration to a YAML file, creating its
// directory if needed.
func SaveToFile(cfg *config.Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

// normalize expands "~" in path fields.
func normalize(cfg *config.Config) error {
	for _, p := range []*string{&cfg.VBoxManage, &cfg.Viewer.Path, &cfg.CaptureDir} {
		expanded, err := config.ExpandHome(*p)
		if err != nil {
			return fmt.Errorf("failed to expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}
