// Package config provides configuration management for nictrace.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath returns the default config file location.
// Respects XDG_CONFIG_HOME, otherwise ~/.config/nictrace/config.yaml.
func DefaultPath() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "nictrace", "config.yaml"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "nictrace", "config.yaml"), nil
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ResolveCaptureDir returns the directory capture files are written to:
// the configured directory, or the user's home directory when unset.
func (c *Config) ResolveCaptureDir() (string, error) {
	if c.CaptureDir != "" {
		return ExpandHome(c.CaptureDir)
	}
	return os.UserHomeDir()
}
