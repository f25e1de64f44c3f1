package config

import (
	"fmt"
	"time"

	"github.com/jbweber/nictrace/internal/vbox"
	"github.com/jbweber/nictrace/internal/viewer"
	"github.com/jbweber/nictrace/internal/wait"
)

// Config represents the complete nictrace configuration.
type Config struct {
	VBoxManage string       `yaml:"vboxmanage"`
	Viewer     ViewerConfig `yaml:"viewer"`
	CaptureDir string       `yaml:"capture_dir,omitempty"` // Directory for capture files (default: home directory)
	StartType  string       `yaml:"start_type,omitempty"`  // startvm --type value; empty keeps the VirtualBox default
	Settle     SettleConfig `yaml:"settle"`
}

// ViewerConfig defines the capture viewer invocation.
type ViewerConfig struct {
	Path      string `yaml:"path"`
	ExtraArgs string `yaml:"extra_args,omitempty"` // Shell-style, appended after the window title option
}

// SettleConfig bounds the polling done after each hypervisor command.
// A zero Timeout disables polling.
type SettleConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	InitialInterval time.Duration `yaml:"initial_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`
}

// validStartTypes are the startvm --type values VirtualBox accepts.
var validStartTypes = map[string]bool{
	"":         true,
	"gui":      true,
	"headless": true,
	"sdl":      true,
	"separate": true,
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		VBoxManage: vbox.DefaultPath,
		Viewer: ViewerConfig{
			Path: viewer.DefaultPath,
		},
		Settle: SettleConfig{
			Timeout:         wait.DefaultTimeout,
			InitialInterval: wait.DefaultInitialInterval,
			MaxInterval:     wait.DefaultMaxInterval,
		},
	}
}

// WaitOptions converts the settle configuration into polling options.
func (s SettleConfig) WaitOptions() wait.Options {
	return wait.Options{
		Timeout:         s.Timeout,
		InitialInterval: s.InitialInterval,
		MaxInterval:     s.MaxInterval,
	}
}

// Validate checks the configuration for errors.
// Does not check that the binaries exist.
func (c *Config) Validate() error {
	if c.VBoxManage == "" {
		return fmt.Errorf("vboxmanage is required")
	}
	if c.Viewer.Path == "" {
		return fmt.Errorf("viewer.path is required")
	}
	if !validStartTypes[c.StartType] {
		return fmt.Errorf("start_type must be one of gui, headless, sdl, separate, got %q", c.StartType)
	}
	if err := c.Settle.Validate(); err != nil {
		return fmt.Errorf("settle: %w", err)
	}
	return nil
}

// Validate checks settle configuration.
func (s *SettleConfig) Validate() error {
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", s.Timeout)
	}
	if s.InitialInterval < 0 {
		return fmt.Errorf("initial_interval must be >= 0, got %s", s.InitialInterval)
	}
	if s.MaxInterval < 0 {
		return fmt.Errorf("max_interval must be >= 0, got %s", s.MaxInterval)
	}
	if s.MaxInterval > 0 && s.InitialInterval > s.MaxInterval {
		return fmt.Errorf("initial_interval %s exceeds max_interval %s", s.InitialInterval, s.MaxInterval)
	}
	return nil
}
