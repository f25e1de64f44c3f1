package vbox

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultPath is where VBoxManage is expected when no path is configured.
const DefaultPath = "/usr/local/bin/VBoxManage"

// Client wraps the VBoxManage binary and exposes the operations needed to
// toggle adapter tracing on a VM.
type Client struct {
	path      string
	runner    Runner
	startType string
	log       logrus.FieldLogger
}

// Option configures a Client.
type Option func(*Client)

// WithRunner replaces the command runner (default: ExecRunner).
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// WithStartType passes --type <t> to startvm. An empty type leaves the
// VirtualBox default in place.
func WithStartType(t string) Option {
	return func(c *Client) {
		c.startType = t
	}
}

// WithLogger sets the logger used for command tracing.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a Client for the VBoxManage binary at path.
// If path is empty, DefaultPath is used.
func NewClient(path string, opts ...Option) *Client {
	if path == "" {
		path = DefaultPath
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		path:   path,
		runner: ExecRunner{},
		log:    discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListVMs returns all registered VMs in the order VBoxManage lists them.
func (c *Client) ListVMs(ctx context.Context) ([]VM, error) {
	out, err := c.run(ctx, "list", "vms")
	if err != nil {
		return nil, fmt.Errorf("failed to list VMs: %w", err)
	}
	return ParseVMList(out), nil
}

// SaveState saves the running state of the VM, stopping its execution.
func (c *Client) SaveState(ctx context.Context, id string) error {
	_, err := c.run(ctx, "controlvm", id, "savestate")
	return err
}

// EnableTrace turns on packet tracing for adapter nic, writing to path.
func (c *Client) EnableTrace(ctx context.Context, id string, nic int, path string) error {
	_, err := c.run(ctx, "modifyvm", id,
		fmt.Sprintf("--nictrace%d", nic), "on",
		fmt.Sprintf("--nictracefile%d", nic), path,
	)
	return err
}

// DisableTrace turns off packet tracing for adapter nic.
func (c *Client) DisableTrace(ctx context.Context, id string, nic int) error {
	_, err := c.run(ctx, "modifyvm", id, fmt.Sprintf("--nictrace%d", nic), "off")
	return err
}

// StartVM starts (or resumes from saved state) the VM.
func (c *Client) StartVM(ctx context.Context, id string) error {
	args := []string{"startvm", id}
	if c.startType != "" {
		args = append(args, "--type", c.startType)
	}
	_, err := c.run(ctx, args...)
	return err
}

// Info returns the machine-readable VM information.
func (c *Client) Info(ctx context.Context, id string) (MachineInfo, error) {
	out, err := c.run(ctx, "showvminfo", id, "--machinereadable")
	if err != nil {
		return nil, fmt.Errorf("failed to get info for VM %s: %w", id, err)
	}
	return ParseMachineReadable(out), nil
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	c.log.WithField("args", args).Debugf("running %s", c.path)
	out, err := c.runner.Run(ctx, c.path, args...)
	if err != nil {
		c.log.WithError(err).Debugf("%s failed", c.path)
		return out, err
	}
	return out, nil
}
