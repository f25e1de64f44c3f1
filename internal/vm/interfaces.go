package vm

import (
	"context"

	"github.com/jbweber/nictrace/internal/vbox"
)

// hypervisor defines the VirtualBox operations needed for tracing.
//
// In production, this is satisfied by *vbox.Client.
// In tests, this is satisfied by mock implementations.
type hypervisor interface {
	// ListVMs lists registered VMs
	ListVMs(ctx context.Context) ([]vbox.VM, error)

	// SaveState saves the VM state, stopping execution
	SaveState(ctx context.Context, id string) error

	// EnableTrace turns on tracing for an adapter
	EnableTrace(ctx context.Context, id string, nic int, path string) error

	// DisableTrace turns off tracing for an adapter
	DisableTrace(ctx context.Context, id string, nic int) error

	// StartVM starts or resumes the VM
	StartVM(ctx context.Context, id string) error

	// Info returns machine-readable VM information
	Info(ctx context.Context, id string) (vbox.MachineInfo, error)
}

// viewerLauncher starts the capture viewer.
//
// In production, this is satisfied by *viewer.Launcher.
type viewerLauncher interface {
	Launch(file, title string) error
}
