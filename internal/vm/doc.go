// Package vm provides the high-level trace operations on a VirtualBox VM.
//
// This package orchestrates the low-level components (vbox, viewer, naming,
// wait, status) into the two operator actions:
//   - start: save state, enable adapter tracing, start the VM, open the viewer
//   - stop: save state, disable adapter tracing, delete the capture file, start the VM
//
// Error Handling:
//
// Operations fail fast. The first failing step ends the run and no earlier
// step is undone: a VM whose state was saved stays saved if a later step
// fails. Every failure is an *Error carrying a Kind; ExitCode maps it to the
// process exit status.
//
// Context Support:
//
// All operations accept a context.Context. Cancelling it kills the running
// VBoxManage command and stops settle polling.
package vm
