package vm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jbweber/nictrace/internal/config"
	"github.com/jbweber/nictrace/internal/naming"
	"github.com/jbweber/nictrace/internal/status"
	"github.com/jbweber/nictrace/internal/vbox"
	"github.com/jbweber/nictrace/internal/viewer"
	"github.com/jbweber/nictrace/internal/wait"
)

// Action is an operator action on a VM adapter.
type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
)

// ParseAction validates an action string.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionStart, ActionStop:
		return Action(s), nil
	default:
		return "", &Error{
			Kind: KindUnknownAction,
			Err:  fmt.Errorf("%w %q", ErrUnknownAction, s),
		}
	}
}

// Request describes a single trace run.
type Request struct {
	// Machine is the VM display name (or identifier).
	Machine string
	// Action is "start" or "stop".
	Action string
	// NIC is the adapter index passed to --nictrace<N>.
	NIC int
}

// Run executes a trace request against the local VirtualBox installation.
//
// This orchestrates the whole run:
//  1. Validate the action
//  2. List VMs and resolve the machine
//  3. Save the VM state
//  4. start: enable tracing, start the VM, launch the viewer
//     stop: disable tracing, delete the capture file, start the VM
//
// Each hypervisor step is followed by polling until the VM reports the
// expected state (bounded by cfg.Settle). The first failure ends the run.
func Run(ctx context.Context, cfg *config.Config, req Request, log logrus.FieldLogger) error {
	action, err := ParseAction(req.Action)
	if err != nil {
		return err
	}

	dir, err := cfg.ResolveCaptureDir()
	if err != nil {
		return &Error{Kind: KindConfig, Msg: "cannot determine capture directory", Err: err}
	}

	launcher, err := viewer.New(cfg.Viewer.Path, cfg.Viewer.ExtraArgs, log)
	if err != nil {
		return &Error{Kind: KindConfig, Msg: "invalid viewer configuration", Err: err}
	}

	hv := vbox.NewClient(cfg.VBoxManage,
		vbox.WithStartType(cfg.StartType),
		vbox.WithLogger(log),
	)

	t := &tracer{
		hv:     hv,
		viewer: launcher,
		remove: os.Remove,
		settle: cfg.Settle.WaitOptions(),
		dir:    dir,
		log:    log,
		phases: status.NewTracker(),
	}

	return t.run(ctx, action, req.Machine, req.NIC)
}

// tracer runs one trace request with injected dependencies.
type tracer struct {
	hv     hypervisor
	viewer viewerLauncher
	remove func(path string) error
	settle wait.Options
	// dir holds the capture files, named after the resolved VM.
	dir    string
	log    logrus.FieldLogger
	phases *status.Tracker
}

func (t *tracer) run(ctx context.Context, action Action, machine string, nic int) error {
	if err := t.execute(ctx, action, machine, nic); err != nil {
		last := t.phases.Phase()
		t.phases.Fail(err.Error())
		t.log.WithField("reason", t.phases.Reason()).Debugf("%s failed after phase %s", action, last)
		return err
	}
	return nil
}

func (t *tracer) execute(ctx context.Context, action Action, machine string, nic int) error {
	// Step 1: Resolve the machine
	t.log.Debugf("looking up VM %q", machine)
	vms, err := t.hv.ListVMs(ctx)
	if err != nil {
		return &Error{Kind: KindCommand, Msg: "cannot list VMs", Err: err}
	}
	vm, err := Resolve(machine, vms)
	if err != nil {
		return err
	}
	if err := t.advance(status.PhaseResolved); err != nil {
		return err
	}

	// Capture files are named after the listed VM name, not the argument.
	file := naming.CaptureFile(t.dir, vm.Name, nic)
	log := t.log.WithFields(logrus.Fields{"vm": vm.ID, "nic": nic})

	// Step 2: Save state so the adapter can be modified
	log.Info("saving VM state")
	if err := t.hv.SaveState(ctx, vm.ID); err != nil {
		return commandError(fmt.Sprintf("cannot save state of VM %s", vm.ID), err)
	}
	if err := t.waitFor(ctx, vm.ID, "saved state", func(info vbox.MachineInfo) bool {
		return info.State() == vbox.StateSaved
	}); err != nil {
		return commandError(fmt.Sprintf("cannot save state of VM %s", vm.ID), err)
	}
	if err := t.advance(status.PhasePaused); err != nil {
		return err
	}

	// Step 3: Toggle tracing
	switch action {
	case ActionStart:
		if err := t.startTrace(ctx, log, vm.ID, nic, file); err != nil {
			return err
		}
	case ActionStop:
		if err := t.stopTrace(ctx, log, vm.ID, nic, file); err != nil {
			return err
		}
	}

	// Step 4: Start the VM again
	log.Info("starting VM")
	if err := t.hv.StartVM(ctx, vm.ID); err != nil {
		return commandError(fmt.Sprintf("cannot start VM %s", vm.ID), err)
	}
	if err := t.waitFor(ctx, vm.ID, "running state", func(info vbox.MachineInfo) bool {
		return info.State() == vbox.StateRunning
	}); err != nil {
		return commandError(fmt.Sprintf("cannot start VM %s", vm.ID), err)
	}
	if err := t.advance(status.PhaseRunning); err != nil {
		return err
	}

	// Step 5: Open the capture
	if action == ActionStart {
		title := naming.WindowTitle(vm.Name, nic)
		log.WithField("file", file).Info("launching capture viewer")
		if err := t.viewer.Launch(file, title); err != nil {
			return &Error{Kind: KindViewer, Msg: fmt.Sprintf("cannot open capture %s", file), Err: err}
		}
	}

	return nil
}

func (t *tracer) startTrace(ctx context.Context, log logrus.FieldLogger, id string, nic int, file string) error {
	msg := fmt.Sprintf("cannot start trace for VM %s nic:%d filename:%s", id, nic, file)

	log.WithField("file", file).Info("enabling adapter trace")
	if err := t.hv.EnableTrace(ctx, id, nic, file); err != nil {
		return commandError(msg, err)
	}
	if err := t.waitFor(ctx, id, "trace on", func(info vbox.MachineInfo) bool {
		on, traceFile := info.NICTrace(nic)
		return on && traceFile == file
	}); err != nil {
		return commandError(msg, err)
	}

	return t.advance(status.PhaseTraced)
}

func (t *tracer) stopTrace(ctx context.Context, log logrus.FieldLogger, id string, nic int, file string) error {
	msg := fmt.Sprintf("cannot stop trace for VM %s nic:%d", id, nic)

	log.Info("disabling adapter trace")
	if err := t.hv.DisableTrace(ctx, id, nic); err != nil {
		return commandError(msg, err)
	}
	if err := t.waitFor(ctx, id, "trace off", func(info vbox.MachineInfo) bool {
		on, _ := info.NICTrace(nic)
		return !on
	}); err != nil {
		return commandError(msg, err)
	}
	if err := t.advance(status.PhaseUntraced); err != nil {
		return err
	}

	log.WithField("file", file).Info("removing capture file")
	if err := t.remove(file); err != nil {
		return &Error{Kind: KindCaptureFile, Msg: fmt.Sprintf("cannot remove capture file %s", file), Err: err}
	}

	return nil
}

// waitFor polls the VM info until want reports true or the settle timeout
// elapses. Info failures are retried; the last one is reported on timeout.
func (t *tracer) waitFor(ctx context.Context, id, what string, want func(vbox.MachineInfo) bool) error {
	var lastErr error

	err := wait.Until(ctx, t.settle, func(ctx context.Context) (bool, error) {
		info, err := t.hv.Info(ctx, id)
		if err != nil {
			lastErr = err
			t.log.WithError(err).Debugf("waiting for %s", what)
			return false, nil
		}
		return want(info), nil
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, wait.ErrTimeout) && lastErr != nil:
		return fmt.Errorf("%w (%s): %w: %v", ErrStateNotSettle, what, err, lastErr)
	case errors.Is(err, wait.ErrTimeout):
		return fmt.Errorf("%w (%s): %w", ErrStateNotSettle, what, err)
	default:
		return err
	}
}

func (t *tracer) advance(to status.Phase) error {
	if err := t.phases.Transition(to); err != nil {
		return &Error{Kind: KindUnknown, Msg: "invalid run sequence", Err: err}
	}
	t.log.Debugf("phase %s", to)
	return nil
}

func commandError(msg string, err error) error {
	return &Error{Kind: KindCommand, Msg: msg, Err: err}
}
