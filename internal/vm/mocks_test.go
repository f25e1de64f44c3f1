package vm

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jbweber/nictrace/internal/vbox"
)

// callLog records calls across all mocks in order, so tests can check the
// exact sequence of side effects.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// mockHypervisor is a mock implementation of the hypervisor interface.
//
// By default it simulates a VirtualBox host: commands succeed and Info
// reflects the state changes they cause.
type mockHypervisor struct {
	log *callLog

	// Simulated host state per VM identifier
	vms   []vbox.VM
	state map[string]vbox.MachineInfo

	// Configurable behavior
	listVMsFunc      func(ctx context.Context) ([]vbox.VM, error)
	saveStateFunc    func(ctx context.Context, id string) error
	enableTraceFunc  func(ctx context.Context, id string, nic int, path string) error
	disableTraceFunc func(ctx context.Context, id string, nic int) error
	startVMFunc      func(ctx context.Context, id string) error
	infoFunc         func(ctx context.Context, id string) (vbox.MachineInfo, error)

	// Call tracking
	infoCalls int
}

// newMockHypervisor creates a mock with the given VMs, all running.
func newMockHypervisor(log *callLog, vms ...vbox.VM) *mockHypervisor {
	m := &mockHypervisor{
		log:   log,
		vms:   vms,
		state: map[string]vbox.MachineInfo{},
	}
	for _, vm := range vms {
		m.state[vm.ID] = vbox.MachineInfo{"name": vm.Name, "VMState": vbox.StateRunning}
	}

	m.listVMsFunc = func(ctx context.Context) ([]vbox.VM, error) {
		return m.vms, nil
	}
	m.saveStateFunc = func(ctx context.Context, id string) error {
		m.state[id]["VMState"] = vbox.StateSaved
		return nil
	}
	m.enableTraceFunc = func(ctx context.Context, id string, nic int, path string) error {
		m.state[id][fmt.Sprintf("nictrace%d", nic)] = "on"
		m.state[id][fmt.Sprintf("nictracefile%d", nic)] = path
		return nil
	}
	m.disableTraceFunc = func(ctx context.Context, id string, nic int) error {
		m.state[id][fmt.Sprintf("nictrace%d", nic)] = "off"
		return nil
	}
	m.startVMFunc = func(ctx context.Context, id string) error {
		m.state[id]["VMState"] = vbox.StateRunning
		return nil
	}
	m.infoFunc = func(ctx context.Context, id string) (vbox.MachineInfo, error) {
		info, ok := m.state[id]
		if !ok {
			return nil, fmt.Errorf("VM %s not registered", id)
		}
		return info, nil
	}

	return m
}

func (m *mockHypervisor) ListVMs(ctx context.Context) ([]vbox.VM, error) {
	m.log.add("list vms")
	return m.listVMsFunc(ctx)
}

func (m *mockHypervisor) SaveState(ctx context.Context, id string) error {
	m.log.add("controlvm %s savestate", id)
	return m.saveStateFunc(ctx, id)
}

func (m *mockHypervisor) EnableTrace(ctx context.Context, id string, nic int, path string) error {
	m.log.add("modifyvm %s --nictrace%d on --nictracefile%d %s", id, nic, nic, path)
	return m.enableTraceFunc(ctx, id, nic, path)
}

func (m *mockHypervisor) DisableTrace(ctx context.Context, id string, nic int) error {
	m.log.add("modifyvm %s --nictrace%d off", id, nic)
	return m.disableTraceFunc(ctx, id, nic)
}

func (m *mockHypervisor) StartVM(ctx context.Context, id string) error {
	m.log.add("startvm %s", id)
	return m.startVMFunc(ctx, id)
}

// Info is not recorded in the call log; polling frequency is not part of
// the observable sequence.
func (m *mockHypervisor) Info(ctx context.Context, id string) (vbox.MachineInfo, error) {
	m.infoCalls++
	return m.infoFunc(ctx, id)
}

// mockViewer is a mock implementation of the viewerLauncher interface.
type mockViewer struct {
	log        *callLog
	launchFunc func(file, title string) error
}

func newMockViewer(log *callLog) *mockViewer {
	return &mockViewer{
		log:        log,
		launchFunc: func(file, title string) error { return nil },
	}
}

func (m *mockViewer) Launch(file, title string) error {
	m.log.add("viewer %s -o gui.window_title:%s", file, title)
	return m.launchFunc(file, title)
}

// mockRemover records file removals and returns err.
type mockRemover struct {
	log *callLog
	err error
}

func (m *mockRemover) Remove(path string) error {
	m.log.add("remove %s", path)
	return m.err
}

// discardLogger returns a logger that drops all output.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
