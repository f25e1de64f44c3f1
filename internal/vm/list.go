package vm

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jbweber/nictrace/internal/config"
	"github.com/jbweber/nictrace/internal/vbox"
)

// StateUnknown is reported for VMs whose info could not be read.
const StateUnknown = "unknown"

// VMInfo represents information about a VM and its traced adapters.
type VMInfo struct {
	Name       string `json:"name" yaml:"name"`
	ID         string `json:"id" yaml:"id"`
	State      string `json:"state" yaml:"state"`
	TracedNICs []int  `json:"tracedNICs,omitempty" yaml:"tracedNICs,omitempty"`
}

// List lists all registered VMs with their state and traced adapters.
func List(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) ([]VMInfo, error) {
	hv := vbox.NewClient(cfg.VBoxManage, vbox.WithLogger(log))
	return listWithDeps(ctx, hv, log)
}

// listWithDeps lists VMs with injected dependencies.
func listWithDeps(ctx context.Context, hv hypervisor, log logrus.FieldLogger) ([]VMInfo, error) {
	vms, err := hv.ListVMs(ctx)
	if err != nil {
		return nil, &Error{Kind: KindCommand, Msg: "cannot list VMs", Err: err}
	}

	infos := make([]VMInfo, 0, len(vms))
	for _, vm := range vms {
		infos = append(infos, getVMInfo(ctx, hv, vm, log))
	}

	return infos, nil
}

// getVMInfo reads the state of one VM. Failures are logged and the VM is
// reported with StateUnknown.
func getVMInfo(ctx context.Context, hv hypervisor, vm vbox.VM, log logrus.FieldLogger) VMInfo {
	info := VMInfo{Name: vm.Name, ID: vm.ID, State: StateUnknown}

	mi, err := hv.Info(ctx, vm.ID)
	if err != nil {
		log.Warnf("failed to get info for VM %s: %v", vm.Name, err)
		return info
	}

	if state := mi.State(); state != "" {
		info.State = state
	}
	info.TracedNICs = mi.TracedNICs()
	return info
}
