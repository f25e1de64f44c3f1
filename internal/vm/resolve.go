package vm

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jbweber/nictrace/internal/vbox"
)

// Resolve returns the VM whose name is exactly machine.
//
// Matching is case-sensitive. If no name matches and machine is a UUID, the
// VM with that identifier is returned. Several VMs sharing the name is an
// ErrAmbiguousName failure; the caller can pass the identifier instead.
func Resolve(machine string, vms []vbox.VM) (vbox.VM, error) {
	matches := lo.Filter(vms, func(vm vbox.VM, _ int) bool {
		return vm.Name == machine
	})

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		if vm, ok := resolveByID(machine, vms); ok {
			return vm, nil
		}
		return vbox.VM{}, &Error{
			Kind: KindNotFound,
			Err:  fmt.Errorf("%w: %q", ErrVMNotFound, machine),
		}
	default:
		ids := lo.Map(matches, func(vm vbox.VM, _ int) string { return vm.ID })
		err := fmt.Errorf("%w: %q matches %d VMs (%s), use the identifier",
			ErrAmbiguousName, machine, len(matches), strings.Join(ids, ", "))
		return vbox.VM{}, &Error{Kind: KindNotFound, Err: err}
	}
}

func resolveByID(machine string, vms []vbox.VM) (vbox.VM, bool) {
	want, err := uuid.Parse(machine)
	if err != nil {
		return vbox.VM{}, false
	}

	return lo.Find(vms, func(vm vbox.VM) bool {
		id, err := uuid.Parse(vm.ID)
		return err == nil && id == want
	})
}
