// Package vbox drives the VirtualBox command-line interface (VBoxManage).
//
// Every operation is a single blocking invocation of the VBoxManage binary
// through a Runner. A non-zero exit status is reported as a *CommandError
// carrying the argv, the exit code and the captured stderr.
//
// Output Parsing:
//
// Two VBoxManage output formats are understood:
//   - "list vms": one `"<name>" {<uuid>}` line per registered VM (see ParseVMList)
//   - "showvminfo --machinereadable": key="value" lines (see ParseMachineReadable)
//
// Example usage:
//
//	client := vbox.NewClient("/usr/local/bin/VBoxManage")
//	vms, err := client.ListVMs(ctx)
//	if err != nil {
//	    return err
//	}
//	if err := client.SaveState(ctx, vms[0].ID); err != nil {
//	    return err
//	}
package vbox
