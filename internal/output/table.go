package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"

	"github.com/jbweber/nictrace/internal/vm"
)

// TableFormatter formats VMs as a human-readable table.
type TableFormatter struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// FormatVMList formats a list of VMs as a table.
func (f *TableFormatter) FormatVMList(vms []vm.VMInfo) (string, error) {
	if len(vms) == 0 {
		return "No VMs found\n", nil
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	if !f.NoHeaders {
		_, _ = fmt.Fprintln(w, "NAME\tUUID\tSTATE\tTRACING")
	}

	for _, v := range vms {
		state := v.State
		if state == "" {
			state = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Name, v.ID, state, formatNICs(v.TracedNICs))
	}

	_ = w.Flush()
	return buf.String(), nil
}

// formatNICs renders traced adapters as "nic1,nic3", or "-" for none.
func formatNICs(nics []int) string {
	if len(nics) == 0 {
		return "-"
	}
	return strings.Join(lo.Map(nics, func(n int, _ int) string {
		return fmt.Sprintf("nic%d", n)
	}), ",")
}
