package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jbweber/nictrace/internal/vm"
)

// JSONFormatter renders VMs as an indented JSON array.
type JSONFormatter struct{}

// FormatVMList renders vms; an empty listing is "[]".
func (f *JSONFormatter) FormatVMList(vms []vm.VMInfo) (string, error) {
	if vms == nil {
		vms = []vm.VMInfo{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(vms); err != nil {
		return "", fmt.Errorf("failed to encode %d VMs as JSON: %w", len(vms), err)
	}

	return buf.String(), nil
}
