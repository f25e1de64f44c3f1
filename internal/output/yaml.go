package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/nictrace/internal/vm"
)

// YAMLFormatter formats VMs as YAML.
type YAMLFormatter struct{}

// FormatVMList formats a list of VMs as a YAML sequence.
func (f *YAMLFormatter) FormatVMList(vms []vm.VMInfo) (string, error) {
	if len(vms) == 0 {
		return "[]\n", nil
	}

	data, err := yaml.Marshal(vms)
	if err != nil {
		return "", fmt.Errorf("failed to marshal VMs to YAML: %w", err)
	}

	return string(data), nil
}
