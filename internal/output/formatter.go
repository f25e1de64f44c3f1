// Package output renders the VM listing shown by "nictrace --list".
package output

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/jbweber/nictrace/internal/vm"
)

// Format names an output format accepted by -o.
type Format string

const (
	// FormatTable is one row per VM with its traced adapters.
	FormatTable Format = "table"
	// FormatYAML is a YAML sequence of VMs.
	FormatYAML Format = "yaml"
	// FormatJSON is a JSON array of VMs.
	FormatJSON Format = "json"
)

// formats lists every supported format, default first.
var formats = []Format{FormatTable, FormatYAML, FormatJSON}

// Formatter renders a VM listing.
type Formatter interface {
	FormatVMList(vms []vm.VMInfo) (string, error)
}

// Options tunes the table format; other formats ignore it.
type Options struct {
	// NoHeaders omits the header row.
	NoHeaders bool
}

// NewFormatter returns the Formatter for format, or an error naming the
// supported formats.
func NewFormatter(format string, opts Options) (Formatter, error) {
	switch Format(format) {
	case FormatTable:
		return &TableFormatter{NoHeaders: opts.NoHeaders}, nil
	case FormatYAML:
		return &YAMLFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	}

	names := lo.Map(formats, func(f Format, _ int) string { return string(f) })
	return nil, fmt.Errorf("invalid output format %q (valid formats: %s)", format, strings.Join(names, ", "))
}
