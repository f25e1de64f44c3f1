// Package naming provides the naming conventions for capture files and
// viewer windows.
//
// The rules are deterministic so that "stop" finds the file "start" created
// without any persisted state.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CaptureFileName returns the capture file name for a machine adapter.
// Spaces are removed from the machine name, nothing else is altered.
//
// Example: "My VM", 1 → MyVM-adp1.pcap
func CaptureFileName(machine string, nic int) string {
	return fmt.Sprintf("%s-adp%d.pcap", strings.ReplaceAll(machine, " ", ""), nic)
}

// CaptureFile returns the full capture file path inside dir.
// Format: {dir}/{machine without spaces}-adp{nic}.pcap
func CaptureFile(dir, machine string, nic int) string {
	return filepath.Join(dir, CaptureFileName(machine, nic))
}

// WindowTitle returns the viewer window title for a machine adapter.
// Format: "{machine} nic{nic}"
func WindowTitle(machine string, nic int) string {
	return fmt.Sprintf("%s nic%d", machine, nic)
}
