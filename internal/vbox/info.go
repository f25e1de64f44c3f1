package vbox

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// VM states reported in the VMState key of showvminfo.
const (
	StateRunning  = "running"
	StateSaved    = "saved"
	StatePoweroff = "poweroff"
)

// MachineInfo holds the key/value pairs of "showvminfo --machinereadable".
type MachineInfo map[string]string

// ParseMachineReadable parses "showvminfo --machinereadable" output.
// Keys and values may be double-quoted; quotes are removed.
func ParseMachineReadable(out []byte) MachineInfo {
	info := MachineInfo{}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		info[unquote(key)] = unquote(value)
	}

	return info
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// State returns the VMState value, or "" if absent.
func (m MachineInfo) State() string {
	return m["VMState"]
}

// NICTrace reports whether tracing is on for adapter nic and the trace file.
func (m MachineInfo) NICTrace(nic int) (bool, string) {
	on := m[fmt.Sprintf("nictrace%d", nic)] == "on"
	return on, m[fmt.Sprintf("nictracefile%d", nic)]
}

// TracedNICs returns the adapter indexes with tracing on, in ascending order.
func (m MachineInfo) TracedNICs() []int {
	var nics []int
	for key, value := range m {
		rest, ok := strings.CutPrefix(key, "nictrace")
		if !ok || value != "on" {
			continue
		}
		// skips nictracefileN
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		nics = append(nics, n)
	}
	sort.Ints(nics)
	return nics
}
