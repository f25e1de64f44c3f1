package vbox

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
)

// VM is a registered VirtualBox machine as reported by "list vms".
type VM struct {
	Name string `json:"name" yaml:"name"`
	ID   string `json:"id" yaml:"id"`
}

var vmLinePattern = regexp.MustCompile(`"(.*)" \{(.*)\}`)

// ParseVMList parses the output of "VBoxManage list vms".
//
// Each line has the form `"<name>" {<identifier>}`. Lines that do not match
// are skipped. Order is preserved.
func ParseVMList(out []byte) []VM {
	vms := []VM{}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		m := vmLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		vms = append(vms, VM{Name: m[1], ID: m[2]})
	}

	return vms
}
