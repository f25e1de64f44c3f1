package vbox

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleInfo = `name="My VM"
UUID="11111111-2222-3333-4444-555555555555"
VMState="saved"
VMStateChangeTime="2026-10-14T09:12:44.000000000"
nic1="nat"
nictrace1="on"
nictracefile1="/home/op/MyVM-adp1.pcap"
nic2="intnet"
nictrace2="off"
nictracefile2=""
nic3="bridged"
nictrace3="on"
nictracefile3="/tmp/x.pcap"
"SATA-0-0"="/vms/disk.vdi"
`

func TestParseMachineReadable(t *testing.T) {
	info := ParseMachineReadable([]byte(sampleInfo))

	if info["name"] != "My VM" {
		t.Errorf("name = %q, want %q", info["name"], "My VM")
	}
	if info["SATA-0-0"] != "/vms/disk.vdi" {
		t.Errorf("quoted key not unquoted, got %q", info["SATA-0-0"])
	}
	if info.State() != StateSaved {
		t.Errorf("State() = %q, want %q", info.State(), StateSaved)
	}
}

func TestMachineInfo_NICTrace(t *testing.T) {
	info := ParseMachineReadable([]byte(sampleInfo))

	tests := []struct {
		nic      int
		wantOn   bool
		wantFile string
	}{
		{nic: 1, wantOn: true, wantFile: "/home/op/MyVM-adp1.pcap"},
		{nic: 2, wantOn: false, wantFile: ""},
		{nic: 4, wantOn: false, wantFile: ""},
	}

	for _, tt := range tests {
		on, file := info.NICTrace(tt.nic)
		if on != tt.wantOn || file != tt.wantFile {
			t.Errorf("NICTrace(%d) = (%v, %q), want (%v, %q)", tt.nic, on, file, tt.wantOn, tt.wantFile)
		}
	}
}

func TestMachineInfo_TracedNICs(t *testing.T) {
	info := ParseMachineReadable([]byte(sampleInfo))

	if diff := cmp.Diff([]int{1, 3}, info.TracedNICs()); diff != "" {
		t.Errorf("TracedNICs() mismatch (-want +got):\n%s", diff)
	}

	if got := ParseMachineReadable(nil).TracedNICs(); len(got) != 0 {
		t.Errorf("expected no traced NICs, got %v", got)
	}
}
