package confparse

import (
	"reflect"
	"testing"

	"github.com/sda-fusion/fusiongen/internal/testutil"
)

const basicConfig = `hostname R1
!
interface Loopback0
 ip address 10.5.80.178 255.255.255.255
!
router bgp 64700
 neighbor 192.168.1.1 remote-as 64701
!
interface Vlan100
 ip address 192.168.201.153 255.255.255.252
 vrf forwarding Campus_VN
 bfd interval 100 min_rx 100 multiplier 3
!
`

func TestParse_BasicDevice(t *testing.T) {
	r := Parse(basicConfig)

	if r.Hostname != "R1" {
		t.Errorf("Hostname = %q, want %q", r.Hostname, "R1")
	}
	if r.Loopback0 != "10.5.80.178" {
		t.Errorf("Loopback0 = %q, want %q", r.Loopback0, "10.5.80.178")
	}

	if r.BGP == nil {
		t.Fatal("BGP = nil, want facts")
	}
	if r.BGP.ASNumber != 64700 {
		t.Errorf("ASNumber = %d, want 64700", r.BGP.ASNumber)
	}
	wantNeighbors := []NeighborFacts{{IP: "192.168.1.1", RemoteAS: 64701}}
	if !reflect.DeepEqual(r.BGP.DefaultNeighbors, wantNeighbors) {
		t.Errorf("DefaultNeighbors = %+v, want %+v", r.BGP.DefaultNeighbors, wantNeighbors)
	}

	if len(r.Interfaces) != 1 {
		t.Fatalf("Interfaces = %+v, want exactly Vlan100", r.Interfaces)
	}
	iface := r.Interfaces[0]
	if iface.Name != "Vlan100" || iface.VLANID != "100" {
		t.Errorf("interface name/vlan = %q/%q, want Vlan100/100", iface.Name, iface.VLANID)
	}
	if iface.IPAddress != "192.168.201.153" || iface.SubnetMask != "255.255.255.252" {
		t.Errorf("interface addr = %s %s", iface.IPAddress, iface.SubnetMask)
	}
	if iface.VRF != NamedVRF("Campus_VN") {
		t.Errorf("VRF = %+v, want Campus_VN", iface.VRF)
	}
	if iface.BFD == nil || *iface.BFD != (BFDParams{IntervalMS: 100, MinRxMS: 100, Multiplier: 3}) {
		t.Errorf("BFD = %+v, want (100,100,3)", iface.BFD)
	}
}

func TestParse_Idempotent(t *testing.T) {
	a := Parse(testutil.BorderNodeConfig)
	b := Parse(testutil.BorderNodeConfig)
	if !reflect.DeepEqual(a, b) {
		t.Error("two parses of identical input differ")
	}
}

func TestParse_VRFScopedNeighbor(t *testing.T) {
	text := `router bgp 64700
 address-family ipv4 vrf Campus_VN
  neighbor 192.168.201.153 remote-as 64700
 exit-address-family
`
	r := Parse(text)
	if r.BGP == nil {
		t.Fatal("BGP = nil")
	}
	if len(r.BGP.DefaultNeighbors) != 0 {
		t.Errorf("DefaultNeighbors = %+v, want empty", r.BGP.DefaultNeighbors)
	}
	want := []NeighborFacts{{IP: "192.168.201.153", RemoteAS: 64700}}
	if !reflect.DeepEqual(r.BGP.VRFNeighbors["Campus_VN"], want) {
		t.Errorf("VRFNeighbors[Campus_VN] = %+v, want %+v", r.BGP.VRFNeighbors["Campus_VN"], want)
	}
}

// A neighbor IP declared inside a VRF address-family must never show up in
// the default table, and vice versa.
func TestParse_ScopeIsolation(t *testing.T) {
	r := Parse(testutil.BorderNodeConfig)
	if r.BGP == nil {
		t.Fatal("BGP = nil")
	}

	for _, n := range r.BGP.DefaultNeighbors {
		if n.IP == "192.168.201.154" {
			t.Error("VRF neighbor leaked into default table")
		}
	}
	for vrf, neighbors := range r.BGP.VRFNeighbors {
		for _, n := range neighbors {
			if n.IP == "192.168.1.1" {
				t.Errorf("default-table neighbor leaked into VRF %s", vrf)
			}
		}
	}
}

func TestParse_NeighborCosmeticFields(t *testing.T) {
	r := Parse(testutil.BorderNodeConfig)
	if r.BGP == nil || len(r.BGP.DefaultNeighbors) != 1 {
		t.Fatalf("DefaultNeighbors = %+v, want one entry", r.BGP)
	}
	n := r.BGP.DefaultNeighbors[0]
	if n.Description != "underlay peer" {
		t.Errorf("Description = %q", n.Description)
	}
	if n.UpdateSource != "Loopback0" {
		t.Errorf("UpdateSource = %q", n.UpdateSource)
	}
}

// An activate (or any non-remote-as) statement alone never creates a
// neighbor entry.
func TestParse_ActivateDoesNotCreateNeighbor(t *testing.T) {
	text := `router bgp 64700
 address-family ipv4 vrf Campus_VN
  neighbor 10.9.9.9 activate
 exit-address-family
`
	r := Parse(text)
	if r.BGP == nil {
		t.Fatal("BGP = nil")
	}
	if len(r.BGP.VRFNeighbors["Campus_VN"]) != 0 {
		t.Errorf("VRFNeighbors = %+v, want none", r.BGP.VRFNeighbors)
	}
}

func TestParse_MalformedASDiscardsBGP(t *testing.T) {
	text := `hostname R1
router bgp banana
 neighbor 192.168.1.1 remote-as 64701
`
	r := Parse(text)
	if r.BGP != nil {
		t.Errorf("BGP = %+v, want nil for malformed AS", r.BGP)
	}
	if r.Hostname != "R1" {
		t.Error("rest of the document should still parse")
	}
	if len(r.Warnings) == 0 {
		t.Error("expected a warning for the discarded BGP block")
	}
}

func TestParse_ZeroASDiscardsBGP(t *testing.T) {
	r := Parse("router bgp 0\n")
	if r.BGP != nil {
		t.Errorf("BGP = %+v, want nil for AS 0", r.BGP)
	}
}

func TestParse_NoBGPBlock(t *testing.T) {
	r := Parse("hostname R1\n")
	if r.BGP != nil {
		t.Errorf("BGP = %+v, want nil when no router bgp line exists", r.BGP)
	}
}

// Interfaces with anything other than a /30 mask are never retained.
func TestParse_InterfaceFilter(t *testing.T) {
	text := `interface Vlan100
 ip address 10.20.30.1 255.255.255.0
 vrf forwarding Campus_VN
!
interface Vlan200
 ip address 10.0.0.1 255.255.255.252
!
interface Vlan300
 description no address at all
!
`
	r := Parse(text)
	if len(r.Interfaces) != 1 || r.Interfaces[0].Name != "Vlan200" {
		t.Errorf("Interfaces = %+v, want only Vlan200", r.Interfaces)
	}
}

// An interface without a vrf forwarding line is explicitly in the global
// table, which is distinguishable from an empty VRF name.
func TestParse_GlobalTableDistinction(t *testing.T) {
	text := `interface Vlan200
 ip address 10.0.0.1 255.255.255.252
`
	r := Parse(text)
	if len(r.Interfaces) != 1 {
		t.Fatalf("Interfaces = %+v", r.Interfaces)
	}
	vrf := r.Interfaces[0].VRF
	if vrf != GlobalTable() {
		t.Errorf("VRF = %+v, want global table marker", vrf)
	}
	if vrf == (VRFMembership{}) {
		t.Error("global table must differ from the undetermined zero value")
	}
	if vrf == NamedVRF("") {
		t.Error("global table must differ from an empty VRF name")
	}
}

func TestParse_IncompleteBFDOmitted(t *testing.T) {
	text := `interface Vlan200
 ip address 10.0.0.1 255.255.255.252
 bfd interval 100 min_rx 100
`
	r := Parse(text)
	if len(r.Interfaces) != 1 {
		t.Fatalf("Interfaces = %+v", r.Interfaces)
	}
	if r.Interfaces[0].BFD != nil {
		t.Errorf("BFD = %+v, want nil for partial group", r.Interfaces[0].BFD)
	}
}

func TestParse_HostnameLastWins(t *testing.T) {
	r := Parse("hostname first\nhostname second\n")
	if r.Hostname != "second" {
		t.Errorf("Hostname = %q, want %q", r.Hostname, "second")
	}
}

func TestParse_DuplicateInterfaceLastWins(t *testing.T) {
	text := `interface Vlan200
 ip address 10.0.0.1 255.255.255.252
!
interface Vlan200
 ip address 10.0.0.5 255.255.255.252
!
`
	r := Parse(text)
	if len(r.Interfaces) != 1 {
		t.Fatalf("Interfaces = %+v, want one entry", r.Interfaces)
	}
	if r.Interfaces[0].IPAddress != "10.0.0.5" {
		t.Errorf("IPAddress = %q, want last occurrence", r.Interfaces[0].IPAddress)
	}
}

func TestParse_PhysicalInterfaces(t *testing.T) {
	r := Parse(testutil.BorderNodeConfig)

	if len(r.Physical) != 2 {
		t.Fatalf("Physical = %+v, want 2 entries", r.Physical)
	}
	trunk := r.Physical[0]
	if trunk.Name != "GigabitEthernet1/0/1" || trunk.Mode != PortModeTrunk {
		t.Errorf("trunk = %+v", trunk)
	}
	if trunk.AllowedVLANs != "3001,3002" {
		t.Errorf("AllowedVLANs = %q", trunk.AllowedVLANs)
	}
	if !r.Physical[1].Shutdown {
		t.Error("GigabitEthernet1/0/2 should be shutdown")
	}
}

func TestParse_FullBorderNode(t *testing.T) {
	r := Parse(testutil.BorderNodeConfig)

	if r.Hostname != "BN-EDGE-01" {
		t.Errorf("Hostname = %q", r.Hostname)
	}
	if r.Loopback0 != "10.5.80.178" {
		t.Errorf("Loopback0 = %q", r.Loopback0)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", r.Warnings)
	}

	// Only the two /30 VLANs survive the candidate filter.
	if len(r.Interfaces) != 2 {
		t.Fatalf("Interfaces = %+v, want 2", r.Interfaces)
	}
	campus := r.Interface("Vlan3001")
	if campus == nil {
		t.Fatal("Vlan3001 not retained")
	}
	if campus != r.VLANInterface("3001") {
		t.Error("name and VLAN id lookups should find the same interface")
	}
	if campus.VRF != NamedVRF("Campus_VN") {
		t.Errorf("Vlan3001 VRF = %+v", campus.VRF)
	}
	global := r.VLANInterface("3002")
	if global == nil {
		t.Fatal("Vlan3002 not retained")
	}
	if global.VRF != GlobalTable() {
		t.Errorf("Vlan3002 VRF = %+v, want global", global.VRF)
	}

	if r.BGP == nil || r.BGP.ASNumber != 64700 {
		t.Fatalf("BGP = %+v", r.BGP)
	}
	if len(r.BGP.VRFNeighbors["Campus_VN"]) != 1 {
		t.Errorf("VRFNeighbors = %+v", r.BGP.VRFNeighbors)
	}
}

func TestParse_LineNumberArtifacts(t *testing.T) {
	text := "  1 |hostname R1\n  2 |interface Vlan200\n  3 | ip address 10.0.0.1 255.255.255.252\n"
	r := Parse(text)
	if r.Hostname != "R1" {
		t.Errorf("Hostname = %q", r.Hostname)
	}
	if len(r.Interfaces) != 1 {
		t.Errorf("Interfaces = %+v", r.Interfaces)
	}
}
