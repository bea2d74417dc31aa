// Package confparse extracts structured facts from Cisco IOS-XE
// configuration text: hostname, Loopback0 address, BGP process facts
// (default-table and per-VRF neighbors), and point-to-point interface
// candidates. Parsing is a single pass and fails soft: malformed sections
// degrade the record and add a warning instead of aborting.
package confparse

import "fmt"

// DeviceRecord holds all facts extracted from one configuration document.
// Records are immutable after Parse returns; re-parsing produces a new record.
type DeviceRecord struct {
	Hostname  string `json:"hostname"`
	Loopback0 string `json:"loopback0,omitempty"`

	// BGP is nil when no router bgp block was parsed. A device with no BGP
	// configured must be distinguishable from one with AS 0.
	BGP *BGPFacts `json:"bgp,omitempty"`

	// Interfaces holds point-to-point handoff candidates (/30 mask), in
	// source order. Duplicate names keep their first position but carry the
	// last occurrence's facts.
	Interfaces []InterfaceFacts `json:"interfaces"`

	// Physical holds L2/L3 classification of physical ports, used when the
	// operator picks a trunk for SVI-mode handoffs. Not filtered by mask.
	Physical []PhysicalInterface `json:"physical_interfaces"`

	// Warnings collects fail-soft parse problems (malformed AS, ambiguous
	// nesting, incomplete BFD groups).
	Warnings []string `json:"warnings,omitempty"`
}

// BGPFacts describes one router bgp process.
type BGPFacts struct {
	ASNumber int `json:"as_number"`

	// DefaultNeighbors are neighbors of the default routing table: bare
	// neighbor statements under router bgp or inside a non-VRF ipv4
	// address-family. Unique by IP, source order.
	DefaultNeighbors []NeighborFacts `json:"default_neighbors"`

	// VRFNeighbors maps VRF name to the neighbors declared inside that
	// VRF's address-family block.
	VRFNeighbors map[string][]NeighborFacts `json:"vrf_neighbors"`
}

// NeighborFacts describes one BGP neighbor. Only a remote-as statement
// creates an entry; description and update-source are cosmetic.
type NeighborFacts struct {
	IP           string `json:"ip"`
	RemoteAS     int    `json:"remote_as"`
	Description  string `json:"description,omitempty"`
	UpdateSource string `json:"update_source,omitempty"`
}

// VRFMembership is the routing-table membership of an interface. The zero
// value means "not determined": an interface that finished parsing without a
// vrf forwarding line is explicitly marked GlobalTable, which is a different
// state from both the zero value and any named VRF.
type VRFMembership struct {
	Global bool   `json:"global"`
	Name   string `json:"name,omitempty"`
}

// GlobalTable marks an interface as belonging to the global routing table.
func GlobalTable() VRFMembership {
	return VRFMembership{Global: true}
}

// NamedVRF marks an interface as belonging to the named VRF.
func NamedVRF(name string) VRFMembership {
	return VRFMembership{Name: name}
}

func (v VRFMembership) String() string {
	if v.Global {
		return "global"
	}
	if v.Name == "" {
		return "undetermined"
	}
	return v.Name
}

// BFDParams is the bfd interval triple. All three fields are set together;
// a malformed bfd line leaves the whole group absent.
type BFDParams struct {
	IntervalMS int `json:"interval_ms"`
	MinRxMS    int `json:"min_rx_ms"`
	Multiplier int `json:"multiplier"`
}

func (b BFDParams) String() string {
	return fmt.Sprintf("interval %d min_rx %d multiplier %d", b.IntervalMS, b.MinRxMS, b.Multiplier)
}

// InterfaceFacts describes one retained point-to-point candidate interface.
type InterfaceFacts struct {
	Name        string        `json:"name"`
	VLANID      string        `json:"vlan_id,omitempty"` // set for VlanN interfaces
	IPAddress   string        `json:"ip_address"`
	SubnetMask  string        `json:"subnet_mask"`
	PrefixLen   int           `json:"prefix_len"`
	VRF         VRFMembership `json:"vrf"`
	BFD         *BFDParams    `json:"bfd,omitempty"`
	Description string        `json:"description,omitempty"`
}

// PortMode classifies a physical interface.
type PortMode string

const (
	PortModeTrunk  PortMode = "trunk"
	PortModeAccess PortMode = "access"
	PortModeRouted PortMode = "routed"
)

// PhysicalInterface describes a physical port or port-channel.
type PhysicalInterface struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Mode         PortMode `json:"mode,omitempty"`
	AllowedVLANs string   `json:"allowed_vlans,omitempty"`
	AccessVLAN   string   `json:"access_vlan,omitempty"`
	Shutdown     bool     `json:"shutdown"`
	IPAddress    string   `json:"ip_address,omitempty"`
	SubnetMask   string   `json:"subnet_mask,omitempty"`
}

// Interface returns the retained interface with the given name, or nil.
func (r *DeviceRecord) Interface(name string) *InterfaceFacts {
	for i := range r.Interfaces {
		if r.Interfaces[i].Name == name {
			return &r.Interfaces[i]
		}
	}
	return nil
}

// VLANInterface returns the retained Vlan interface with the given VLAN id, or nil.
func (r *DeviceRecord) VLANInterface(vlanID string) *InterfaceFacts {
	for i := range r.Interfaces {
		if r.Interfaces[i].VLANID == vlanID {
			return &r.Interfaces[i]
		}
	}
	return nil
}
