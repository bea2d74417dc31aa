// Package generate builds fusion-router configurations from parsed border
// node facts plus operator-chosen handoff parameters, and renders them as
// IOS-XE configuration text.
package generate

import (
	"time"

	"github.com/sda-fusion/fusiongen/pkg/confparse"
)

// InterfaceMode selects how handoff links terminate on the fusion router.
type InterfaceMode string

const (
	// ModeRouted puts the /30 directly on a physical interface.
	ModeRouted InterfaceMode = "routed"
	// ModeSVI creates a VLAN interface plus a physical trunk carrying it.
	ModeSVI InterfaceMode = "svi"
	// ModeSubinterface creates a dot1q subinterface on a parent port.
	ModeSubinterface InterfaceMode = "subinterface"
)

// RouterParams identifies one target fusion router. At most two fusion
// routers are supported per generation request.
type RouterParams struct {
	RouterID    int    `json:"router_id" yaml:"router_id"` // 1 or 2
	Hostname    string `json:"hostname" yaml:"hostname"`
	BGPRouterID string `json:"bgp_router_id" yaml:"bgp_router_id"`
	ASNumber    int    `json:"as_number" yaml:"as_number"`
}

// Handoff maps one border-node /30 link onto a fusion router interface.
type Handoff struct {
	BorderHostname string `json:"border_hostname" yaml:"border_hostname"`
	BorderVLANID   string `json:"border_vlan_id" yaml:"border_vlan_id"`
	FusionRouterID int    `json:"fusion_router_id" yaml:"fusion_router_id"`

	Mode InterfaceMode `json:"interface_mode" yaml:"interface_mode"`

	// InterfaceName is the target port for routed mode, or the parent port
	// for subinterface mode.
	InterfaceName string `json:"interface_name,omitempty" yaml:"interface_name,omitempty"`

	// VLANID and PhysicalInterface apply to SVI mode.
	VLANID            string `json:"vlan_id,omitempty" yaml:"vlan_id,omitempty"`
	PhysicalInterface string `json:"physical_interface,omitempty" yaml:"physical_interface,omitempty"`
	AllowedVLANs      string `json:"allowed_vlans,omitempty" yaml:"allowed_vlans,omitempty"`

	// SubifID applies to subinterface mode.
	SubifID string `json:"subif_id,omitempty" yaml:"subif_id,omitempty"`

	// VRFName is the VRF on the fusion router side; empty means the global
	// routing table.
	VRFName string `json:"vrf_name,omitempty" yaml:"vrf_name,omitempty"`
}

// VRFConfig defines a VRF on the fusion router. Empty RTExport/RTImport
// means the corresponding route-target statement is omitted.
type VRFConfig struct {
	Name     string `json:"name" yaml:"name"`
	RD       string `json:"rd" yaml:"rd"`
	RTExport string `json:"rt_export,omitempty" yaml:"rt_export,omitempty"`
	RTImport string `json:"rt_import,omitempty" yaml:"rt_import,omitempty"`
}

// InterfaceData is one rendered handoff interface.
type InterfaceData struct {
	Mode            InterfaceMode
	Name            string // routed mode target
	VLANID          string // svi mode
	ParentInterface string // subinterface mode
	SubifID         string // subinterface mode
	IPAddress       string
	SubnetMask      string
	Description     string
	VRFName         string // empty = global table
	BFD             *confparse.BFDParams
}

// VLANDef is a VLAN created for SVI-mode handoffs.
type VLANDef struct {
	ID   string
	Name string
}

// TrunkData is a physical trunk created for SVI-mode handoffs.
type TrunkData struct {
	Name         string
	Description  string
	AllowedVLANs string
}

// NeighborData is one BGP neighbor statement on the fusion router.
type NeighborData struct {
	IP              string // border node side of the /30
	RemoteAS        int
	SourceInterface string
	BFD             bool
}

// TemplateData is everything the renderer needs for one fusion router.
type TemplateData struct {
	Hostname    string
	BGPRouterID string
	ASNumber    int
	Mode        InterfaceMode
	Generated   time.Time

	VRFs             []VRFConfig
	VLANs            []VLANDef
	Trunks           []TrunkData
	Interfaces       []InterfaceData
	DefaultNeighbors []NeighborData
	VRFNeighbors     map[string][]NeighborData

	// Warnings records handoffs that were skipped (unknown border node or
	// VLAN). They are reported to the caller, not rendered.
	Warnings []string
}
