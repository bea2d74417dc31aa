package generate

import (
	"fmt"
	"time"

	"github.com/sda-fusion/fusiongen/pkg/confparse"
	"github.com/sda-fusion/fusiongen/pkg/util"
)

// Build assembles the template data for one fusion router from parsed border
// node records, the operator's handoff choices, and VRF definitions.
//
// Handoffs that reference an unknown border node or VLAN are skipped with a
// warning, matching the tool's best-effort posture toward imperfect input.
// A /30 address whose peer cannot be resolved is a hard error: rendering a
// guessed address would produce an undeployable configuration.
func Build(params RouterParams, borderNodes []*confparse.DeviceRecord, handoffs []Handoff, vrfs []VRFConfig) (*TemplateData, error) {
	if err := ValidateRouterParams(params); err != nil {
		return nil, err
	}
	v := &util.ValidationBuilder{}
	defined := make(map[string]bool)
	for _, vrf := range vrfs {
		if err := ValidateVRFConfig(vrf); err != nil {
			v.AddError(err.Error())
		}
		defined[vrf.Name] = true
	}

	// A router terminates all its handoffs one way; mixing routed, SVI,
	// and subinterface sections in one config is rejected up front.
	var mode InterfaceMode
	var mine []Handoff
	for i, h := range handoffs {
		if h.FusionRouterID != params.RouterID {
			continue
		}
		if err := ValidateHandoff(h); err != nil {
			v.AddErrorf("handoff %d: %v", i, err)
			continue
		}
		if h.VRFName != "" && !defined[h.VRFName] {
			v.AddErrorf("handoff %d references undefined VRF %q", i, h.VRFName)
			continue
		}
		if mode == "" {
			mode = h.Mode
		} else if h.Mode != mode {
			v.AddErrorf("handoff %d: interface_mode %q conflicts with %q, a router uses a single mode", i, h.Mode, mode)
			continue
		}
		mine = append(mine, h)
	}
	if err := v.Build(); err != nil {
		return nil, err
	}

	data := &TemplateData{
		Hostname:     params.Hostname,
		BGPRouterID:  params.BGPRouterID,
		ASNumber:     params.ASNumber,
		Mode:         mode,
		Generated:    time.Now(),
		VRFNeighbors: make(map[string][]NeighborData),
	}

	// Only VRFs actually used by this router's handoffs are rendered.
	used := make(map[string]bool)
	for _, name := range vrfNames(mine) {
		used[name] = true
	}
	for _, vrf := range vrfs {
		if used[vrf.Name] {
			data.VRFs = append(data.VRFs, vrf)
		}
	}

	records := recordsByHostname(borderNodes)
	trunkSeen := make(map[string]bool)

	for _, h := range mine {
		border, ok := records[h.BorderHostname]
		if !ok {
			data.Warnings = append(data.Warnings,
				fmt.Sprintf("skipping handoff: no uploaded configuration for border node %q", h.BorderHostname))
			continue
		}
		link := border.VLANInterface(h.BorderVLANID)
		if link == nil {
			data.Warnings = append(data.Warnings,
				fmt.Sprintf("skipping handoff: %s has no /30 interface Vlan%s", h.BorderHostname, h.BorderVLANID))
			continue
		}
		if border.BGP == nil {
			data.Warnings = append(data.Warnings,
				fmt.Sprintf("skipping handoff: %s has no BGP configuration to peer with", h.BorderHostname))
			continue
		}

		fusionIP, err := util.ResolvePeerAddress(link.IPAddress, link.PrefixLen)
		if err != nil {
			return nil, fmt.Errorf("handoff %s Vlan%s: %w", h.BorderHostname, h.BorderVLANID, err)
		}

		iface, sourceIntf := buildInterface(h, link, fusionIP)
		data.Interfaces = append(data.Interfaces, iface)

		if h.Mode == ModeSVI {
			data.VLANs = append(data.VLANs, VLANDef{
				ID:   h.VLANID,
				Name: "HANDOFF_" + h.BorderVLANID,
			})
			if !trunkSeen[h.PhysicalInterface] {
				trunkSeen[h.PhysicalInterface] = true
				allowed := h.AllowedVLANs
				if allowed == "" {
					allowed = h.VLANID
				}
				data.Trunks = append(data.Trunks, TrunkData{
					Name:         h.PhysicalInterface,
					Description:  "Physical link to " + h.BorderHostname,
					AllowedVLANs: allowed,
				})
			}
		}

		neighbor := NeighborData{
			IP:              link.IPAddress, // peer with the border node side
			RemoteAS:        border.BGP.ASNumber,
			SourceInterface: sourceIntf,
			BFD:             link.BFD != nil,
		}
		if h.VRFName != "" {
			data.VRFNeighbors[h.VRFName] = append(data.VRFNeighbors[h.VRFName], neighbor)
		} else {
			data.DefaultNeighbors = append(data.DefaultNeighbors, neighbor)
		}
	}

	return data, nil
}

// buildInterface maps one handoff to its fusion-side interface facts and
// returns the interface plus the BGP update-source name.
func buildInterface(h Handoff, link *confparse.InterfaceFacts, fusionIP string) (InterfaceData, string) {
	iface := InterfaceData{
		Mode:       h.Mode,
		IPAddress:  fusionIP,
		SubnetMask: link.SubnetMask,
		VRFName:    h.VRFName,
		BFD:        link.BFD,
	}

	switch h.Mode {
	case ModeSVI:
		iface.VLANID = h.VLANID
		iface.Description = fmt.Sprintf("L3 Handoff to %s VLAN%s", h.BorderHostname, h.BorderVLANID)
	case ModeSubinterface:
		iface.ParentInterface = h.InterfaceName
		iface.SubifID = h.SubifID
		iface.Description = fmt.Sprintf("Subif to %s VLAN%s", h.BorderHostname, h.BorderVLANID)
	default: // routed
		iface.Name = h.InterfaceName
		iface.Description = fmt.Sprintf("Handoff to %s VLAN%s", h.BorderHostname, h.BorderVLANID)
	}

	return iface, iface.RenderName()
}

// RenderName is the interface name as it appears in configuration text.
func (i InterfaceData) RenderName() string {
	switch i.Mode {
	case ModeSVI:
		return "Vlan" + i.VLANID
	case ModeSubinterface:
		return i.ParentInterface + "." + i.SubifID
	default:
		return i.Name
	}
}

func recordsByHostname(records []*confparse.DeviceRecord) map[string]*confparse.DeviceRecord {
	byName := make(map[string]*confparse.DeviceRecord, len(records))
	for _, r := range records {
		if r != nil && r.Hostname != "" {
			byName[r.Hostname] = r
		}
	}
	return byName
}
