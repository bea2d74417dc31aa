package generate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sda-fusion/fusiongen/pkg/util"
)

var (
	vrfNameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	rdASNRe   = regexp.MustCompile(`^(\d+):(\d+)$`)
	rdIPRe    = regexp.MustCompile(`^([\d.]+):(\d+)$`)
)

const maxVRFNameLen = 32

// ValidateVRFName checks the VRF name format: non-empty, at most 32
// characters, letters/digits/underscore/hyphen only.
func ValidateVRFName(name string) error {
	if name == "" {
		return util.NewValidationError("VRF name is required")
	}
	if len(name) > maxVRFNameLen {
		return util.NewValidationError(fmt.Sprintf("VRF name %q exceeds %d characters", name, maxVRFNameLen))
	}
	if !vrfNameRe.MatchString(name) {
		return util.NewValidationError(fmt.Sprintf("VRF name %q must contain only letters, numbers, underscores, and hyphens", name))
	}
	return nil
}

// ValidateRouteDistinguisher checks RD (and route-target) format:
// "ASN:NN" with ASN <= 4294967295 and NN <= 65535, or "IP:NN" with a valid
// IPv4 address and NN <= 65535.
func ValidateRouteDistinguisher(rd string) error {
	if rd == "" {
		return util.NewValidationError("route distinguisher is required")
	}

	if m := rdASNRe.FindStringSubmatch(rd); m != nil {
		asn, err1 := strconv.ParseUint(m[1], 10, 64)
		nn, err2 := strconv.ParseUint(m[2], 10, 64)
		if err1 == nil && err2 == nil && asn <= 4294967295 && nn <= 65535 {
			return nil
		}
	}
	if m := rdIPRe.FindStringSubmatch(rd); m != nil && util.IsValidIPv4(m[1]) {
		if nn, err := strconv.ParseUint(m[2], 10, 64); err == nil && nn <= 65535 {
			return nil
		}
	}

	return util.NewValidationError(
		fmt.Sprintf("route distinguisher %q must be 'ASN:NN' (e.g. 65000:100) or 'IP:NN' (e.g. 10.0.0.1:100)", rd))
}

// ValidateVRFConfig checks one VRF definition including its route targets.
func ValidateVRFConfig(vrf VRFConfig) error {
	v := &util.ValidationBuilder{}

	if err := ValidateVRFName(vrf.Name); err != nil {
		v.AddError(err.Error())
	}
	if err := ValidateRouteDistinguisher(vrf.RD); err != nil {
		v.AddErrorf("vrf %s: %v", vrf.Name, err)
	}
	if vrf.RTExport != "" {
		if err := ValidateRouteDistinguisher(vrf.RTExport); err != nil {
			v.AddErrorf("vrf %s rt export: %v", vrf.Name, err)
		}
	}
	if vrf.RTImport != "" {
		if err := ValidateRouteDistinguisher(vrf.RTImport); err != nil {
			v.AddErrorf("vrf %s rt import: %v", vrf.Name, err)
		}
	}

	return v.Build()
}

// ValidateRouterParams checks one fusion router definition.
func ValidateRouterParams(p RouterParams) error {
	v := &util.ValidationBuilder{}

	v.Add(p.RouterID == 1 || p.RouterID == 2, fmt.Sprintf("router_id must be 1 or 2, got %d", p.RouterID))
	v.Add(p.Hostname != "", "hostname is required")
	if p.BGPRouterID != "" && !util.IsValidIPv4(p.BGPRouterID) {
		v.AddErrorf("invalid BGP router-id %q", p.BGPRouterID)
	}
	if err := util.ValidateASN(p.ASNumber); err != nil {
		v.AddError(err.Error())
	}

	return v.Build()
}

// ValidateHandoff checks mode-specific required fields of one handoff.
func ValidateHandoff(h Handoff) error {
	v := &util.ValidationBuilder{}

	v.Add(h.BorderHostname != "", "border_hostname is required")
	v.Add(h.BorderVLANID != "", "border_vlan_id is required")
	v.Add(h.FusionRouterID == 1 || h.FusionRouterID == 2,
		fmt.Sprintf("fusion_router_id must be 1 or 2, got %d", h.FusionRouterID))

	switch h.Mode {
	case ModeRouted:
		v.Add(h.InterfaceName != "", "routed mode requires interface_name")
	case ModeSVI:
		v.Add(h.VLANID != "", "svi mode requires vlan_id")
		v.Add(h.PhysicalInterface != "", "svi mode requires physical_interface")
	case ModeSubinterface:
		v.Add(h.InterfaceName != "", "subinterface mode requires interface_name")
		v.Add(h.SubifID != "", "subinterface mode requires subif_id")
	default:
		v.AddErrorf("unknown interface_mode %q", h.Mode)
	}

	if h.VRFName != "" {
		if err := ValidateVRFName(h.VRFName); err != nil {
			v.AddError(err.Error())
		}
	}

	return v.Build()
}

// vrfNames returns the names referenced by a set of handoffs, deduplicated,
// in first-seen order. The empty (global table) name is excluded.
func vrfNames(handoffs []Handoff) []string {
	seen := make(map[string]bool)
	var names []string
	for _, h := range handoffs {
		name := strings.TrimSpace(h.VRFName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}
