// Package plan loads generation plans: a YAML document naming the border
// node configuration files to parse, the fusion routers to generate, and
// the handoff and VRF definitions that tie them together.
package plan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sda-fusion/fusiongen/pkg/generate"
)

// Plan is one complete generation request.
type Plan struct {
	// BorderConfigs lists paths to border node configuration files,
	// relative to the plan file's directory unless absolute.
	BorderConfigs []string `yaml:"border_configs"`

	Routers  []generate.RouterParams `yaml:"routers"`
	Handoffs []generate.Handoff      `yaml:"handoffs"`
	VRFs     []generate.VRFConfig    `yaml:"vrfs,omitempty"`
}

// Defaults fill plan fields the operator omitted, typically from the
// persistent user settings. Zero values leave the plan untouched.
type Defaults struct {
	// ASNumber is applied to routers whose as_number is unset.
	ASNumber int
}

// Load parses a plan YAML file and validates required fields.
func Load(path string) (*Plan, error) {
	return LoadWithDefaults(path, Defaults{})
}

// LoadWithDefaults parses a plan YAML file, fills omitted fields from d,
// and validates the result.
func LoadWithDefaults(path string, d Defaults) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing plan YAML: %w", err)
	}

	if d.ASNumber != 0 {
		for i := range p.Routers {
			if p.Routers[i].ASNumber == 0 {
				p.Routers[i].ASNumber = d.ASNumber
			}
		}
	}

	if err := Validate(&p); err != nil {
		return nil, fmt.Errorf("validating plan: %w", err)
	}

	return &p, nil
}

// Validate checks plan-level consistency. Per-field checks on routers,
// handoffs, and VRFs happen again inside generate.Build; this catches the
// cross-references a plan file can get wrong.
func Validate(p *Plan) error {
	if len(p.BorderConfigs) == 0 {
		return fmt.Errorf("at least one border config is required")
	}
	if len(p.Routers) == 0 {
		return fmt.Errorf("at least one router is required")
	}
	if len(p.Routers) > 2 {
		return fmt.Errorf("at most 2 routers are supported, got %d", len(p.Routers))
	}

	ids := make(map[int]bool)
	for i, r := range p.Routers {
		if err := generate.ValidateRouterParams(r); err != nil {
			return fmt.Errorf("router %d: %w", i, err)
		}
		if ids[r.RouterID] {
			return fmt.Errorf("router %d: duplicate router_id %d", i, r.RouterID)
		}
		ids[r.RouterID] = true
	}

	for i, h := range p.Handoffs {
		if err := generate.ValidateHandoff(h); err != nil {
			return fmt.Errorf("handoff %d: %w", i, err)
		}
		if !ids[h.FusionRouterID] {
			return fmt.Errorf("handoff %d: fusion_router_id %d matches no router", i, h.FusionRouterID)
		}
	}

	for _, vrf := range p.VRFs {
		if err := generate.ValidateVRFConfig(vrf); err != nil {
			return err
		}
	}

	return nil
}
