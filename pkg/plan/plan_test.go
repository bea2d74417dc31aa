package plan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validPlan = `border_configs:
  - bn-edge-01.cfg
  - bn-edge-02.cfg
routers:
  - router_id: 1
    hostname: fusion-01
    bgp_router_id: 10.0.0.1
    as_number: 65000
handoffs:
  - border_hostname: BN-EDGE-01
    border_vlan_id: "3001"
    fusion_router_id: 1
    interface_mode: routed
    interface_name: GigabitEthernet0/0/1
    vrf_name: Campus_VN
vrfs:
  - name: Campus_VN
    rd: 65000:100
    rt_export: 65000:100
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	p, err := Load(writePlan(t, validPlan))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(p.BorderConfigs) != 2 {
		t.Errorf("BorderConfigs = %v", p.BorderConfigs)
	}
	if len(p.Routers) != 1 || p.Routers[0].Hostname != "fusion-01" {
		t.Errorf("Routers = %+v", p.Routers)
	}
	if len(p.Handoffs) != 1 || p.Handoffs[0].BorderVLANID != "3001" {
		t.Errorf("Handoffs = %+v", p.Handoffs)
	}
	if len(p.VRFs) != 1 || p.VRFs[0].RD != "65000:100" {
		t.Errorf("VRFs = %+v", p.VRFs)
	}
}

func TestLoadWithDefaults_ASNumber(t *testing.T) {
	content := strings.Replace(validPlan, "    as_number: 65000\n", "", 1)

	// Without a default the unset as_number fails validation.
	if _, err := Load(writePlan(t, content)); err == nil {
		t.Error("Load() without as_number should fail")
	}

	p, err := LoadWithDefaults(writePlan(t, content), Defaults{ASNumber: 65010})
	if err != nil {
		t.Fatalf("LoadWithDefaults() error = %v", err)
	}
	if p.Routers[0].ASNumber != 65010 {
		t.Errorf("ASNumber = %d, want default 65010", p.Routers[0].ASNumber)
	}
}

func TestLoadWithDefaults_ExplicitASWins(t *testing.T) {
	p, err := LoadWithDefaults(writePlan(t, validPlan), Defaults{ASNumber: 65010})
	if err != nil {
		t.Fatalf("LoadWithDefaults() error = %v", err)
	}
	if p.Routers[0].ASNumber != 65000 {
		t.Errorf("ASNumber = %d, want the plan's own 65000", p.Routers[0].ASNumber)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	if _, err := Load(writePlan(t, "routers: [unclosed")); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(string) string
		wantErr string
	}{
		{
			name:    "no border configs",
			mutate:  func(s string) string { return strings.Replace(s, "border_configs:\n  - bn-edge-01.cfg\n  - bn-edge-02.cfg\n", "", 1) },
			wantErr: "border config",
		},
		{
			name:    "no routers",
			mutate:  func(s string) string { return strings.Replace(s, "routers:", "routers: []\nignored:", 1) },
			wantErr: "router is required",
		},
		{
			name:    "handoff references unknown router",
			mutate:  func(s string) string { return strings.Replace(s, "fusion_router_id: 1", "fusion_router_id: 2", 1) },
			wantErr: "matches no router",
		},
		{
			name:    "bad vrf rd",
			mutate:  func(s string) string { return strings.Replace(s, "rd: 65000:100", "rd: bogus", 1) },
			wantErr: "route distinguisher",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writePlan(t, tt.mutate(validPlan)))
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_DuplicateRouterID(t *testing.T) {
	content := strings.Replace(validPlan,
		"    as_number: 65000\n",
		"    as_number: 65000\n  - router_id: 1\n    hostname: fusion-02\n    as_number: 65000\n", 1)
	_, err := Load(writePlan(t, content))
	if err == nil || !strings.Contains(err.Error(), "duplicate router_id") {
		t.Errorf("Load() error = %v, want duplicate router_id", err)
	}
}
