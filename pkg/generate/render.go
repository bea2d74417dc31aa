package generate

import (
	"fmt"
	"strings"
	"text/template"
)

// configTemplate emits IOS-XE configuration text. VRF neighbor map iteration
// is sorted by template range semantics, so output is deterministic.
const configTemplate = `! Fusion router configuration for {{ .Hostname }}
! Generated by fusiongen on {{ .Generated.Format "2006-01-02 15:04:05" }}
!
hostname {{ .Hostname }}
!
{{- range .VRFs }}
vrf definition {{ .Name }}
 rd {{ .RD }}
 !
 address-family ipv4
{{- if .RTExport }}
  route-target export {{ .RTExport }}
{{- end }}
{{- if .RTImport }}
  route-target import {{ .RTImport }}
{{- end }}
 exit-address-family
!
{{- end }}
{{- range .VLANs }}
vlan {{ .ID }}
 name {{ .Name }}
!
{{- end }}
{{- range .Trunks }}
interface {{ .Name }}
 description {{ .Description }}
 switchport mode trunk
 switchport trunk allowed vlan {{ .AllowedVLANs }}
 no shutdown
!
{{- end }}
{{- range .Interfaces }}
interface {{ .RenderName }}
 description {{ .Description }}
{{- if .SubifID }}
 encapsulation dot1Q {{ .SubifID }}
{{- end }}
{{- if .VRFName }}
 vrf forwarding {{ .VRFName }}
{{- end }}
 ip address {{ .IPAddress }} {{ .SubnetMask }}
{{- with .BFD }}
 bfd interval {{ .IntervalMS }} min_rx {{ .MinRxMS }} multiplier {{ .Multiplier }}
{{- end }}
 no shutdown
!
{{- end }}
router bgp {{ .ASNumber }}
{{- if .BGPRouterID }}
 bgp router-id {{ .BGPRouterID }}
{{- end }}
 bgp log-neighbor-changes
{{- range .DefaultNeighbors }}
 neighbor {{ .IP }} remote-as {{ .RemoteAS }}
{{- if .SourceInterface }}
 neighbor {{ .IP }} update-source {{ .SourceInterface }}
{{- end }}
{{- if .BFD }}
 neighbor {{ .IP }} fall-over bfd
{{- end }}
{{- end }}
{{- if .DefaultNeighbors }}
 !
 address-family ipv4
{{- range .DefaultNeighbors }}
  neighbor {{ .IP }} activate
{{- end }}
 exit-address-family
{{- end }}
{{- range $vrf, $neighbors := .VRFNeighbors }}
 !
 address-family ipv4 vrf {{ $vrf }}
{{- range $neighbors }}
  neighbor {{ .IP }} remote-as {{ .RemoteAS }}
{{- if .BFD }}
  neighbor {{ .IP }} fall-over bfd
{{- end }}
  neighbor {{ .IP }} activate
{{- end }}
 exit-address-family
{{- end }}
!
end
`

var tmpl = template.Must(template.New("fusion-config").Parse(configTemplate))

// Render emits the configuration text for one fusion router. A router with
// no usable handoffs renders a single comment line instead of an empty
// skeleton config.
func Render(data *TemplateData) (string, error) {
	if len(data.Interfaces) == 0 {
		return fmt.Sprintf("! No handoffs configured for %s\n", data.Hostname), nil
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering configuration for %s: %w", data.Hostname, err)
	}
	return b.String(), nil
}
