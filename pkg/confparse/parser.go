package confparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sda-fusion/fusiongen/pkg/util"
)

var (
	neighborRemoteASRe = regexp.MustCompile(`^neighbor\s+([\d.]+)\s+remote-as\s+(\d+)\s*$`)
	neighborDescRe     = regexp.MustCompile(`^neighbor\s+([\d.]+)\s+description\s+(.+)$`)
	neighborUpdSrcRe   = regexp.MustCompile(`^neighbor\s+([\d.]+)\s+update-source\s+(\S+)\s*$`)
	bfdIntervalRe      = regexp.MustCompile(`^bfd interval (\d+) min_rx (\d+) multiplier (\d+)\s*$`)
	physNameRe         = regexp.MustCompile(`^(GigabitEthernet|TenGigabitEthernet|TwentyFiveGigE|FortyGigE|HundredGigE|Port-channel)[\d/.]+$`)
	vlanNameRe         = regexp.MustCompile(`^Vlan(\d+)$`)
)

// pointToPointPrefixLen is the only mask retained as a handoff candidate.
const pointToPointPrefixLen = 30

// Parse extracts a DeviceRecord from raw IOS-XE configuration text. It is a
// pure function: identical input yields an identical record, and no state
// survives between calls. Structural problems degrade the record and append
// a warning instead of returning an error.
func Parse(text string) *DeviceRecord {
	scanned, warnings := ScanBlocks(NormalizeLines(text))

	p := &parser{
		record:     &DeviceRecord{},
		neighbors:  make(map[string]map[string]*NeighborFacts),
		interfaces: make(map[string]*interfaceBuilder),
	}
	p.record.Warnings = warnings

	for _, line := range scanned {
		p.consume(line)
	}

	return p.finish()
}

// interfaceBuilder accumulates sub-commands of one interface block.
type interfaceBuilder struct {
	name        string
	ipAddress   string
	subnetMask  string
	vrf         VRFMembership // zero value until the block ends
	bfd         *BFDParams
	description string
	shutdown    bool
	mode        PortMode
	allowedVLAN string
	accessVLAN  string
}

// parser carries single-pass extraction state. It is created per Parse call;
// nothing is shared between documents.
type parser struct {
	record *DeviceRecord

	bgpSeen   bool
	bgpASRaw  string
	bgpOrder  []scopedNeighbor                      // declaration order
	neighbors map[string]map[string]*NeighborFacts // scope -> ip -> facts

	interfaces map[string]*interfaceBuilder
	ifaceOrder []string
}

// scopedNeighbor remembers where a neighbor was declared. Scope "" is the
// default table; any other value is a VRF name.
type scopedNeighbor struct {
	scope string
	ip    string
}

func (p *parser) consume(line ScannedLine) {
	switch {
	case len(line.Path) == 0:
		p.consumeTopLevel(line.Text)
	case strings.HasPrefix(line.Path[0], "router bgp"):
		p.consumeBGP(line)
	case strings.HasPrefix(line.Path[0], "interface "):
		p.consumeInterface(line.Path[0], line.Text)
	}
}

func (p *parser) consumeTopLevel(text string) {
	switch {
	case strings.HasPrefix(text, "hostname "):
		// Last occurrence wins.
		p.record.Hostname = strings.TrimSpace(strings.TrimPrefix(text, "hostname "))
	case strings.HasPrefix(text, "router bgp "):
		p.bgpSeen = true
		p.bgpASRaw = strings.TrimSpace(strings.TrimPrefix(text, "router bgp "))
	case strings.HasPrefix(text, "interface "):
		name := strings.TrimSpace(strings.TrimPrefix(text, "interface "))
		if _, ok := p.interfaces[name]; !ok {
			p.ifaceOrder = append(p.ifaceOrder, name)
		}
		// A repeated block replaces earlier facts but keeps its position.
		p.interfaces[name] = &interfaceBuilder{name: name}
	}
}

// consumeBGP handles lines nested anywhere under a router bgp block. The
// neighbor's scope is the VRF of the textually enclosing address-family:
// a neighbor line never leaks into a sibling address-family or the bare
// BGP scope.
func (p *parser) consumeBGP(line ScannedLine) {
	scope := ""
	for _, header := range line.Path {
		if strings.HasPrefix(header, "address-family") {
			scope = vrfOfAddressFamily(header)
		}
	}

	text := line.Text
	if m := neighborRemoteASRe.FindStringSubmatch(text); m != nil {
		remoteAS, err := strconv.Atoi(m[2])
		if err != nil || util.ValidateASN(remoteAS) != nil {
			p.warnf("ignoring neighbor %s: bad remote-as %q", m[1], m[2])
			return
		}
		p.addNeighbor(scope, m[1], remoteAS)
		return
	}
	// Cosmetic attributes attach to an existing entry; they never create one.
	if m := neighborDescRe.FindStringSubmatch(text); m != nil {
		if n := p.neighbor(scope, m[1]); n != nil {
			n.Description = strings.TrimSpace(m[2])
		}
		return
	}
	if m := neighborUpdSrcRe.FindStringSubmatch(text); m != nil {
		if n := p.neighbor(scope, m[1]); n != nil {
			n.UpdateSource = m[2]
		}
	}
}

func (p *parser) addNeighbor(scope, ip string, remoteAS int) {
	if p.neighbors[scope] == nil {
		p.neighbors[scope] = make(map[string]*NeighborFacts)
	}
	if existing, ok := p.neighbors[scope][ip]; ok {
		// Repeated remote-as for the same IP in the same scope: last wins,
		// original position kept.
		existing.RemoteAS = remoteAS
		return
	}
	p.neighbors[scope][ip] = &NeighborFacts{IP: ip, RemoteAS: remoteAS}
	p.bgpOrder = append(p.bgpOrder, scopedNeighbor{scope: scope, ip: ip})
}

func (p *parser) neighbor(scope, ip string) *NeighborFacts {
	if p.neighbors[scope] == nil {
		return nil
	}
	return p.neighbors[scope][ip]
}

// vrfOfAddressFamily returns the VRF name of an address-family header, or
// "" for the default table (address-family ipv4 and friends).
func vrfOfAddressFamily(header string) string {
	fields := strings.Fields(header)
	for i, f := range fields {
		if f == "vrf" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

func (p *parser) consumeInterface(header, text string) {
	name := strings.TrimSpace(strings.TrimPrefix(header, "interface "))
	b := p.interfaces[name]
	if b == nil {
		return
	}

	switch {
	case strings.HasPrefix(text, "ip address "):
		fields := strings.Fields(text)
		if len(fields) >= 4 {
			b.ipAddress = fields[2]
			b.subnetMask = fields[3]
		}
		b.mode = PortModeRouted
	case strings.HasPrefix(text, "vrf forwarding "):
		b.vrf = NamedVRF(strings.TrimSpace(strings.TrimPrefix(text, "vrf forwarding ")))
	case strings.HasPrefix(text, "description "):
		b.description = strings.TrimSpace(strings.TrimPrefix(text, "description "))
	case strings.HasPrefix(text, "bfd interval "):
		if m := bfdIntervalRe.FindStringSubmatch(text); m != nil {
			b.bfd = &BFDParams{
				IntervalMS: mustInt(m[1]),
				MinRxMS:    mustInt(m[2]),
				Multiplier: mustInt(m[3]),
			}
		} else {
			// Partial BFD config is treated as absent, not an error.
			util.Debugf("interface %s: incomplete bfd parameters dropped: %q", name, text)
		}
	case text == "switchport mode trunk":
		b.mode = PortModeTrunk
	case text == "switchport mode access":
		b.mode = PortModeAccess
	case strings.HasPrefix(text, "switchport trunk allowed vlan "):
		b.allowedVLAN = strings.TrimPrefix(text, "switchport trunk allowed vlan ")
	case strings.HasPrefix(text, "switchport access vlan "):
		b.accessVLAN = strings.TrimPrefix(text, "switchport access vlan ")
	case text == "shutdown":
		b.shutdown = true
	}
}

func (p *parser) warnf(format string, args ...interface{}) {
	p.record.Warnings = append(p.record.Warnings, fmt.Sprintf(format, args...))
}

// finish assembles the aggregated record from extraction state.
func (p *parser) finish() *DeviceRecord {
	r := p.record

	if p.bgpSeen {
		r.BGP = p.buildBGP()
	}

	for _, name := range p.ifaceOrder {
		b := p.interfaces[name]

		if name == "Loopback0" {
			if b.ipAddress != "" {
				r.Loopback0 = b.ipAddress
			}
			continue
		}

		if m := physNameRe.FindStringSubmatch(name); m != nil {
			r.Physical = append(r.Physical, PhysicalInterface{
				Name:         name,
				Description:  b.description,
				Mode:         b.mode,
				AllowedVLANs: b.allowedVLAN,
				AccessVLAN:   b.accessVLAN,
				Shutdown:     b.shutdown,
				IPAddress:    b.ipAddress,
				SubnetMask:   b.subnetMask,
			})
		}

		if iface, ok := p.buildCandidate(b); ok {
			r.Interfaces = append(r.Interfaces, iface)
		}
	}

	util.WithDevice(r.Hostname).Debugf("parsed %d candidate interfaces, %d warnings",
		len(r.Interfaces), len(r.Warnings))

	return r
}

func (p *parser) buildBGP() *BGPFacts {
	asNumber, err := strconv.Atoi(p.bgpASRaw)
	if err != nil || util.ValidateASN(asNumber) != nil {
		// The whole BGP block is discarded on a malformed AS number. The
		// rest of the record stays usable.
		p.warnf("discarding router bgp block: invalid AS number %q", p.bgpASRaw)
		return nil
	}

	bgp := &BGPFacts{
		ASNumber:     asNumber,
		VRFNeighbors: make(map[string][]NeighborFacts),
	}
	for _, sn := range p.bgpOrder {
		n := *p.neighbors[sn.scope][sn.ip]
		if sn.scope == "" {
			bgp.DefaultNeighbors = append(bgp.DefaultNeighbors, n)
		} else {
			bgp.VRFNeighbors[sn.scope] = append(bgp.VRFNeighbors[sn.scope], n)
		}
	}
	return bgp
}

// buildCandidate retains an interface only when it carries an IP address
// with a /30 mask: the tool automates point-to-point handoff links, not
// arbitrary L3 interfaces.
func (p *parser) buildCandidate(b *interfaceBuilder) (InterfaceFacts, bool) {
	if b.ipAddress == "" || b.subnetMask == "" {
		return InterfaceFacts{}, false
	}
	// Loopbacks and tunnels are never handoff links, whatever their mask.
	if strings.HasPrefix(b.name, "Loopback") || strings.HasPrefix(b.name, "Tunnel") {
		return InterfaceFacts{}, false
	}
	prefixLen, err := util.MaskToPrefixLen(b.subnetMask)
	if err != nil || prefixLen != pointToPointPrefixLen {
		return InterfaceFacts{}, false
	}

	vrf := b.vrf
	if !vrf.Global && vrf.Name == "" {
		// No vrf forwarding line in the block: global table, explicitly.
		vrf = GlobalTable()
	}

	iface := InterfaceFacts{
		Name:        b.name,
		IPAddress:   b.ipAddress,
		SubnetMask:  b.subnetMask,
		PrefixLen:   prefixLen,
		VRF:         vrf,
		BFD:         b.bfd,
		Description: b.description,
	}
	if m := vlanNameRe.FindStringSubmatch(b.name); m != nil {
		iface.VLANID = m[1]
	}
	return iface, true
}

func mustInt(s string) int {
	n, _ := strconv.Atoi(s) // matched \d+ by the caller's regexp
	return n
}
