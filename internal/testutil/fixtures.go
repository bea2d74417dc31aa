// Package testutil holds shared fixtures for fusiongen tests.
package testutil

// BorderNodeConfig is a trimmed but structurally faithful IOS-XE border node
// configuration used across parser, generator, and server tests.
const BorderNodeConfig = `!
hostname BN-EDGE-01
!
interface Loopback0
 description Underlay RID
 ip address 10.5.80.178 255.255.255.255
!
interface Vlan3001
 description SDA handoff Campus_VN
 vrf forwarding Campus_VN
 ip address 192.168.201.153 255.255.255.252
 no ip redirects
 bfd interval 100 min_rx 100 multiplier 3
!
interface Vlan3002
 description SDA handoff global
 ip address 192.168.201.157 255.255.255.252
 bfd interval 250 min_rx 250 multiplier 3
!
interface Vlan100
 description user SVI, not a handoff
 ip address 10.20.30.1 255.255.255.0
!
interface GigabitEthernet1/0/1
 description uplink to fusion
 switchport mode trunk
 switchport trunk allowed vlan 3001,3002
!
interface GigabitEthernet1/0/2
 description spare
 shutdown
!
router bgp 64700
 bgp router-id 10.5.80.178
 bgp log-neighbor-changes
 neighbor 192.168.1.1 remote-as 64701
 neighbor 192.168.1.1 description underlay peer
 neighbor 192.168.1.1 update-source Loopback0
 !
 address-family ipv4
  network 10.5.80.178 mask 255.255.255.255
  neighbor 192.168.1.1 activate
 exit-address-family
 !
 address-family ipv4 vrf Campus_VN
  neighbor 192.168.201.154 remote-as 65100
  neighbor 192.168.201.154 activate
 exit-address-family
!
end
`

// SecondBorderNodeConfig is a minimal second device for two-box scenarios.
const SecondBorderNodeConfig = `hostname BN-EDGE-02
!
interface Loopback0
 ip address 10.5.80.179 255.255.255.255
!
interface Vlan3001
 vrf forwarding Campus_VN
 ip address 192.168.201.161 255.255.255.252
 bfd interval 100 min_rx 100 multiplier 3
!
router bgp 64700
 neighbor 192.168.1.2 remote-as 64701
!
end
`
