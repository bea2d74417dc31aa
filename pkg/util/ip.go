package util

import (
	"encoding/binary"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ResolvePeerAddress derives the far-end address of a point-to-point link.
// Given one usable host address in a subnet, it computes the enclosing
// network (the address need not be the canonical network address) and
// returns the other usable host.
//
// The subnet must contain exactly two usable hosts, which means only /30
// succeeds: /31 and /32 are degenerate under the network/broadcast exclusion
// rule, and anything wider than /30 has no unambiguous pairing. The network
// and broadcast addresses themselves have no peer. All of these cases return
// a PeerAddressError rather than a silently wrong address.
func ResolvePeerAddress(addr string, prefixLen int) (string, error) {
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() == nil {
		return "", &PeerAddressError{Address: addr, PrefixLen: prefixLen, Reason: "not a valid IPv4 address"}
	}
	if prefixLen < 0 || prefixLen > 32 {
		return "", &PeerAddressError{Address: addr, PrefixLen: prefixLen, Reason: "prefix length out of range"}
	}
	if prefixLen >= 31 {
		return "", &PeerAddressError{Address: addr, PrefixLen: prefixLen,
			Reason: "degenerate prefix: no two distinct usable hosts"}
	}

	host := binary.BigEndian.Uint32(ip.To4())
	mask := uint32(0xffffffff) << (32 - prefixLen)
	network := host & mask
	broadcast := network | ^mask

	// Usable hosts are everything strictly between network and broadcast.
	if broadcast-network != 3 {
		return "", &PeerAddressError{Address: addr, PrefixLen: prefixLen,
			Reason: fmt.Sprintf("/%d is not a point-to-point subnet (%d usable hosts)", prefixLen, broadcast-network-1)}
	}
	if host == network {
		return "", &PeerAddressError{Address: addr, PrefixLen: prefixLen, Reason: "address is the network address"}
	}
	if host == broadcast {
		return "", &PeerAddressError{Address: addr, PrefixLen: prefixLen, Reason: "address is the broadcast address"}
	}

	first, second := network+1, network+2
	peer := first
	if host == first {
		peer = second
	}

	out := make(net.IP, 4)
	binary.BigEndian.PutUint32(out, peer)
	return out.String(), nil
}

// MaskToPrefixLen converts a dotted-decimal netmask to its prefix length.
// Returns an error for non-contiguous or malformed masks.
func MaskToPrefixLen(mask string) (int, error) {
	ip := net.ParseIP(mask)
	if ip == nil || ip.To4() == nil {
		return 0, fmt.Errorf("invalid netmask: %s", mask)
	}
	m := net.IPMask(ip.To4())
	ones, bits := m.Size()
	if bits != 32 || (ones == 0 && mask != "0.0.0.0") {
		return 0, fmt.Errorf("non-contiguous netmask: %s", mask)
	}
	return ones, nil
}

// IsValidIPv4 checks if a string is a valid IPv4 address
func IsValidIPv4(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	return ip != nil && ip.To4() != nil
}

const maxASN = 4294967295 // 4-byte ASN range (max uint32)

// ValidateASN checks if an AS number is valid (1 to 4294967295).
func ValidateASN(asn int) error {
	if asn < 1 || asn > maxASN {
		return fmt.Errorf("AS number must be between 1 and %d, got %d", maxASN, asn)
	}
	return nil
}

// SplitIPMask splits a CIDR notation into IP and mask length
// Returns the IP (without mask) and mask length
func SplitIPMask(cidr string) (string, int) {
	parts := strings.Split(cidr, "/")
	if len(parts) != 2 {
		return cidr, 0 // Return as-is if no mask
	}
	maskLen, err := strconv.Atoi(parts[1])
	if err != nil {
		return parts[0], 0
	}
	return parts[0], maskLen
}
