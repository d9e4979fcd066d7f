// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package classify

import "net/netip"

// Validate returns true if addr is a syntactically valid IPv4 dotted-quad or
// IPv6 address literal. Host names, IPv4 octets with leading zeros, CIDR
// notation, and IPv6 zones are all rejected.
func Validate(addr string) bool {
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		return false
	}
	return ip.Zone() == ""
}
