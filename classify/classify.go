// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package classify

import (
	"net"
	"strconv"
	"strings"

	"github.com/siemens/ipgeotag/types"
)

// Classify parses a raw input line into a candidate. Surrounding whitespace is
// ignored; blank lines are reported as [types.Unparseable]. Classify doesn't
// validate the candidate address, so lines such as comments still become
// (bare or tripled) candidates with an invalid address. Only tagged lines may
// carry their port in “host:port” form; the first field of bare and tripled
// lines always is taken verbatim as the address.
func Classify(line string) types.ParsedCandidate {
	line = strings.TrimSpace(line)
	if line == "" {
		return types.ParsedCandidate{Shape: types.Unparseable}
	}
	if addr, location, ok := strings.Cut(line, "#"); ok {
		c := types.ParsedCandidate{
			Address:      strings.TrimSpace(addr),
			LocationHint: strings.TrimSpace(location),
			Shape:        types.Tagged,
		}
		c.Address, c.PortHint = splitPort(c.Address)
		return c
	}
	fields := strings.Fields(line)
	c := types.ParsedCandidate{
		Address: fields[0],
		Shape:   types.Bare,
	}
	if len(fields) > 1 {
		c.Shape = types.Tripled
		if port := parsePort(fields[1]); port != 0 {
			c.PortHint = port
		}
		if len(fields) > 2 {
			c.LocationHint = fields[2]
		}
	}
	return c
}

// splitPort returns the address with its port split off, if the address is in
// “host:port” or “[host]:port” form with host being a valid IP address
// literal. Otherwise, the address is returned unchanged without a port.
func splitPort(addr string) (string, int) {
	if Validate(addr) {
		return addr, 0
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil || !Validate(host) {
		return addr, 0
	}
	p := parsePort(port)
	if p == 0 {
		return addr, 0
	}
	return host, p
}

// parsePort returns the port number in s, or 0 if s isn't a port number.
func parsePort(s string) int {
	p, err := strconv.ParseUint(s, 10, 16)
	if err != nil || p == 0 {
		return 0
	}
	return int(p)
}
