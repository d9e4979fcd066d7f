// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	"net"
	"strconv"
)

// DefaultUnknownLocation is the location label used when no geolocation
// provider yields a usable result. It is the same placeholder label the
// upstream address listings already use, so that re-feeding such lists
// correctly triggers re-resolution.
const DefaultUnknownLocation = "火星⭐"

// ResolvedRecord is a validated network address together with a usable port
// and a human-readable location label.
type ResolvedRecord struct {
	Address  string `json:"address"`  // a single IPv4 or IPv6 address literal
	Port     int    `json:"port"`     // resolved port
	Location string `json:"location"` // location label, never empty
}

// String renders the record in its canonical “address:port#location” text
// form. IPv6 addresses get bracketed so that the address and port parts can be
// told apart again.
func (r ResolvedRecord) String() string {
	return net.JoinHostPort(r.Address, strconv.Itoa(r.Port)) + "#" + r.Location
}

// IsUnknown returns true if the record's location is the specified unknown
// location sentinel.
func (r ResolvedRecord) IsUnknown(sentinel string) bool {
	return r.Location == sentinel
}
