// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// Shape indicates how a raw input line looked like, such as a bare address, or
// an address already tagged with a location.
type Shape int

// The shapes of raw input lines.
const (
	Unparseable Shape = iota // blank line.
	Bare                     // single address token.
	Tripled                  // address followed by further (port, country) tokens.
	Tagged                   // “address#location”.
)

// String returns the clear-text representation of a Shape value.
func (s Shape) String() string {
	switch s {
	case Unparseable:
		return "unparseable"
	case Bare:
		return "bare"
	case Tripled:
		return "tripled"
	case Tagged:
		return "tagged"
	}
	return fmt.Sprintf("Shape(%d)", s)
}

// ParsedCandidate is a raw input line broken down into its address as well as
// optional port and location hints. The hints are informational only, with
// the single exception of the location hint of a Tagged line.
type ParsedCandidate struct {
	Address      string `json:"address"`
	PortHint     int    `json:"port,omitempty"`     // 0 if none.
	LocationHint string `json:"location,omitempty"` // "" if none.
	Shape        Shape  `json:"shape"`
}
