// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"strings"

	"github.com/siemens/ipgeotag/classify"
	"github.com/siemens/ipgeotag/geo"
	"github.com/siemens/ipgeotag/port"
	"github.com/siemens/ipgeotag/types"

	"github.com/thediveo/lxkns/log"
)

// Enricher processes single raw lines into results.
type Enricher struct {
	Ports     port.Resolver // resolves the port of each record.
	Locator   geo.Locator   // resolves the location of untagged records.
	Unknown   string        // unknown location sentinel; defaults to types.DefaultUnknownLocation.
	HonorTags bool          // keep the locations of tagged lines?
}

// unknown returns the effective unknown location sentinel.
func (e *Enricher) unknown() string {
	if e.Unknown == "" {
		return types.DefaultUnknownLocation
	}
	return e.Unknown
}

// Process classifies the specified line and then either drops it, passes it
// through, or resolves it into a record.
func (e *Enricher) Process(ctx context.Context, line string) types.Result {
	candidate := classify.Classify(line)
	switch candidate.Shape {
	case types.Unparseable:
		return types.Result{Kind: types.Dropped}
	case types.Bare, types.Tripled, types.Tagged:
		if !classify.Validate(candidate.Address) {
			log.Debugf("passing through %q", candidate.Address)
			return types.NewPassThrough(strings.TrimSpace(line))
		}
	default:
		return types.NewPassThrough(strings.TrimSpace(line))
	}
	record := types.ResolvedRecord{
		Address: candidate.Address,
		Port:    e.Ports.Resolve(ctx, candidate.Address),
	}
	if e.honors(candidate) {
		record.Location = candidate.LocationHint
	} else {
		record.Location = e.Locator.Resolve(ctx, candidate.Address)
	}
	if record.Location == "" {
		record.Location = e.unknown()
	}
	return types.NewResolved(record)
}

// honors returns true if the location tag of the candidate is to be kept.
func (e *Enricher) honors(candidate types.ParsedCandidate) bool {
	return e.HonorTags &&
		candidate.Shape == types.Tagged &&
		candidate.LocationHint != "" &&
		candidate.LocationHint != e.unknown()
}
