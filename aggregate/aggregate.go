// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package aggregate

import (
	"context"
	"sync"

	"github.com/siemens/ipgeotag/types"
)

// Stats counts the results an Aggregator has seen so far, including
// duplicates.
type Stats struct {
	Resolved      int `json:"resolved"`      // resolved records, including failed ones.
	PassedThrough int `json:"passedthrough"` // lines passed through unchanged.
	Failed        int `json:"failed"`        // resolved records with unknown location.
}

// Total returns the number of results seen so far.
func (s Stats) Total() int {
	return s.Resolved + s.PassedThrough
}

// Aggregator merges results into an ok and a failed set.
type Aggregator struct {
	unknown string
	mu      sync.Mutex
	ok      *types.ResultSet
	failed  *types.ResultSet
	stats   Stats
}

// New returns a new and properly initialized Aggregator, using the specified
// unknown location sentinel to tell failed records.
func New(sentinel string) *Aggregator {
	return &Aggregator{
		unknown: sentinel,
		ok:      types.NewResultSet(),
		failed:  types.NewResultSet(),
	}
}

// Add a single result. Dropped results are ignored.
func (a *Aggregator) Add(result types.Result) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch result.Kind {
	case types.Resolved:
		a.stats.Resolved++
		rendering := result.Record.String()
		a.ok.Insert(rendering)
		if result.Record.IsUnknown(a.unknown) {
			a.stats.Failed++
			a.failed.Insert(rendering)
		}
	case types.PassThrough:
		a.stats.PassedThrough++
		a.ok.Insert(result.Raw)
	}
}

// Track results received from the specified channel until the channel is
// closed or the context done. Track only returns after processing all results
// or when the context is done.
func (a *Aggregator) Track(ctx context.Context, results <-chan types.Result) error {
	for {
		select {
		case result, ok := <-results:
			if !ok {
				return nil
			}
			a.Add(result)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Sets returns snapshots of the ok and failed sets.
func (a *Aggregator) Sets() (ok, failed *types.ResultSet) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ok.Clone(), a.failed.Clone()
}

// Stats returns the current result counters.
func (a *Aggregator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}
