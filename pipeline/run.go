// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"

	"github.com/siemens/ipgeotag/aggregate"
	"github.com/siemens/ipgeotag/dispatch"
	"github.com/siemens/ipgeotag/types"
)

// Run processes the specified lines, running at most concurrency work units
// at the same time, and returns the deduplicated ok and failed result sets.
// When the context gets cancelled, Run returns the results gathered so far
// together with the context's error.
func Run(ctx context.Context, lines []string, concurrency int, e *Enricher) (ok, failed *types.ResultSet, err error) {
	agg := aggregate.New(e.unknown())
	err = RunInto(ctx, lines, concurrency, e, agg)
	ok, failed = agg.Sets()
	return
}

// RunInto works like Run, but merges the results into the specified
// aggregator, so callers can watch the aggregator's progress while RunInto
// is still busy.
func RunInto(ctx context.Context, lines []string, concurrency int, e *Enricher, agg *aggregate.Aggregator) error {
	d, results := dispatch.New(concurrency, e.Process)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for _, line := range lines {
			d.Submit(ctx, line)
		}
		d.StopWait()
	}()
	err := agg.Track(ctx, results)
	<-stopped
	if err != nil {
		return err
	}
	return ctx.Err()
}
