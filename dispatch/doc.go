/*
Package dispatch runs per-line work units on a goroutine-limited worker pool
and streams their results.

A [Dispatcher] never runs more than the configured number of work units at the
same time. Results get streamed in completion order, so there is no ordering
among them; consumers needing a stable order have to sort the results
themselves. Work units yielding a [types.Dropped] result don't show up on the
result stream at all.

	d, results := dispatch.New(20, enricher.Process)
	go func() {
	    for _, line := range lines {
	        d.Submit(ctx, line)
	    }
	    d.StopWait()
	}()
	for result := range results {
	    // ...
	}

When the context passed to Submit gets cancelled, work units not yet started
are skipped, and work units already done won't block on sending their results
but give up instead. Results of work units that finish only after the
cancellation are discarded, as they might be the product of aborted lookups.
*/
package dispatch
