// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package dispatch

import (
	"context"
	"sync"

	"github.com/siemens/ipgeotag/types"

	"github.com/gammazero/workerpool"
)

// WorkFunc processes a single raw line into its result.
type WorkFunc func(ctx context.Context, line string) types.Result

// Dispatcher runs work units on a worker pool of limited size, streaming the
// results of the work units over its results channel.
type Dispatcher struct {
	work     WorkFunc
	workers  *workerpool.WorkerPool
	results  chan types.Result
	stopOnce sync.Once
}

// New returns a new Dispatcher with a maximum worker pool of the specified
// size, running the specified work function for each line submitted. It
// additionally returns the results channel, which gets closed only after
// StopWait has been called and all submitted work units have been processed.
// Sizes less than one are treated as one.
func New(size int, work WorkFunc) (*Dispatcher, <-chan types.Result) {
	if size < 1 {
		size = 1
	}
	results := make(chan types.Result, size)
	return &Dispatcher{
		work:    work,
		workers: workerpool.New(size),
		results: results,
	}, results
}

// Submit enqueues a work unit for the specified line; it never blocks. The
// work unit will be skipped if the context has been cancelled by the time a
// worker becomes available.
//
// Submit must not be called anymore after StopWait.
func (d *Dispatcher) Submit(ctx context.Context, line string) {
	d.workers.Submit(func() {
		// A quick and non-blocking check to see if the context has been
		// cancelled before we start our work...
		select {
		case <-ctx.Done():
			return
		default:
		}
		result := d.work(ctx, line)
		if result.Kind == types.Dropped || ctx.Err() != nil {
			return
		}
		// Allow cancelling a blocked result send to avoid leaking
		// goroutines.
		select {
		case d.results <- result:
		case <-ctx.Done():
		}
	})
}

// StopWait waits for all queued work units to get processed and then finally
// closes the results channel. StopWait can safely be called multiple times.
func (d *Dispatcher) StopWait() {
	d.stopOnce.Do(func() {
		d.workers.StopWait()
		close(d.results)
	})
}

// Run processes the specified lines using a worker pool of the specified size
// and returns the results collected, in completion order. If the context gets
// cancelled, Run returns the results collected so far together with the
// context's error.
func Run(ctx context.Context, lines []string, size int, work WorkFunc) ([]types.Result, error) {
	d, results := New(size, work)
	collected := make(chan []types.Result)
	go func() {
		all := []types.Result{}
		for result := range results {
			all = append(all, result)
		}
		collected <- all
	}()
	for _, line := range lines {
		d.Submit(ctx, line)
	}
	d.StopWait()
	return <-collected, ctx.Err()
}
