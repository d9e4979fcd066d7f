// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"sync"

	"github.com/siemens/ipgeotag/aggregate"
	"github.com/siemens/ipgeotag/config"
)

// jobState is the lifecycle state of a single job.
type jobState int

const (
	jobPending jobState = iota
	jobFetching
	jobResolving
	jobDone
	jobFailed
)

// jobStatus keeps track of a single job for rendering its progress. It is
// updated by the job's goroutine while being read by the renderer.
type jobStatus struct {
	job config.Job

	mu       sync.Mutex
	state    jobState
	lines    int                   // number of lines fetched.
	agg      *aggregate.Aggregator // while resolving.
	saved    int
	failures int
	failedTo string
	err      error
}

// jobSnapshot is a consistent copy of a jobStatus.
type jobSnapshot struct {
	job      config.Job
	state    jobState
	lines    int
	stats    aggregate.Stats
	saved    int
	failures int
	failedTo string
	err      error
}

func newJobStatus(job config.Job) *jobStatus {
	return &jobStatus{job: job}
}

func (s *jobStatus) fetching() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = jobFetching
}

func (s *jobStatus) resolving(lines int, agg *aggregate.Aggregator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = jobResolving
	s.lines = lines
	s.agg = agg
}

func (s *jobStatus) done(saved int, failures int, failedTo string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = jobDone
	s.saved = saved
	s.failures = failures
	s.failedTo = failedTo
}

func (s *jobStatus) failed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = jobFailed
	s.err = err
}

// snapshot returns the current status, including the live counters of the
// job's aggregator.
func (s *jobStatus) snapshot() jobSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := jobSnapshot{
		job:      s.job,
		state:    s.state,
		lines:    s.lines,
		saved:    s.saved,
		failures: s.failures,
		failedTo: s.failedTo,
		err:      s.err,
	}
	if s.agg != nil {
		snap.stats = s.agg.Stats()
	}
	return snap
}
