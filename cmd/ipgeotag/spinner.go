// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// Yet another (braille) spinner.

package main

import (
	"time"
)

// spinner is yet another blindingly simple spinner, which derives its current
// phase from the time passed since its creation, so it doesn't need any
// background ticker.
type spinner struct {
	phases   []string
	interval time.Duration
	start    time.Time
}

// newSpinner returns a new spinner advancing its phase every specified
// interval.
func newSpinner(interval time.Duration) *spinner {
	phases := []string{}
	for _, r := range "⠉⠘⠰⠤⠆⠃" {
		phases = append(phases, string(r)+" ")
	}
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &spinner{
		phases:   phases,
		interval: interval,
		start:    time.Now(),
	}
}

// Frame returns the spinner string for the specified point in time.
func (s *spinner) Frame(now time.Time) string {
	elapsed := now.Sub(s.start)
	if elapsed < 0 {
		elapsed = 0
	}
	return s.phases[int(elapsed/s.interval)%len(s.phases)]
}
