// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"time"
)

// renderer renders the terminal display, based on the job status information
// passed to its Render method.
type renderer struct {
	spinner *spinner
}

// newRenderer returns a renderer with a spinner advancing at the specified
// interval.
func newRenderer(interval time.Duration) *renderer {
	return &renderer{
		spinner: newSpinner(interval),
	}
}

// Render the given job states to the specified writer.
func (r *renderer) Render(w io.Writer, statuses []*jobStatus) {
	if len(statuses) == 0 {
		fmt.Fprintln(w, "nothing to do")
		return
	}
	snaps := make([]jobSnapshot, 0, len(statuses))
	// For neat display, determine the length of the longest output name, so
	// that the progress column doesn't zig-zag around.
	maxlen := 0
	for _, status := range statuses {
		snap := status.snapshot()
		snaps = append(snaps, snap)
		if l := len(snap.job.Output); l > maxlen {
			maxlen = l
		}
	}
	spin := r.spinner.Frame(time.Now())
	for _, snap := range snaps {
		fmt.Fprintf(w, "%-*s ", maxlen, snap.job.Output)
		switch snap.state {
		case jobPending:
			fmt.Fprint(w, pendingStyle.Styled(" · waiting"))
		case jobFetching:
			fmt.Fprint(w, busyStyle.Styled(" "+spin+"fetching "+snap.job.Input))
		case jobResolving:
			fmt.Fprint(w, busyStyle.Styled(fmt.Sprintf(" %sresolving %d/%d",
				spin, snap.stats.Total(), snap.lines)))
			if snap.stats.Failed > 0 {
				fmt.Fprint(w, " ", failedStyle.Styled(fmt.Sprintf("%d unknown", snap.stats.Failed)))
			}
		case jobDone:
			fmt.Fprint(w, doneStyle.Styled(fmt.Sprintf(" ✔ saved %d records", snap.saved)))
			if snap.failures > 0 {
				msg := fmt.Sprintf("%d lookups failed", snap.failures)
				if snap.failedTo != "" {
					msg += ", recorded in " + snap.failedTo
				}
				fmt.Fprint(w, " ", failedStyle.Styled(msg))
			}
		case jobFailed:
			fmt.Fprint(w, failedStyle.Styled(" × "+snap.err.Error()))
		}
		fmt.Fprintln(w)
	}
}
