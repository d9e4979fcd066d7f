// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/siemens/ipgeotag/aggregate"
	"github.com/siemens/ipgeotag/config"
	"github.com/siemens/ipgeotag/geo"
	"github.com/siemens/ipgeotag/pipeline"
	"github.com/siemens/ipgeotag/port"
	"github.com/siemens/ipgeotag/sink"
	"github.com/siemens/ipgeotag/source"

	"github.com/gosuri/uilive"
	"github.com/thediveo/lxkns/log"
	"golang.org/x/sync/errgroup"
)

// maxParallelJobs limits how many jobs run at the same time, with each job
// running its own set of workers.
const maxParallelJobs = 4

// TagAndReport runs the configured jobs: it fetches each job's listing,
// resolves ports and locations for the addresses listed, and then writes the
// resulting records. While doing so, it renders the progress of all jobs to
// the specified terminal writer.
//
// A job failing to fetch its listing doesn't fail, but instead writes an empty
// output. Jobs failing to write their output don't affect other jobs, but
// TagAndReport then finally returns an error.
func TagAndReport(ctx context.Context, cfg config.Config, termw io.Writer) error {
	portcfg, err := cfg.PortConfig()
	if err != nil {
		return err
	}
	ports, err := port.New(portcfg)
	if err != nil {
		return fmt.Errorf("cannot set up port resolution: %w", err)
	}
	providers, closeProviders, err := cfg.Providers(nil)
	if err != nil {
		return fmt.Errorf("cannot set up geolocation providers: %w", err)
	}
	defer closeProviders()
	var locator geo.Locator = geo.NewResolver(providers,
		geo.WithTimeout(cfg.Geo.Timeout),
		geo.WithUnknownLocation(cfg.Unknown))
	if cfg.Geo.Cache {
		// jobs often list the same addresses, so share the cache across jobs.
		// never pin unresolved addresses, as a later job might succeed.
		locator = geo.NewCache(locator, geo.DontCache(cfg.Unknown))
	}
	enricher := &pipeline.Enricher{
		Ports:     ports,
		Locator:   locator,
		Unknown:   cfg.Unknown,
		HonorTags: cfg.HonorTags,
	}
	files := sink.NewFile(cfg.FailedPath)
	stdout := &sink.Writer{W: os.Stdout}

	statuses := make([]*jobStatus, len(cfg.Jobs))
	for idx, job := range cfg.Jobs {
		statuses[idx] = newJobStatus(job)
	}

	// Fire off the rendering goroutine, which renders until all jobs have
	// finished, then renders a final update and signals the end of its
	// activities via renderingDone.
	jobsDone := make(chan struct{})
	renderingDone := make(chan struct{})
	go func() {
		// We avoid uilive's Start() as it might flush anytime while rendering
		// into its buffer hasn't been completed yet.
		term := uilive.New()
		term.Out = termw
		renderer := newRenderer(*spinnerInterval)
		defer func() {
			renderStatus(term, renderer, statuses)
			close(renderingDone)
		}()
		renderStatus(term, renderer, statuses)
		ticker := time.NewTicker(50 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				renderStatus(term, renderer, statuses)
			case <-jobsDone:
				return
			}
		}
	}()

	var g errgroup.Group
	g.SetLimit(maxParallelJobs)
	for _, status := range statuses {
		status := status
		out := sink.Sink(files)
		if status.job.Output == "-" {
			out = stdout
		}
		g.Go(func() error {
			return runJob(ctx, cfg, enricher, out, status)
		})
	}
	err = g.Wait()
	close(jobsDone)
	<-renderingDone
	if err != nil {
		return err
	}
	return ctx.Err()
}

// runJob fetches a single job's listing, processes it, and writes the results,
// keeping the job's status up to date.
func runJob(ctx context.Context, cfg config.Config, e *pipeline.Enricher, out sink.Sink, status *jobStatus) error {
	job := status.job
	status.fetching()
	lines, err := source.For(job.Input).Lines(ctx)
	if err != nil {
		log.Warnf("cannot fetch listing, continuing with an empty one: %v", err)
		lines = nil
	}
	agg := aggregate.New(cfg.Unknown)
	status.resolving(len(lines), agg)
	if err := pipeline.RunInto(ctx, lines, cfg.Workers, e, agg); err != nil {
		status.failed(err)
		return fmt.Errorf("job %s: %w", job.Input, err)
	}
	ok, failed := agg.Sets()
	if err := out.Write(job.Output, ok.Sorted(), failed.Sorted()); err != nil {
		log.Errorf("job %s: %v", job.Input, err)
		status.failed(err)
		return fmt.Errorf("job %s: %w", job.Input, err)
	}
	failedTo := cfg.FailedPath
	if job.Output == "-" {
		failedTo = ""
	}
	status.done(ok.Len(), failed.Len(), failedTo)
	log.Infof("saved %d records to %s", ok.Len(), job.Output)
	if failed.Len() > 0 && failedTo != "" {
		log.Infof("%d lookups failed, recorded in %s", failed.Len(), failedTo)
	}
	return nil
}

// renderStatus renders the current status of all jobs and then flushes it to
// the terminal.
func renderStatus(term *uilive.Writer, r *renderer, statuses []*jobStatus) {
	r.Render(term, statuses)
	_ = term.Flush()
}
