// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrMiss is returned by fake providers configured to miss.
var ErrMiss = errors.New("fake provider miss")

// CountingProvider is a fake geo provider returning a fixed label (or error)
// and counting how often it has been asked. An empty Label with a nil Err
// makes the provider return ErrMiss.
type CountingProvider struct {
	ProviderName string
	Label        string
	Err          error
	Delay        time.Duration // optional delay before answering.
	calls        atomic.Int64
}

// Name returns the configured provider name, or "fake".
func (p *CountingProvider) Name() string {
	if p.ProviderName == "" {
		return "fake"
	}
	return p.ProviderName
}

// Lookup counts the call and then returns the configured label or error. It
// honors context cancellation while delaying.
func (p *CountingProvider) Lookup(ctx context.Context, addr string) (string, error) {
	p.calls.Add(1)
	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if p.Err != nil {
		return "", p.Err
	}
	if p.Label == "" {
		return "", ErrMiss
	}
	return p.Label, nil
}

// Calls returns the number of lookups so far.
func (p *CountingProvider) Calls() int {
	return int(p.calls.Load())
}

// GaugeLocator is a fake locator mapping addresses to labels, returning
// Unknown for unmapped addresses. It keeps track of how many lookups are in
// flight at the same time, holding each lookup for Delay.
type GaugeLocator struct {
	Labels  map[string]string
	Unknown string
	Delay   time.Duration

	mu       sync.Mutex
	calls    map[string]int
	inflight int
	max      int
}

// Resolve returns the label of the specified address.
func (l *GaugeLocator) Resolve(ctx context.Context, addr string) string {
	l.mu.Lock()
	if l.calls == nil {
		l.calls = map[string]int{}
	}
	l.calls[addr]++
	l.inflight++
	if l.inflight > l.max {
		l.max = l.inflight
	}
	l.mu.Unlock()
	defer func() {
		l.mu.Lock()
		l.inflight--
		l.mu.Unlock()
	}()
	if l.Delay > 0 {
		select {
		case <-time.After(l.Delay):
		case <-ctx.Done():
			return l.Unknown
		}
	}
	if label, ok := l.Labels[addr]; ok {
		return label
	}
	return l.Unknown
}

// MaxInFlight returns the highest number of concurrent lookups seen so far.
func (l *GaugeLocator) MaxInFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.max
}

// Calls returns how often the specified address has been looked up.
func (l *GaugeLocator) Calls(addr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[addr]
}

// TotalCalls returns the number of lookups for all addresses.
func (l *GaugeLocator) TotalCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, count := range l.calls {
		total += count
	}
	return total
}
