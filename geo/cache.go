// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package geo

import (
	"context"
	"sync"
)

// Cache caches location labels so that unnecessary duplicate lookups of the
// same address can be avoided, yet lookup results get distributed at once to
// all callers waiting for the same address.
type Cache struct {
	locator  Locator
	uncached string // label never to cache, if non-empty.
	mu       sync.Mutex
	m        map[string]*cachedLabel // IP address -> (pending) label
}

var _ Locator = (*Cache)(nil)

// cachedLabel is the label of an address, which becomes available only after
// done has been closed. If ok is false after done has been closed, then the
// lookup had been cut short by its context and the label must not be used.
type cachedLabel struct {
	done  chan struct{}
	label string
	ok    bool
}

// CacheOption can be passed to NewCache when creating new Cache objects.
type CacheOption func(*Cache)

// NewCache returns a new Cache object using the specified locator for the
// actual lookups.
func NewCache(locator Locator, options ...CacheOption) *Cache {
	c := &Cache{
		locator: locator,
		m:       map[string]*cachedLabel{},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// DontCache excludes the specified label from caching, such as the unknown
// location sentinel. Callers waiting on the lookup yielding this label still
// get it, but later callers trigger a fresh lookup.
func DontCache(label string) CacheOption {
	return func(c *Cache) {
		c.uncached = label
	}
}

// Resolve returns the location label of the specified address. The first
// caller for a particular address does the lookup, while any concurrent
// callers for the same address wait for it to finish. Later callers get the
// cached label.
//
// A lookup cut short by its context isn't cached. Callers waiting on such a
// lookup then do a lookup of their own instead. Labels excluded using
// [DontCache] are handed to the waiting callers, but not kept.
func (c *Cache) Resolve(ctx context.Context, addr string) string {
	for {
		c.mu.Lock()
		cl, ok := c.m[addr]
		if !ok {
			// This is the first time we see this address, so we're in charge
			// of looking it up.
			cl = &cachedLabel{done: make(chan struct{})}
			c.m[addr] = cl
			c.mu.Unlock()
			cl.label = c.locator.Resolve(ctx, addr)
			cl.ok = ctx.Err() == nil
			if !cl.ok || (c.uncached != "" && cl.label == c.uncached) {
				c.mu.Lock()
				delete(c.m, addr)
				c.mu.Unlock()
			}
			close(cl.done)
			return cl.label
		}
		c.mu.Unlock()
		select {
		case <-cl.done:
			if cl.ok {
				return cl.label
			}
			// whoever did the lookup gave up, so try again.
		case <-ctx.Done():
			// let the locator decide what a cancelled lookup yields.
			return c.locator.Resolve(ctx, addr)
		}
	}
}

// Len returns the number of addresses currently cached or pending.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
