// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package geo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/siemens/ipgeotag/types"

	"github.com/thediveo/lxkns/log"
)

// DefaultTimeout is the maximum time a single provider lookup may take, unless
// configured otherwise.
const DefaultTimeout = 5 * time.Second

// ErrNoLabel signals that a provider returned an empty or unusable label.
var ErrNoLabel = errors.New("no usable location label")

// Provider looks up the location label of an IP address. A provider returning
// an error or an empty label “misses”.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, addr string) (string, error)
}

// Locator resolves the location label of an IP address, never failing.
type Locator interface {
	Resolve(ctx context.Context, addr string) string
}

// Resolver resolves location labels using an ordered chain of providers, where
// the first successful provider wins.
type Resolver struct {
	providers []Provider
	timeout   time.Duration // per-provider lookup timeout.
	unknown   string        // unknown location sentinel.
}

var _ Locator = (*Resolver)(nil)

// ResolverOption can be passed to NewResolver when creating new Resolver
// objects.
type ResolverOption func(*Resolver)

// NewResolver returns a new Resolver consulting the specified providers in
// the order given. The resolver defaults to a per-provider timeout of
// DefaultTimeout and to [types.DefaultUnknownLocation] as its unknown location
// sentinel.
func NewResolver(providers []Provider, options ...ResolverOption) *Resolver {
	r := &Resolver{
		providers: append([]Provider(nil), providers...),
		timeout:   DefaultTimeout,
		unknown:   types.DefaultUnknownLocation,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// WithTimeout sets the maximum time a single provider lookup may take.
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.timeout = timeout
	}
}

// WithUnknownLocation sets the label to return when all providers miss.
func WithUnknownLocation(sentinel string) ResolverOption {
	return func(r *Resolver) {
		r.unknown = sentinel
	}
}

// Providers returns the provider chain in priority order.
func (r *Resolver) Providers() []Provider {
	return append([]Provider(nil), r.providers...)
}

// Resolve returns the location label of the specified address from the first
// provider in the chain yielding a usable label. It returns the unknown
// location sentinel when all providers miss, or as soon as the context is
// done.
func (r *Resolver) Resolve(ctx context.Context, addr string) string {
	for _, p := range r.providers {
		if ctx.Err() != nil {
			return r.unknown
		}
		label, err := r.lookup(ctx, p, addr)
		if err != nil {
			log.Debugf("geo: provider %s misses %s: %v", p.Name(), addr, err)
			continue
		}
		return label
	}
	return r.unknown
}

// lookup asks a single provider, bounded by the per-provider timeout, and
// normalizes the label returned.
func (r *Resolver) lookup(ctx context.Context, p Provider, addr string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	label, err := p.Lookup(ctx, addr)
	if err != nil {
		return "", err
	}
	label = strings.TrimSpace(label)
	// A label must fit into a single-line record.
	if label == "" || strings.ContainsAny(label, "\r\n") {
		return "", ErrNoLabel
	}
	return label, nil
}
