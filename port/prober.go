// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/thediveo/lxkns/log"
	"github.com/thediveo/lxkns/ops"
	"github.com/thediveo/lxkns/ops/relations"
	"github.com/thediveo/lxkns/species"
	"golang.org/x/net/proxy"
)

// DefaultProbePorts are the candidate ports a Prober tries in this order of
// priority, unless configured otherwise.
var DefaultProbePorts = []int{443, 2053, 2087, 2083, 8443, 2096}

// DefaultProbeTimeout is the maximum time a Prober waits for a single port to
// accept a connection, unless configured otherwise.
const DefaultProbeTimeout = time.Second

// Prober resolves the port of an address by probing a list of candidate ports
// in priority order, picking the first port that accepts a TCP connection. If
// no candidate port accepts, the fallback port is used instead.
type Prober struct {
	candidates []int               // candidate ports in priority order.
	timeout    time.Duration       // per-port connect timeout.
	fallback   int                 // port to use when all candidates fail.
	dialer     proxy.ContextDialer // dialer for probing connections.
	netns      relations.Relation  // network namespace to probe from, or nil.
	err        error               // first option error, if any.
}

var _ Resolver = (*Prober)(nil)

// ProberOption can be passed to NewProber when creating new Prober objects.
type ProberOption func(*Prober)

// NewProber returns a new Prober. The prober defaults to probing
// DefaultProbePorts with a timeout of DefaultProbeTimeout each, falling back to
// DefaultPort. Probing connections are directly dialed, unless otherwise
// specified.
//
// The prober can be configured during creation using several options:
//   - [WithCandidates]
//   - [WithTimeout]
//   - [WithFallback]
//   - [WithDialer]
//   - [ViaSOCKS5]
//   - [InNetworkNamespace]
func NewProber(options ...ProberOption) (*Prober, error) {
	p := &Prober{
		candidates: DefaultProbePorts,
		timeout:    DefaultProbeTimeout,
		fallback:   DefaultPort,
		dialer:     proxy.Direct,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p, nil
}

// WithCandidates sets the candidate ports to probe, in priority order.
func WithCandidates(ports ...int) ProberOption {
	return func(p *Prober) {
		p.candidates = append([]int(nil), ports...)
	}
}

// WithTimeout sets the maximum time to wait for a single port to accept a
// connection.
func WithTimeout(timeout time.Duration) ProberOption {
	return func(p *Prober) {
		p.timeout = timeout
	}
}

// WithFallback sets the port to use when none of the candidate ports accepts a
// connection.
func WithFallback(port int) ProberOption {
	return func(p *Prober) {
		p.fallback = port
	}
}

// WithDialer sets the dialer to use for the probing connections.
func WithDialer(dialer proxy.ContextDialer) ProberOption {
	return func(p *Prober) {
		p.dialer = dialer
	}
}

// ViaSOCKS5 tells the Prober to probe through the SOCKS5 proxy at the
// specified “host:port” address.
func ViaSOCKS5(addr string) ProberOption {
	return func(p *Prober) {
		d, err := proxy.SOCKS5("tcp", addr, nil, proxy.Direct)
		if err != nil {
			p.setErr(fmt.Errorf("cannot probe via SOCKS5 proxy %s: %w", addr, err))
			return
		}
		cd, ok := d.(proxy.ContextDialer)
		if !ok {
			p.setErr(fmt.Errorf("SOCKS5 dialer for %s does not support contexts", addr))
			return
		}
		p.dialer = cd
	}
}

// InNetworkNamespace optionally runs the probes inside the network namespace
// referenced by the specified filesystem path, such as "/proc/666/ns/net".
func InNetworkNamespace(netnsref string) ProberOption {
	return func(p *Prober) {
		p.netns = ops.NewTypedNamespacePath(netnsref, species.CLONE_NEWNET)
	}
}

func (p *Prober) setErr(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Resolve probes the candidate ports of the specified address one after
// another and returns the first port accepting a connection. It returns the
// fallback port if no candidate port accepts or the context is done.
func (p *Prober) Resolve(ctx context.Context, addr string) int {
	probe := func() interface{} {
		for _, port := range p.candidates {
			// A quick and non-blocking check to see if the context has been
			// cancelled before dialing the next candidate...
			if ctx.Err() != nil {
				return p.fallback
			}
			if p.accepts(ctx, addr, port) {
				return port
			}
		}
		log.Debugf("probe: no candidate port of %s accepts, falling back to %d", addr, p.fallback)
		return p.fallback
	}
	if p.netns == nil {
		return probe().(int)
	}
	// lxkns' ops.Execute differentiates between a namespace switching error
	// and the result of the function called in the switched namespace.
	port, err := ops.Execute(probe, p.netns)
	if err != nil {
		log.Warnf("probe: cannot switch network namespace: %v", err)
		return p.fallback
	}
	return port.(int)
}

// accepts returns true if the specified port of an address accepts a TCP
// connection within the probe timeout.
func (p *Prober) accepts(ctx context.Context, addr string, port int) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	conn, err := p.dialer.DialContext(ctx, "tcp", net.JoinHostPort(addr, strconv.Itoa(port)))
	if err != nil {
		log.Debugf("probe: %s port %d: %v", addr, port, err)
		return false
	}
	_ = conn.Close()
	return true
}
