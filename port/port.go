// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package port

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// DefaultPort is the port used by the Fixed strategy, as well as the fallback
// port of the Prober, unless configured otherwise.
const DefaultPort = 443

// DefaultRandomPorts are the known-good ports the Random strategy picks from,
// unless configured otherwise.
var DefaultRandomPorts = []int{80, 443, 8443}

// Resolver yields a port for a (validated) address.
type Resolver interface {
	Resolve(ctx context.Context, addr string) int
}

// Strategy names a port resolution strategy.
type Strategy string

// The available port resolution strategies.
const (
	FixedStrategy  Strategy = "fixed"
	RandomStrategy Strategy = "random"
	ProbeStrategy  Strategy = "probe"
)

// ParseStrategy returns the Strategy named by s, ignoring case.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case FixedStrategy, RandomStrategy, ProbeStrategy:
		return st, nil
	}
	return "", fmt.Errorf("unknown port strategy %q, must be one of fixed, random, probe", s)
}

// Fixed always resolves to the same port.
type Fixed int

var _ Resolver = Fixed(0)

// Resolve returns the fixed port, regardless of the address.
func (f Fixed) Resolve(context.Context, string) int { return int(f) }

// Random resolves to a port picked uniformly from a set of candidate ports.
// Random is safe for concurrent use.
type Random struct {
	mu    sync.Mutex // protects rnd
	rnd   *rand.Rand
	ports []int
}

var _ Resolver = (*Random)(nil)

// NewRandom returns a new Random strategy picking from the specified ports,
// using the specified seed. If no ports are specified, then DefaultRandomPorts
// are used instead.
func NewRandom(seed int64, ports ...int) *Random {
	if len(ports) == 0 {
		ports = DefaultRandomPorts
	}
	return &Random{
		rnd:   rand.New(rand.NewSource(seed)),
		ports: append([]int(nil), ports...),
	}
}

// Resolve returns a randomly picked port, regardless of the address.
func (r *Random) Resolve(context.Context, string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ports[r.rnd.Intn(len(r.ports))]
}

// Config describes a port resolution strategy together with its parameters.
type Config struct {
	Strategy Strategy      // strategy, defaults to FixedStrategy.
	Port     int           // fixed port, and probe fallback port; defaults to DefaultPort.
	Ports    []int         // random candidates, or probe candidates in priority order.
	Timeout  time.Duration // probe timeout per port.
	Seed     int64         // random seed; 0 seeds from the current time.
	SOCKS5   string        // optional SOCKS5 upstream to probe through.
	NetnsRef string        // optional network namespace to probe from.
}

// New returns a Resolver for the specified configuration.
func New(cfg Config) (Resolver, error) {
	fixed := cfg.Port
	if fixed == 0 {
		fixed = DefaultPort
	}
	if fixed < 1 || fixed > 65535 {
		return nil, fmt.Errorf("invalid port %d", fixed)
	}
	for _, p := range cfg.Ports {
		if p < 1 || p > 65535 {
			return nil, fmt.Errorf("invalid candidate port %d", p)
		}
	}
	switch cfg.Strategy {
	case "", FixedStrategy:
		return Fixed(fixed), nil
	case RandomStrategy:
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewRandom(seed, cfg.Ports...), nil
	case ProbeStrategy:
		opts := []ProberOption{WithFallback(fixed)}
		if len(cfg.Ports) > 0 {
			opts = append(opts, WithCandidates(cfg.Ports...))
		}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.SOCKS5 != "" {
			opts = append(opts, ViaSOCKS5(cfg.SOCKS5))
		}
		if cfg.NetnsRef != "" {
			opts = append(opts, InNetworkNamespace(cfg.NetnsRef))
		}
		return NewProber(opts...)
	}
	return nil, fmt.Errorf("unknown port strategy %q", cfg.Strategy)
}
