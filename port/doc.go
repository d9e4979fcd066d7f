/*
Package port resolves a usable port for a validated address, using one of
three interchangeable strategies:

  - [Fixed] always yields the same configured port, defaulting to 443.
  - [Random] picks uniformly from a set of known-good ports.
  - [Prober] tries to TCP connect to a list of candidate ports in priority
    order and yields the first port accepting a connection, falling back to a
    fixed port otherwise.

All strategies implement the [Resolver] interface and are safe for concurrent
use. Probing does real network I/O and might block for up to the probe timeout
times the number of candidate ports. Callers thus should run probes for
different addresses concurrently, while the ports of a single address are
always probed sequentially.

	prober := port.NewProber(
	    port.WithCandidates(443, 8443),
	    port.WithTimeout(500*time.Millisecond),
	)
	p := prober.Resolve(ctx, "192.0.2.1")

# Probing From Elsewhere

A [Prober] can probe either through a SOCKS5 upstream proxy, see [ViaSOCKS5],
or from inside a different Linux network namespace, such as the network
namespace of a container, see [InNetworkNamespace].

# Acknowledgements

Under its hood, [Prober] dials using [golang.org/x/net/proxy] dialers and
switches network namespaces using [thediveo/lxkns].

[thediveo/lxkns]: https://github.com/thediveo/lxkns
*/
package port
