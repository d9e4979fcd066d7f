/*
Package geo resolves human-readable location labels for IP addresses, using an
ordered chain of geolocation providers.

A [Resolver] consults its [Provider] chain in priority order, giving each
provider its own short timeout. The first provider coming up with a non-empty
label wins, and no further providers get consulted. Network failures,
timeouts, non-success status codes, malformed responses, as well as empty
labels, all count as a “miss”, so the resolver simply moves on to the next
provider. When all providers miss, the resolver returns the unknown location
sentinel; it never returns an error.

	resolver := geo.NewResolver(geo.DefaultProviders(nil),
	    geo.WithTimeout(5*time.Second))
	label := resolver.Resolve(ctx, "192.0.2.1")

# Providers

  - [HTTPProvider] queries a web geolocation service, with the service's
    response shape described by a format (JSON or plain text), the JSON fields
    making up the label, and an optional forced character set for services not
    speaking UTF-8.
  - [CymruProvider] queries Team Cymru's IP-to-ASN mapping via DNS TXT records
    and returns the country code of the announcing network.
  - [MMDBProvider] looks up an offline MaxMind GeoIP2 or GeoLite2 Country
    database.

[DefaultProviders] returns the chain of free web services this tool has always
used.

# Caching

Address listings often contain the same address multiple times, such as in
different shapes. A [Cache] wraps a [Locator], such as a Resolver, so that each
address gets resolved only once, even when multiple lookups for the same
address are in flight concurrently.

# Acknowledgements

DNS lookups are carried out using [miekg/dns], and MaxMind database lookups
using [oschwald/geoip2-golang].

[miekg/dns]: https://github.com/miekg/dns
[oschwald/geoip2-golang]: https://github.com/oschwald/geoip2-golang
*/
package geo
