/*
Package types defines ipgeotag's information model. It mainly revolves around
[ResolvedRecord], the canonical “address:port#location” output unit, and
[Result], the outcome of processing a single raw input line.

Raw input lines first get classified into a [ParsedCandidate] of a particular
[Shape]. Candidates with a valid address then become resolved records, while
all other non-blank lines are passed through verbatim.

# Unknown Locations

A [ResolvedRecord] never carries an empty location. When none of the
geolocation providers comes up with a label, the record instead gets the
“unknown location” sentinel, which defaults to [DefaultUnknownLocation]. Such
records are still valid output records, but additionally get tracked as
failures for operator review.

# Result Sets

A [ResultSet] collects rendered results, keyed by their rendering. As
duplicate renderings are byte-identical by construction, inserting the same
rendering again is a no-op. Iterating a result set via [ResultSet.Sorted]
always yields its elements in lexicographic order, regardless of the (random)
order in which concurrent work units completed.
*/
package types
