/*
Package pipeline normalizes and geo-enriches raw candidate-address lines.

An [Enricher] turns a single raw line into a [types.Result]: blank lines get
dropped, lines not starting with a valid IP address get passed through
unchanged (except for trimming), and all other lines become resolved records
of the form “address:port#location”. The port is always resolved anew, while
the location of an already tagged line is kept, unless it is the unknown
location sentinel or tags aren't to be honored.

[Run] processes a whole batch of lines concurrently and returns the
deduplicated ok and failed result sets.
*/
package pipeline
