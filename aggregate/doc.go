/*
Package aggregate merges the results of concurrently running work units into
deduplicated sets of output lines.

An [Aggregator] collects resolved records into its “ok” set, keyed by their
textual rendering so that duplicates collapse. Records whose location is the
unknown location sentinel additionally go into the “failed” set. Lines passed
through unchanged go into the “ok” set only.

The aggregator can be safely read from, such as by a progress display, while
it is tracking a result stream.
*/
package aggregate
