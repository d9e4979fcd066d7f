/*
Package sink writes the ok and failed records of a batch.

A [File] sink writes the ok records of each batch into the batch's own output
file, while it appends the failed records of all batches to a single shared
failure file. A [Writer] sink writes ok records to an [io.Writer], such as
stdout.
*/
package sink
